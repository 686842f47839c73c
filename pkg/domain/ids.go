// Package domain holds typed identifiers shared across modules.
//
// Typed IDs keep a batch hash from being passed where a recall number is
// expected. Construct them with the Parse functions at trust boundaries.
package domain

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	dErrors "recallguard/pkg/domain-errors"
)

// BatchIDSize is the length in bytes of a batch content hash.
const BatchIDSize = 32

// MaxPrincipalLength bounds caller identities accepted from external input.
const MaxPrincipalLength = 128

// BatchID identifies a product batch by its fixed-length content hash.
type BatchID [BatchIDSize]byte

// ParseBatchID decodes a hex-encoded content hash. A leading "0x" is accepted.
//
// Errors: returns CodeInvalidInput for empty input, non-hex input, or a hash of
// the wrong length.
func ParseBatchID(s string) (BatchID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return BatchID{}, dErrors.New(dErrors.CodeInvalidInput, "batch id cannot be empty")
	}
	if len(s) != BatchIDSize*2 {
		return BatchID{}, dErrors.New(dErrors.CodeInvalidInput, "batch id must be a 32-byte hex hash")
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return BatchID{}, dErrors.New(dErrors.CodeInvalidInput, "batch id must be hex encoded")
	}
	var id BatchID
	copy(id[:], raw)
	return id, nil
}

// String returns the lowercase hex encoding without prefix.
func (b BatchID) String() string {
	return hex.EncodeToString(b[:])
}

// IsZero reports whether the hash is all zeros.
func (b BatchID) IsZero() bool {
	return b == BatchID{}
}

func (b BatchID) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BatchID) UnmarshalText(text []byte) error {
	parsed, err := ParseBatchID(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// RecallID is the monotonically assigned recall number. Zero is never issued.
type RecallID uint64

// ParseRecallID parses a decimal recall number.
//
// Errors: returns CodeInvalidInput for non-numeric input or zero.
func ParseRecallID(s string) (RecallID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "recall id must be a positive integer")
	}
	if n == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "recall id must be a positive integer")
	}
	return RecallID(n), nil
}

func (r RecallID) String() string {
	return strconv.FormatUint(uint64(r), 10)
}

// Principal is a caller identity: a manufacturer, distributor, regulator or
// the administrator. Authorization is plain equality between principals.
type Principal string

// ParsePrincipal validates an identity taken from a token or request body.
//
// Errors: returns CodeInvalidInput when the value is empty, too long, not
// UTF-8, or contains whitespace or control characters.
func ParsePrincipal(s string) (Principal, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal cannot be empty")
	}
	if len(s) > MaxPrincipalLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal is too long")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal must be valid UTF-8")
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "principal contains invalid characters")
		}
	}
	return Principal(s), nil
}

func (p Principal) String() string {
	return string(p)
}

// IsZero reports whether the principal is unset.
func (p Principal) IsZero() bool {
	return p == ""
}
