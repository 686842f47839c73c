package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "recallguard/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "internal_error", body["error"])
		_, ok := body["error_description"]
		assert.False(t, ok, "expected error_description to be omitted for internal errors")
	})

	t.Run("uncoded error is treated as internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, io.ErrUnexpectedEOF)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("paused includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodePaused, "recall initiation is paused"))

		require.Equal(t, http.StatusLocked, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "paused", body["error"])
		assert.Equal(t, "recall initiation is paused", body["error_description"])
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeUnauthorized:        http.StatusUnauthorized,
		dErrors.CodeInvalidBatch:        http.StatusNotFound,
		dErrors.CodeNoDispute:           http.StatusNotFound,
		dErrors.CodeAlreadyRecalled:     http.StatusConflict,
		dErrors.CodeDisputeExists:       http.StatusConflict,
		dErrors.CodeInsufficientReports: http.StatusUnprocessableEntity,
		dErrors.CodeInvalidStatus:       http.StatusUnprocessableEntity,
		dErrors.CodeInvalidThreshold:    http.StatusUnprocessableEntity,
		dErrors.CodeMetadataTooLong:     http.StatusUnprocessableEntity,
		dErrors.CodePaused:              http.StatusLocked,
		dErrors.CodeDependencyFailure:   http.StatusBadGateway,
		dErrors.CodeValidation:          http.StatusBadRequest,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}

type sampleRequest struct {
	Name string `json:"name"`
}

func (r *sampleRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	decode := func(body string) (*sampleRequest, bool, *httptest.ResponseRecorder) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()
		req, ok := DecodeAndPrepare[sampleRequest](w, r, logger, r.Context(), "req-1")
		return req, ok, w
	}

	t.Run("valid body", func(t *testing.T) {
		req, ok, _ := decode(`{"name":"acme"}`)
		require.True(t, ok)
		assert.Equal(t, "acme", req.Name)
	})

	t.Run("malformed body is bad request", func(t *testing.T) {
		_, ok, w := decode(`{`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, ok, w := decode(`{"name":"acme","admin":true}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure uses its code", func(t *testing.T) {
		_, ok, w := decode(`{}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})
}
