package testutil

import (
	"context"
	"net/http"
	"time"

	id "recallguard/pkg/domain"
	"recallguard/pkg/requestcontext"
)

// WithCaller attaches an authenticated principal to the request context,
// mirroring what the auth middleware does after a token validates.
// Invalid principals are ignored so tests can exercise the unauthenticated path.
func WithCaller(req *http.Request, principal string) *http.Request {
	caller, err := id.ParsePrincipal(principal)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// CallerContext returns a background context carrying the given principal.
func CallerContext(principal id.Principal) context.Context {
	return requestcontext.WithCaller(context.Background(), principal)
}

// FixedTime pins the request time so audit timestamps are deterministic.
func FixedTime(ctx context.Context, at time.Time) context.Context {
	return requestcontext.WithTime(ctx, at)
}
