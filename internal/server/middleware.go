package server

import (
	"context"
	"net/http"
	"strconv"

	"itemshare-api/internal/apperr"
)

// IdentityHeader carries the caller's user id, set by the upstream
// gateway. The value is trusted as-is.
const IdentityHeader = "X-Sharer-User-Id"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const callerIDKey contextKey = "callerID"

// CallerID extracts the authenticated user id from the request context.
// It returns 0 when the identity middleware did not run.
func CallerID(ctx context.Context) int64 {
	if v := ctx.Value(callerIDKey); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// withIdentity requires the identity header on every route it guards.
// A missing or malformed header is a client error; existence of the
// user is checked by the services, not here.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(IdentityHeader)
		if raw == "" {
			s.writeError(w, r, apperr.InvalidInputf("missing %s header", IdentityHeader))
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			s.writeError(w, r, apperr.InvalidInputf("invalid %s header %q", IdentityHeader, raw))
			return
		}
		ctx := context.WithValue(r.Context(), callerIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
