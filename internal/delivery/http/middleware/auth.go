package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eventscheduler/internal/access"
	h "eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the authenticated caller.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

// Authenticate resolves an optional Bearer token into a principal on the
// request context. Requests without an Authorization header pass through as
// anonymous; a header that is malformed or carries an invalid token is
// rejected with 401. Requests for which skip returns true pass through
// anonymously whatever the header holds. skip may be nil.
func Authenticate(verifier domain.TokenVerifier, skip func(*http.Request) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || (skip != nil && skip(r)) {
			next.ServeHTTP(w, r)
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
			return
		}
		token := strings.TrimSpace(auth[len(prefix):])
		if token == "" {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
			return
		}
		principal, err := verifier.Verify(token)
		if err != nil {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireAccess returns a wrapper that checks the access policy for op before
// calling next. Anonymous callers get 401 and authenticated callers without
// the required role get 403.
func RequireAccess(op access.Operation) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFromContext(r.Context())
			if err := access.Authorize(op, principal); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, err.Error())
					return
				}
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
				return
			}
			next(w, r)
		}
	}
}
