package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
)

// contextKey is unexported so only this package can read or write the
// principal stored in a request context.
type contextKey string

const principalKey contextKey = "principal"

// ErrorWriter renders an error response. The handler package supplies it so
// denials share the API's error envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Authenticate reads "Authorization: Bearer <jwt>" and, when the token
// verifies, stores the Principal in the request context. It never rejects a
// request on its own: public routes stay reachable, and RequireAuthority
// decides for protected ones.
func Authenticate(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := bearerToken(r); tok != "" {
				if p, err := v.Verify(tok); err == nil {
					r = r.WithContext(WithPrincipal(r.Context(), p))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthority lets the request through only if the principal carries
// authority. Anonymous callers and callers without it get AccessDenied,
// rendered by onDenied.
func RequireAuthority(authority string, onDenied ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				onDenied(w, r, apperror.AccessDenied("Full authentication is required to access this resource"))
				return
			}
			if !p.HasAuthority(authority) {
				onDenied(w, r, apperror.AccessDenied("Access is denied: "+authority+" required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
