package auth

import (
	"context"
	"net/http"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
)

type contextKey string

const principalKey contextKey = "principal"

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the caller attached by Middleware, or the anonymous
// principal.
func PrincipalFrom(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(principalKey).(domain.Principal)
	return p
}

// Middleware attaches the caller to the request context when the auth cookie
// names a live session. Requests without one continue anonymously; each
// operation decides whether that is enough.
func (h *AuthHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		res, err := h.resolve(r.Context(), cookie.Value)
		if err != nil {
			if err != errInvalidSession {
				logging.Error().Err(err).Msg("Failed to resolve session")
			}
			next.ServeHTTP(w, r)
			return
		}

		if res.refreshed != nil {
			http.SetCookie(w, res.refreshed)
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), res.principal)))
	})
}
