package httpx

import (
	"net/http"

	"github.com/launchpath/lp-gateway/internal/service"
)

// OptionalAuth returns a middleware that resolves the request credential and,
// when it verifies, stores the identity in the request context. Anonymous
// requests continue without identity; handlers decide whether that is enough.
// API routes bypass the page gateway, so this is where they pick up the
// caller identity.
func OptionalAuth(identity *service.IdentityService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved, err := identity.Resolve(r.Context(), credentialFromRequest(r, cookieName))
			if err != nil {
				WriteAppError(w, err)
				return
			}
			if resolved != nil {
				r = r.WithContext(SetIdentityInContext(r.Context(), resolved))
			}
			next.ServeHTTP(w, r)
		})
	}
}
