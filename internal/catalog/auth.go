package catalog

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"laser-compare/internal/handlers"
)

// AdminOnly guards the back-office with a static bearer token. An empty
// token locks every admin route.
func AdminOnly(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authorized(token, r.Header.Get("Authorization")) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				handlers.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authorized(token, header string) bool {
	if token == "" {
		return false
	}
	scheme, provided, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), []byte(token)) == 1
}
