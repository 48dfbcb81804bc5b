package daemon

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// publicPaths stay reachable without a token.
var publicPaths = map[string]struct{}{
	"/health":       {},
	"/v1/health":    {},
	"/openapi.yaml": {},
	"/openapi.json": {},
	"/api/docs":     {},
}

// authMiddleware returns a middleware that validates bearer tokens.
// If token is empty, no authentication is required and all requests pass through.
// Otherwise, requests must include "Authorization: Bearer <token>" header.
func authMiddleware(token string) middleware {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			presented, found := strings.CutPrefix(auth, "Bearer ")
			if !found || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="dvdshop"`)
				writeError(w, nil, http.StatusUnauthorized, "missing or invalid bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
