// Package middleware holds the HTTP middlewares the reference server chains
// in front of its handlers.
package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/go-pkgz/lgr"
)

// Recovery catches panics from downstream handlers, logs them with a stack
// trace, and returns a 500 instead of crashing the server.
func Recovery(logger lgr.L) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Logf("ERROR panic recovered: %v\n%s", err, debug.Stack())
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"error": "internal server error",
						"code":  http.StatusInternalServerError,
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
