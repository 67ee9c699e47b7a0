// Package recovery converts handler panics into clean 500 responses so one
// bad request cannot take the catalog down.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/reelgraph/reelgraph/internal/api/respond"
)

// Middleware recovers panics from downstream handlers, logs the stack, and
// answers with the catalog's standard error envelope.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote", r.RemoteAddr).
					Bytes("stack", debug.Stack()).
					Msg("handler panic recovered")

				respond.WriteError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
