package api

import (
	"net/http"

	"github.com/Luxor-Foundation/luxor-swap/internal/observability/tracing"
	"github.com/Luxor-Foundation/luxor-swap/internal/utils"
)

// traceRequest attaches a fresh trace id to every request context so all
// log lines of one request correlate.
func traceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireApiKey guards the admin routes with the configured API keys.
func (s *Server) requireApiKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" || !utils.Contains(s.cfg.AdminKeys, key) {
			writeError(w, r, http.StatusUnauthorized, "invalid api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
