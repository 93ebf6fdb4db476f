package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"blogforge/internal/handler/http/respond"
)

// CORS returns an HTTP middleware that enforces the origin allow-list and
// sets CORS headers for admitted origins.
//
// Behavior:
//   - If the Origin header is empty, the request is same-origin (or from a
//     non-browser client such as curl) and passes through untouched.
//   - In open mode every origin is admitted.
//   - A disallowed origin is rejected with 403 and a JSON body naming the
//     offending origin. The request never reaches the handler chain.
//   - An admitted OPTIONS request (preflight) is answered with 204 and the
//     preflight headers; the handler chain is not invoked.
//   - An admitted non-OPTIONS request passes through with
//     Access-Control-Allow-Origin set.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Same-origin or non-browser request: nothing to enforce
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.OpenMode && !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed", map[string]interface{}{
						"origin":      origin,
						"path":        r.URL.Path,
						"method":      r.Method,
						"remote_addr": r.RemoteAddr,
					})
				}

				respond.JSON(w, http.StatusForbidden, map[string]string{
					"error":  "origin not allowed",
					"origin": origin,
				})
				return
			}

			// Echo back the request origin
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			// Handle preflight OPTIONS request
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request", map[string]interface{}{
						"origin":            origin,
						"requested_method":  r.Header.Get("Access-Control-Request-Method"),
						"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
					})
				}

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
