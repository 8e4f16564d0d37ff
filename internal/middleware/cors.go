// internal/middleware/cors.go
// Cross-origin policy, applied to every request before route dispatch.

package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"chatapp-backend/internal/config"
)

const (
	headerAllowOrigin      = "Access-Control-Allow-Origin"
	headerAllowMethods     = "Access-Control-Allow-Methods"
	headerAllowHeaders     = "Access-Control-Allow-Headers"
	headerAllowCredentials = "Access-Control-Allow-Credentials"
	headerExposeHeaders    = "Access-Control-Expose-Headers"
	headerMaxAge           = "Access-Control-Max-Age"
	headerRequestMethod    = "Access-Control-Request-Method"
)

// CORS returns middleware enforcing p. OPTIONS requests are answered here and
// never reach the router.
func CORS(p config.CORSConfig) func(http.Handler) http.Handler {
	anyOrigin := p.AllowsAnyOrigin()
	origins := make(map[string]struct{}, len(p.AllowedOrigins))
	for _, o := range p.AllowedOrigins {
		origins[strings.ToLower(o)] = struct{}{}
	}
	methods := make(map[string]struct{}, len(p.AllowedMethods))
	for _, m := range p.AllowedMethods {
		methods[strings.ToUpper(m)] = struct{}{}
	}

	allowMethods := strings.Join(p.AllowedMethods, ", ")
	allowHeaders := strings.Join(p.AllowedHeaders, ", ")
	if p.AllowsAnyHeader() {
		allowHeaders = "*"
	}
	exposeHeaders := strings.Join(p.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(p.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			origin := r.Header.Get("Origin")
			preflight := r.Method == http.MethodOptions

			allowOrigin := ""
			if anyOrigin {
				allowOrigin = "*"
			} else {
				h.Add("Vary", "Origin")
				if _, ok := origins[strings.ToLower(origin)]; ok && origin != "" {
					allowOrigin = origin
				} else if origin != "" {
					http.Error(w, "Invalid CORS request", http.StatusForbidden)
					return
				}
			}

			if preflight {
				if m := r.Header.Get(headerRequestMethod); m != "" {
					if _, ok := methods[strings.ToUpper(m)]; !ok {
						http.Error(w, "Invalid CORS request", http.StatusForbidden)
						return
					}
				}
			}

			if allowOrigin != "" {
				h.Set(headerAllowOrigin, allowOrigin)
			}
			h.Set(headerAllowMethods, allowMethods)
			if allowHeaders != "" {
				h.Set(headerAllowHeaders, allowHeaders)
			}
			if p.AllowCredentials {
				h.Set(headerAllowCredentials, "true")
			}
			if exposeHeaders != "" {
				h.Set(headerExposeHeaders, exposeHeaders)
			}

			if preflight {
				if p.MaxAge > 0 {
					h.Set(headerMaxAge, maxAge)
				}
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
