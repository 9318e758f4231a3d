package middleware

import (
	"fmt"
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/config"
)

// SecurityHeaders stamps the standard browser hardening headers on every
// response. Each header is gated on its config field so deployments can
// relax individual policies without code changes.
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	hsts := hstsValue(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			if cfg.ContentTypeNosniff {
				headers.Set("X-Content-Type-Options", "nosniff")
			}
			if cfg.FrameOptions != "" {
				headers.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.XSSProtection != "" {
				headers.Set("X-XSS-Protection", cfg.XSSProtection)
			}
			if cfg.ContentSecurityPolicy != "" {
				headers.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if cfg.ReferrerPolicy != "" {
				headers.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				headers.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}
			if hsts != "" {
				headers.Set("Strict-Transport-Security", hsts)
			}

			// Server fingerprinting headers
			headers.Del("X-Powered-By")
			headers.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}

func hstsValue(cfg *config.SecurityConfig) string {
	if !cfg.EnableHSTS {
		return ""
	}
	value := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
	if cfg.HSTSIncludeSubdomains {
		value += "; includeSubDomains"
	}
	if cfg.HSTSPreload {
		value += "; preload"
	}
	return value
}
