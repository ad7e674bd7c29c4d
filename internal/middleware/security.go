package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/pkg/response"
)

// AllowedHosts rejects requests whose Host is not listed. "*" allows any host
// and a leading "." matches the domain and its subdomains. In debug mode an
// empty list allows localhost only.
func AllowedHosts(hosts []string, debug bool) gin.HandlerFunc {
	patterns := hosts
	if len(patterns) == 0 && debug {
		patterns = []string{"localhost", "127.0.0.1", "[::1]", "::1"}
	}
	return func(c *gin.Context) {
		if HostAllowed(c.Request.Host, patterns) {
			c.Next()
			return
		}
		response.BadRequest(c, "Invalid HTTP_HOST header.")
	}
}

// HostAllowed reports whether host matches any of patterns.
func HostAllowed(host string, patterns []string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if hostOnly, _, err := net.SplitHostPort(h); err == nil {
		h = hostOnly
	}
	h = strings.TrimSuffix(h, ".")
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		switch {
		case p == "*":
			return true
		case strings.HasPrefix(p, "."):
			if h == p[1:] || strings.HasSuffix(h, p) {
				return true
			}
		case h == p || h == strings.Trim(p, "[]"):
			return true
		}
	}
	return false
}

// SecurityHeaders sets the baseline response headers and, outside debug mode, HSTS on TLS requests.
func SecurityHeaders(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		if !debug && IsSecure(c.Request) {
			h.Set("Strict-Transport-Security", "max-age=31536000")
		}
		c.Next()
	}
}

// IsSecure reports whether the client connection used TLS, trusting X-Forwarded-Proto.
func IsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
