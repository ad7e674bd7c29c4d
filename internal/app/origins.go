package app

import (
	"net/url"
	"strings"
)

// extractOriginHost reduces an Origin header to host[:port]; values that do
// not parse as URLs are compared as-is.
func extractOriginHost(origin string) string {
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return u.Host
	}
	return origin
}

// matchOriginPattern supports three pattern shapes from allowed_origins:
// an exact host, "*.domain" for any subdomain, and "host:*" for any port.
func matchOriginPattern(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	}
	if name, ok := strings.CutSuffix(pattern, ":*"); ok {
		h, _, found := strings.Cut(host, ":")
		return found && h == name
	}
	return false
}
