package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Headers are consulted in order before falling back to RemoteAddr. Only
// deploy behind a proxy that overwrites them.
var Headers = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// GetIP returns the normalized client IP of r, or "" when none parses.
// X-Forwarded-For yields its first valid entry.
func GetIP(r *http.Request) string {
	for _, h := range Headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
