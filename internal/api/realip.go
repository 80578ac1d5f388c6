package api

import (
	"net"
	"net/http"
	"strings"
)

// clientIP derives the caller's network identity, which doubles as the
// one-game-per-owner key. Prefers X-Forwarded-For (first hop) and X-Real-IP
// so the limit still works behind a reverse proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return strings.TrimSpace(xrip)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
