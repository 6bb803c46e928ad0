package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"
)

// logRequest is the access log written once per request.
func logRequest(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Str("sourceIp", getRequestSourceIp(r)).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("Sending response to client")
}

func getRequestSourceIp(r *http.Request) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	// and just the address after chi's RealIP middleware
	ipAndPort := r.RemoteAddr
	portSepIdx := strings.LastIndex(ipAndPort, ":")
	// no port, or a bare ipv6 address
	if portSepIdx < 0 || strings.Count(ipAndPort, ":") > 1 && !strings.HasPrefix(ipAndPort, "[") {
		return ipAndPort
	}
	ip := ipAndPort[:portSepIdx]
	return strings.TrimSuffix(strings.TrimPrefix(ip, "["), "]")
}
