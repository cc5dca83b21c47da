package middleware

import (
	"mime"
	"net"
	"net/http"
)

// IsProgrammatic reports whether the caller expects a JSON reply: an AJAX
// request or one with a JSON body.
func IsProgrammatic(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return IsJSONBody(r)
}

// IsJSONBody reports whether the request body is declared as JSON
func IsJSONBody(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// ClientIP returns the host part of RemoteAddr. Forwarding headers are only
// honoured when chi's RealIP middleware has already rewritten RemoteAddr for
// a trusted proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
