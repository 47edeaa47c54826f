package mw

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// securityHeaders are set on every response.
var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"Referrer-Policy", "no-referrer"},
	{"X-DNS-Prefetch-Control", "off"},
	{"Strict-Transport-Security", "max-age=15552000; includeSubDomains"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
}

// SecurityHeaders returns one middleware per hardening header, in order.
func SecurityHeaders() []func(http.Handler) http.Handler {
	mws := make([]func(http.Handler) http.Handler, 0, len(securityHeaders))
	for _, h := range securityHeaders {
		mws = append(mws, middleware.SetHeader(h[0], h[1]))
	}
	return mws
}
