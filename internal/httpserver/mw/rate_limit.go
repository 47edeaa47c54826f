package mw

import (
	"math"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/ratelimit"
	"github.com/MrSnakeDoc/bookmarks/internal/utils"
)

// RateLimit refuses requests with 429 once the client IP exhausts its budget.
// A nil limiter is a passthrough. Limiter errors let the request through.
func RateLimit(l ratelimit.Limiter, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	if l == nil {
		log.Debug("RateLimit: no limiter, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, trustProxy)

			d, err := l.Allow(r.Context(), key)
			if err != nil {
				log.Warn("rate limiter unavailable, allowing request",
					logger.String("ip", key),
					logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			remaining := d.Remaining
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !d.Allowed {
				retry := int(math.Ceil(d.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				log.Debug("rate limited", logger.String("ip", key), logger.Int("retry_after", retry))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
