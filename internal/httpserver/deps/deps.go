package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/ratelimit"
	"github.com/MrSnakeDoc/bookmarks/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	Store        store.Store // bookmark collection served by /bookmarks
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time  // for testing, defaults to time.Now
	APIToken     string            // static bearer token for /bookmarks
	Production   bool              // true => generic 500 bodies
	AllowedHosts []string          // Host headers allowed to access the server
	AllowedCIDRS []string          // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool              // true if running behind a trusted reverse proxy
	CORSOrigins  []string          // allowed CORS origins
	Limiter      ratelimit.Limiter // nil disables rate limiting
	RedisClient  *redis.Client     // nil when Redis is not configured
	PingTimeout  time.Duration     // readiness ping timeout
}

// Now returns the current time from TimeNow, or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
