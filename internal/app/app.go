package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/ratelimit"
	"github.com/MrSnakeDoc/bookmarks/internal/redis"
	"github.com/MrSnakeDoc/bookmarks/internal/sources/seed"
	"github.com/MrSnakeDoc/bookmarks/internal/store"
	"github.com/MrSnakeDoc/bookmarks/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       store.Store
	redisClient *goredis.Client
	memLimiter  *ratelimit.Memory // nil unless the in-process limiter is used
}

// New wires every component from cfg. Redis, when configured, must answer
// before New returns.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	loggerClient.Debug("configuration loaded", logger.Any("config", cfg.Redacted()))

	var redisClient *goredis.Client
	if cfg.Redis.Enabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.Redis.Addr)
		client, err := redis.New(ctx, cfg.Redis, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		loggerClient.Info("Redis initialized successfully")
	}

	st := store.NewMemory()
	if cfg.SeedFile != "" {
		n, err := seed.SeedFile(ctx, st, cfg.SeedFile, loggerClient)
		if err != nil {
			closeRedis(redisClient, loggerClient)
			return nil, fmt.Errorf("failed to seed bookmarks: %w", err)
		}
		loggerClient.Info("bookmarks seeded",
			logger.String("file", cfg.SeedFile),
			logger.Int("count", n))
	}

	limiter, memLimiter := newLimiter(cfg.RateLimit, redisClient, loggerClient)

	d := deps.Deps{
		Logger:       loggerClient,
		Store:        st,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		APIToken:     cfg.APIToken,
		Production:   cfg.IsProduction(),
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		CORSOrigins:  cfg.CORSOrigins,
		Limiter:      limiter,
		RedisClient:  redisClient,
		PingTimeout:  cfg.Redis.PingTimeout,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		store:       st,
		redisClient: redisClient,
		memLimiter:  memLimiter,
	}, nil
}

// newLimiter picks the shared Redis window when Redis is available and the
// in-process token bucket otherwise. Burst 0 disables limiting.
func newLimiter(cfg config.RateLimitConfig, client *goredis.Client, log logger.Logger) (ratelimit.Limiter, *ratelimit.Memory) {
	if cfg.Burst == 0 {
		log.Info("rate limiting disabled")
		return nil, nil
	}
	if client != nil {
		limit := max(cfg.Burst, cfg.PerMinute)
		log.Info("rate limiting via redis", logger.Int("per_minute", limit))
		return ratelimit.NewRedis(client, limit, time.Minute), nil
	}
	log.Info("rate limiting in memory",
		logger.Int("burst", cfg.Burst),
		logger.Int("per_minute", cfg.PerMinute))
	m := ratelimit.NewMemory(cfg)
	return m, m
}

// Store exposes the bookmark store, mainly for tests.
func (a *App) Store() store.Store { return a.store }

// Run serves until ctx is cancelled or the server fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("Starting bookmarks %s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Info(version.String())

	if a.memLimiter != nil {
		a.memLimiter.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case runErr = <-errCh:
	}

	if a.memLimiter != nil {
		a.memLimiter.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	closeRedis(a.redisClient, a.logger)

	if runErr != nil {
		return runErr
	}
	a.logger.Info("bookmarks stopped cleanly")
	return nil
}

func closeRedis(client *goredis.Client, log logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Warnf("failed to close redis: %v", err)
		return
	}
	log.Info("Redis closed cleanly")
}
