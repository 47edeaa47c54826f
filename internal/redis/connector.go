package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// backoff is the retry policy used while waiting for Redis to come up.
type backoff struct {
	initial       time.Duration
	max           time.Duration
	total         time.Duration
	ping          time.Duration
	warnThreshold int
}

func (b backoff) next(wait time.Duration) time.Duration {
	wait *= 2
	if wait > b.max {
		return b.max
	}
	return wait
}

func validate(cfg config.RedisConfig) error {
	switch {
	case cfg.ConnectTimeout <= 0:
		return fmt.Errorf("redis connect timeout must be > 0, got %v", cfg.ConnectTimeout)
	case cfg.RetryInterval <= 0:
		return fmt.Errorf("redis retry interval must be > 0, got %v", cfg.RetryInterval)
	case cfg.MaxWait <= 0:
		return fmt.Errorf("redis max wait must be > 0, got %v", cfg.MaxWait)
	case cfg.PingTimeout <= 0:
		return fmt.Errorf("redis ping timeout must be > 0, got %v", cfg.PingTimeout)
	case cfg.WarnThreshold < 0:
		return fmt.Errorf("redis warn threshold must be >= 0, got %d", cfg.WarnThreshold)
	}
	return nil
}

// New creates a Redis client and blocks until it answers PING, retrying with
// exponential backoff until cfg.ConnectTimeout elapses or ctx is cancelled.
func New(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	policy := backoff{
		initial:       cfg.RetryInterval,
		max:           cfg.MaxWait,
		total:         cfg.ConnectTimeout,
		ping:          cfg.PingTimeout,
		warnThreshold: cfg.WarnThreshold,
	}

	if err := waitReady(ctx, client, policy, log.With(logger.String("addr", cfg.Addr))); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func waitReady(ctx context.Context, client *redis.Client, policy backoff, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, policy.total)
	defer cancel()

	log.Info("connecting to redis", logger.Duration("timeout", policy.total))
	start := time.Now()
	wait := policy.initial

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, policy.ping)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis")
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable",
				logger.Int("attempts", attempt),
				logger.Error(err))
			return fmt.Errorf("redis unavailable after %d attempts (timeout: %v): %w",
				attempt, policy.total, err)
		case <-timer.C:
		}

		fields := []logger.Field{
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", policy.next(wait)),
			logger.Error(err),
		}
		if attempt <= policy.warnThreshold {
			log.Warn("redis connection failed, retrying", fields...)
		} else {
			log.Error("redis still unavailable, retrying", fields...)
		}
		wait = policy.next(wait)
	}
}
