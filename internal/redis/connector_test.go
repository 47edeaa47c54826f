package redis

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

func validConfig() config.RedisConfig {
	return config.RedisConfig{
		Addr:           "127.0.0.1:1",
		ConnectTimeout: 200 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		DialTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.RedisConfig)
	}{
		{"connect timeout", func(c *config.RedisConfig) { c.ConnectTimeout = 0 }},
		{"retry interval", func(c *config.RedisConfig) { c.RetryInterval = 0 }},
		{"max wait", func(c *config.RedisConfig) { c.MaxWait = -time.Second }},
		{"ping timeout", func(c *config.RedisConfig) { c.PingTimeout = 0 }},
		{"warn threshold", func(c *config.RedisConfig) { c.WarnThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if _, err := New(context.Background(), cfg, logger.NewNop()); err == nil {
				t.Fatal("New() should reject invalid options")
			}
		})
	}
}

func TestNewTimesOutWhenUnreachable(t *testing.T) {
	start := time.Now()
	client, err := New(context.Background(), validConfig(), logger.NewNop())
	if err == nil {
		_ = client.Close()
		t.Fatal("New() should fail when nothing listens on the address")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("New() took %v, should give up after the connect timeout", elapsed)
	}
}

func TestBackoffNextIsCapped(t *testing.T) {
	b := backoff{max: 100 * time.Millisecond}
	if got := b.next(20 * time.Millisecond); got != 40*time.Millisecond {
		t.Errorf("next(20ms) = %v, want 40ms", got)
	}
	if got := b.next(80 * time.Millisecond); got != 100*time.Millisecond {
		t.Errorf("next(80ms) = %v, want capped 100ms", got)
	}
}
