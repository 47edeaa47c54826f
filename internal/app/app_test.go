package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/ratelimit"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr:      "127.0.0.1:0",
		Env:             config.EnvTest,
		APIToken:        "token",
		ShutdownTimeout: time.Second,
		RequestTimeout:  time.Second,
	}
}

func TestNewSeedsStore(t *testing.T) {
	cfg := testConfig()
	cfg.SeedFile = filepath.Join("..", "..", "configs", "seed.yaml")

	a, err := New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)

	list, err := a.Store().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Google", list[0].Title)
	assert.Equal(t, 4, list[0].Rating)
	assert.Equal(t, 5, list[1].Rating)
}

func TestNewFailsOnMissingSeedFile(t *testing.T) {
	cfg := testConfig()
	cfg.SeedFile = filepath.Join("testdata", "missing.yaml")

	_, err := New(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{
		Addr:           "127.0.0.1:1",
		DialTimeout:    50 * time.Millisecond,
		ConnectTimeout: 100 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
	}

	_, err := New(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	log := logger.NewNop()

	l, m := newLimiter(config.RateLimitConfig{Burst: 0}, nil, log)
	assert.Nil(t, l)
	assert.Nil(t, m)

	l, m = newLimiter(config.RateLimitConfig{Burst: 5, PerMinute: 60}, nil, log)
	require.NotNil(t, m)
	assert.IsType(t, &ratelimit.Memory{}, l)

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer func() { _ = client.Close() }()
	l, m = newLimiter(config.RateLimitConfig{Burst: 5, PerMinute: 60}, client, log)
	assert.Nil(t, m)
	assert.IsType(t, &ratelimit.Redis{}, l)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Burst: 5, PerMinute: 60}

	a, err := New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
