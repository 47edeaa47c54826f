package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemory(burst, perMinute int) (*Memory, *clock) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(config.RateLimitConfig{
		Burst:     burst,
		PerMinute: perMinute,
		IdleTTL:   time.Minute,
	})
	m.now = c.now
	return m, c
}

func TestMemoryAllow(t *testing.T) {
	tests := []struct {
		name     string
		burst    int
		calls    int
		wantPass int
	}{
		{"burst allows initial requests", 3, 3, 3},
		{"exceeding burst blocks", 2, 5, 2},
		{"single token", 1, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMemory(tt.burst, 60)
			passed := 0
			for i := 0; i < tt.calls; i++ {
				d, err := m.Allow(context.Background(), "client")
				if err != nil {
					t.Fatalf("Allow() error = %v", err)
				}
				if d.Allowed {
					passed++
				}
			}
			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestMemoryDecisionFields(t *testing.T) {
	m, _ := newTestMemory(2, 60)
	ctx := context.Background()

	d, _ := m.Allow(ctx, "a")
	if !d.Allowed || d.Limit != 2 || d.Remaining != 1 {
		t.Errorf("first Allow() = %+v, want allowed with 1 remaining", d)
	}
	_, _ = m.Allow(ctx, "a")

	d, _ = m.Allow(ctx, "a")
	if d.Allowed {
		t.Fatal("third Allow() should be refused")
	}
	if d.Remaining != 0 || d.RetryAfter < time.Second {
		t.Errorf("refused Decision = %+v, want 0 remaining and RetryAfter >= 1s", d)
	}
}

func TestMemoryRefills(t *testing.T) {
	m, c := newTestMemory(1, 60)
	ctx := context.Background()

	if d, _ := m.Allow(ctx, "a"); !d.Allowed {
		t.Fatal("first request should pass")
	}
	if d, _ := m.Allow(ctx, "a"); d.Allowed {
		t.Fatal("second request should be refused")
	}

	c.advance(time.Second)
	if d, _ := m.Allow(ctx, "a"); !d.Allowed {
		t.Error("request after refill should pass")
	}
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	m, _ := newTestMemory(1, 60)
	ctx := context.Background()

	if d, _ := m.Allow(ctx, "a"); !d.Allowed {
		t.Fatal("a should pass")
	}
	if d, _ := m.Allow(ctx, "b"); !d.Allowed {
		t.Error("b should pass independently of a")
	}
}

func TestMemorySweep(t *testing.T) {
	m, c := newTestMemory(1, 60)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "old")
	c.advance(2 * time.Minute)
	_, _ = m.Allow(ctx, "fresh")

	if removed := m.Sweep(c.now()); removed != 1 {
		t.Errorf("Sweep() removed %d, want 1", removed)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoryStopIsIdempotent(t *testing.T) {
	m, _ := newTestMemory(1, 60)
	m.Start(context.Background())
	m.Stop()
	m.Stop()
}

func TestKey(t *testing.T) {
	start := time.Unix(1700000000, 0)
	if got, want := Key("1.2.3.4", start), "bookmarks:ratelimit:1.2.3.4:1700000000"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

// Runs against a real Redis when BOOKMARKS_TEST_REDIS_ADDR is set.
func TestRedisAllow(t *testing.T) {
	addr := os.Getenv("BOOKMARKS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BOOKMARKS_TEST_REDIS_ADDR not set")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	r := NewRedis(client, 2, time.Minute)
	ctx := context.Background()
	key := "test-" + time.Now().Format(time.RFC3339Nano)

	for i := 0; i < 2; i++ {
		d, err := r.Allow(ctx, key)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d should pass", i+1)
		}
	}

	d, err := r.Allow(ctx, key)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if d.Allowed || d.RetryAfter <= 0 {
		t.Errorf("third Allow() = %+v, want refused with RetryAfter", d)
	}
}
