package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
)

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Memory is a token bucket per key. Keys idle longer than IdleTTL are
// dropped by the sweeper started with Start.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	idleTTL       time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemory builds a limiter allowing cfg.Burst requests at once, refilled
// at cfg.PerMinute per minute.
func NewMemory(cfg config.RateLimitConfig) *Memory {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.PerMinute < 1 {
		cfg.PerMinute = 1
	}
	return &Memory{
		entries:       make(map[string]*entry, 1024),
		limit:         rate.Limit(float64(cfg.PerMinute) / 60.0),
		burst:         cfg.Burst,
		idleTTL:       cfg.IdleTTL,
		sweepInterval: cfg.SweepInterval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
	}
}

// Allow consumes one token for key.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	lim := m.limiter(key, now)

	d := Decision{Limit: m.burst}
	if lim.AllowN(now, 1) {
		d.Allowed = true
		d.Remaining = int(math.Max(0, math.Floor(lim.TokensAt(now))))
		return d, nil
	}

	needed := 1 - lim.TokensAt(now)
	wait := time.Duration(needed / float64(m.limit) * float64(time.Second))
	if wait < time.Second {
		wait = time.Second
	}
	d.RetryAfter = wait
	return d, nil
}

func (m *Memory) limiter(key string, now time.Time) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[key]
	if e == nil {
		e = &entry{lim: rate.NewLimiter(m.limit, m.burst)}
		m.entries[key] = e
	}
	e.lastSeen = now
	return e.lim
}

// Sweep drops keys not seen for longer than the idle TTL.
func (m *Memory) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if now.Sub(e.lastSeen) > m.idleTTL {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Start runs the idle-key sweeper until ctx is done or Stop is called.
func (m *Memory) Start(ctx context.Context) {
	ticker := time.NewTicker(m.sweepInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sweep(m.now())
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the sweeper. Safe to call more than once.
func (m *Memory) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}
