package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// maxIDAttempts bounds retries when a generated id is already taken.
const maxIDAttempts = 3

// Memory is an in-memory Store.
// Order of insertion is kept for listing; the id set only speeds up lookups.
type Memory struct {
	mu        sync.RWMutex
	bookmarks []domain.Bookmark   // insertion order
	ids       map[string]struct{} // ids currently stored
	newID     func() string
}

// Option configures a Memory store.
type Option func(*Memory)

// WithIDGenerator replaces the default UUIDv4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Memory) { m.newID = gen }
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		ids:   make(map[string]struct{}),
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// List returns a copy of all bookmarks in insertion order.
func (m *Memory) List(_ context.Context) ([]domain.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Bookmark, len(m.bookmarks))
	copy(out, m.bookmarks)
	return out, nil
}

// Get retrieves a bookmark by exact id match.
func (m *Memory) Get(_ context.Context, id string) (domain.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.ids[id]; !ok {
		return domain.Bookmark{}, ErrNotFound
	}
	for _, b := range m.bookmarks {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Bookmark{}, ErrNotFound
}

// Create validates in and appends a new bookmark under a fresh id.
func (m *Memory) Create(_ context.Context, in domain.Input) (domain.Bookmark, error) {
	if err := domain.Validate(in); err != nil {
		return domain.Bookmark{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.freshIDLocked()
	if err != nil {
		return domain.Bookmark{}, err
	}

	b := domain.NewBookmark(id, in)
	m.bookmarks = append(m.bookmarks, b)
	m.ids[id] = struct{}{}
	return b, nil
}

// Delete drops every entry whose id equals id.
func (m *Memory) Delete(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ids[id]; !ok {
		return "", ErrNotFound
	}

	kept := m.bookmarks[:0]
	for _, b := range m.bookmarks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	// Clear the tail so removed records are not retained by the backing array.
	for i := len(kept); i < len(m.bookmarks); i++ {
		m.bookmarks[i] = domain.Bookmark{}
	}
	m.bookmarks = kept
	delete(m.ids, id)
	return id, nil
}

// Count returns the number of stored bookmarks.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.bookmarks)
}

func (m *Memory) freshIDLocked() (string, error) {
	for range maxIDAttempts {
		id := m.newID()
		if _, taken := m.ids[id]; !taken && id != "" {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
