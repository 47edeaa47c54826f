package store

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

var (
	// ErrNotFound is returned when no bookmark has the requested id.
	ErrNotFound = errors.New("bookmark not found")

	// ErrIDExhausted is returned when the id generator keeps producing ids
	// that are already taken.
	ErrIDExhausted = errors.New("could not generate a unique bookmark id")
)

// Store holds bookmarks for the lifetime of the process.
type Store interface {
	// List returns every bookmark in insertion order.
	List(ctx context.Context) ([]domain.Bookmark, error)

	// Get returns the bookmark with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (domain.Bookmark, error)

	// Create validates in, assigns a fresh id and appends the record.
	// Validation failures are returned as *domain.ValidationError.
	Create(ctx context.Context, in domain.Input) (domain.Bookmark, error)

	// Delete removes every bookmark with the given id and returns that id,
	// or ErrNotFound when none matched.
	Delete(ctx context.Context, id string) (string, error)

	// Count returns the number of stored bookmarks.
	Count() int
}
