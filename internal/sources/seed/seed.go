// Package seed loads bookmarks from a YAML file into a store at startup.
package seed

import (
	"context"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/store"
)

// Seed creates every entry of f in st, in file order. Each entry gets a fresh
// id and the same validation as an API create. The first failure aborts.
func Seed(ctx context.Context, st store.Store, f File, log logger.Logger) (int, error) {
	created := 0
	for i, e := range f.Bookmarks {
		b, err := st.Create(ctx, e.Input())
		if err != nil {
			return created, entryError(i, e, err)
		}
		log.Debug("seeded bookmark",
			logger.String("id", b.ID),
			logger.String("title", b.Title))
		created++
	}
	return created, nil
}

// SeedFile loads path and seeds st from it.
func SeedFile(ctx context.Context, st store.Store, path string, log logger.Logger) (int, error) {
	f, err := NewLoader(path).Load()
	if err != nil {
		return 0, err
	}
	return Seed(ctx, st, f, log)
}
