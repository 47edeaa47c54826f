package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/handlers"
)

// Rate limiting runs before auth so bad-token floods are throttled too.
func init() { Register(registerBookmarks, rateLimit, bearerAuth) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/bookmarks", func(r chi.Router) {
		// The global GetHead only sees the mount, so HEAD is routed here.
		r.Use(middleware.GetHead)

		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))
		r.Get("/{id}", handlers.GetBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
