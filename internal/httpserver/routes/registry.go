package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler

	// MiddlewareFunc builds a per-route middleware once the deps are known.
	MiddlewareFunc func(d deps.Deps) Middleware
)

type entry struct {
	reg Registrar
	mws []MiddlewareFunc
}

var registry []entry

// Register a registrar with optional per-route middlewares, applied in order.
func Register(reg Registrar, mws ...MiddlewareFunc) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterAll is called once from httpserver.New.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		mws := make([]Middleware, 0, len(e.mws))
		for _, build := range e.mws {
			mws = append(mws, build(d))
		}
		e.reg(r.With(mws...), d)
	}
}
