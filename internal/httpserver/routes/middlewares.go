package routes

import (
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
)

func rateLimit(d deps.Deps) Middleware {
	return mw.RateLimit(d.Limiter, d.TrustProxy, d.Logger)
}

func bearerAuth(d deps.Deps) Middleware {
	return mw.BearerAuth(d.APIToken, d.Logger)
}

func probeCIDRs(d deps.Deps) Middleware {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}
