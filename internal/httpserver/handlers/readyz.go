package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/response"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Redis string `json:"redis"` // "ok" | "down" | "disabled"
}

// Readyz reports ready unless a configured Redis fails to answer PING.
func Readyz(d deps.Deps) http.HandlerFunc {
	timeout := d.PingTimeout
	if timeout <= 0 {
		timeout = time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		if d.RedisClient == nil {
			response.JSON(w, http.StatusOK, readyzResponse{Ready: true, Redis: "disabled"}, d.Logger)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := d.RedisClient.Ping(ctx).Err(); err != nil {
			d.Logger.Warn("readiness: redis ping failed", logger.Error(err))
			response.JSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Redis: "down"}, d.Logger)
			return
		}
		response.JSON(w, http.StatusOK, readyzResponse{Ready: true, Redis: "ok"}, d.Logger)
	}
}
