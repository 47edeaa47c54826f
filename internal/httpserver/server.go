// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/routes"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// NewRouter builds the router with global middlewares and every registered route.
func NewRouter(requestTimeout time.Duration, d deps.Deps) chi.Router {
	if requestTimeout <= 0 {
		requestTimeout = 2 * time.Second
	}

	r := chi.NewRouter()

	// --- Global middlewares (outermost first)
	r.Use(middleware.RequestID)               // X-Request-ID on each request
	r.Use(mw.EchoRequestID)
	r.Use(mw.Log(d.Logger, d.TrustProxy))     // structured access logs, sees recovered 500s
	r.Use(mw.Recover(d.Production, d.Logger)) // never crash the process on panic
	r.Use(mw.SecurityHeaders()...)
	r.Use(mw.CORS(d.CORSOrigins))
	r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
	r.Use(middleware.GetHead)
	r.Use(middleware.Timeout(requestTimeout))

	routes.RegisterAll(r, d)

	return r
}

// New builds the HTTP server (router, middlewares, route registration).
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           NewRouter(cfg.RequestTimeout, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.http.Addr }

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...",
		logger.Duration("uptime", time.Since(s.started)))
	return s.http.Shutdown(ctx)
}
