package mw

import (
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/response"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Recover turns a handler panic into a 500 JSON response. In production the
// body is generic; otherwise it carries the panic value.
func Recover(production bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				msg := fmt.Sprint(rec)
				if err, ok := rec.(error); ok {
					msg = err.Error()
				}
				log.Error("panic recovered",
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
					logger.String("panic", msg),
					logger.Stack("stack"))

				response.InternalError(w, production, msg, log)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
