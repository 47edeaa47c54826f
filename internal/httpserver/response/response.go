// Package response writes HTTP responses in the shapes the bookmarks API uses.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// ErrorBody is the JSON body of auth failures.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Error("failed to encode JSON response", logger.Error(err))
	}
}

// Text writes a plain text response.
func Text(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// Empty writes a status code with no body.
func Empty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, status int, msg string, log logger.Logger) {
	JSON(w, status, ErrorBody{Error: msg}, log)
}

// Unauthorized writes a 401 JSON error.
func Unauthorized(w http.ResponseWriter, msg string, log logger.Logger) {
	Error(w, http.StatusUnauthorized, msg, log)
}

type productionError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type debugError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// InternalError writes a 500. In production the body is generic; otherwise
// it carries msg.
func InternalError(w http.ResponseWriter, production bool, msg string, log logger.Logger) {
	if production {
		var body productionError
		body.Error.Message = "server error"
		JSON(w, http.StatusInternalServerError, body, log)
		return
	}
	JSON(w, http.StatusInternalServerError, debugError{Message: msg, Error: msg}, log)
}
