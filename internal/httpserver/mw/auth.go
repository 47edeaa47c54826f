package mw

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/response"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Auth failure messages.
const (
	MsgNoAuthHeader       = "No valid Auth header found"
	MsgInvalidCredentials = "Invalid credentials"
)

// BearerAuth requires an Authorization header starting with "bearer" in any
// case. The token is the second space-separated word; anything that does not
// match, including a missing token, is reported as invalid credentials.
func BearerAuth(token string, log logger.Logger) func(http.Handler) http.Handler {
	want := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !hasBearerPrefix(header) {
				log.Debug("auth: missing or non-bearer header", logger.String("path", r.URL.Path))
				response.Unauthorized(w, MsgNoAuthHeader, log)
				return
			}

			got := secondWord(header)
			if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				log.Debug("auth: invalid token", logger.String("path", r.URL.Path))
				response.Unauthorized(w, MsgInvalidCredentials, log)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasBearerPrefix(h string) bool {
	const prefix = "bearer"
	return len(h) >= len(prefix) && strings.EqualFold(h[:len(prefix)], prefix)
}

// secondWord returns the text between the first and second single space.
func secondWord(h string) string {
	_, rest, ok := strings.Cut(h, " ")
	if !ok {
		return ""
	}
	word, _, _ := strings.Cut(rest, " ")
	return word
}
