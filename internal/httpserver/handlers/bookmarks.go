package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/response"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/store"
)

const (
	// MsgBookmarkNotExist is the DELETE response for an unknown id.
	MsgBookmarkNotExist = "Bookmark does not exist"
	// MsgInvalidBody is returned when the create payload is not a JSON object
	// with string fields and a scalar rating.
	MsgInvalidBody = "invalid request body"

	maxBodyBytes = 1 << 20
)

// ListBookmarks returns every bookmark as a JSON array.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Store.List(r.Context())
		if err != nil {
			serverError(w, d, "list bookmarks", err)
			return
		}
		response.JSON(w, http.StatusOK, list, d.Logger)
	}
}

// GetBookmark returns [bookmark] for a known id and an empty 404 otherwise.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		b, err := d.Store.Get(r.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			d.Logger.Debug("bookmark not found", logger.String("id", id))
			response.Empty(w, http.StatusNotFound)
			return
		case err != nil:
			serverError(w, d, "get bookmark", err)
			return
		}
		response.JSON(w, http.StatusOK, []domain.Bookmark{b}, d.Logger)
	}
}

// CreateBookmark validates the payload and stores a new bookmark.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var in domain.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			d.Logger.Debug("invalid create payload", logger.Error(err))
			response.Text(w, http.StatusBadRequest, MsgInvalidBody)
			return
		}

		b, err := d.Store.Create(r.Context(), in)
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			d.Logger.Info("bookmark rejected",
				logger.String("field", verr.Field),
				logger.String("reason", verr.Message))
			response.Text(w, http.StatusBadRequest, verr.Message)
			return
		case err != nil:
			serverError(w, d, "create bookmark", err)
			return
		}

		d.Logger.Info("bookmark created", logger.String("id", b.ID))
		w.Header().Set("Location", "/bookmarks/"+b.ID)
		response.JSON(w, http.StatusCreated, b, d.Logger)
	}
}

// DeleteBookmark removes a bookmark and answers with its id as plain text.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		deleted, err := d.Store.Delete(r.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			d.Logger.Info("delete of unknown bookmark", logger.String("id", id))
			response.Text(w, http.StatusBadRequest, MsgBookmarkNotExist)
			return
		case err != nil:
			serverError(w, d, "delete bookmark", err)
			return
		}

		d.Logger.Info("bookmark deleted", logger.String("id", deleted))
		response.Text(w, http.StatusOK, deleted)
	}
}

func serverError(w http.ResponseWriter, d deps.Deps, op string, err error) {
	d.Logger.Error("store operation failed", logger.String("op", op), logger.Error(err))
	response.InternalError(w, d.Production, err.Error(), d.Logger)
}
