package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookwell/bookwell/http/request"
	"github.com/bookwell/bookwell/http/response"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// getProgress returns the caller's reading position for a book. A book that
// was never opened yields the default position, not an error.
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	history, err := h.store.GetHistory(userID, bookID)
	if err != nil {
		log.Error("Failed to get history", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, history)
}

// saveProgress merges a partial position update. Fields with mismatched
// types are dropped rather than failing the whole request, the reader client
// sends best-effort updates on scroll and page turn.
func (h *Handler) saveProgress(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	update := &model.HistoryUpdate{}
	if err := json.NewDecoder(r.Body).Decode(update); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			log.Error("Failed to decode request body", zap.Error(err))
			response.BadRequest(w, r, err)
			return
		}
		log.Debug("Ignoring mismatched field in progress update",
			zap.String("field", typeErr.Field),
			zap.String("value", typeErr.Value))
	}
	update.BookID = bookID

	history, err := h.store.UpsertHistory(userID, update)
	if err != nil {
		log.Error("Failed to save progress", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, history)
}

func (h *Handler) addPageBookmark(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	pageNumber := request.RouteIntParam(r, "pageNumber")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	history, err := h.store.AddPageBookmark(userID, bookID, pageNumber)
	if err != nil {
		log.Error("Failed to add bookmark", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, history)
}

func (h *Handler) removePageBookmark(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	pageNumber := request.RouteIntParam(r, "pageNumber")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	history, err := h.store.RemovePageBookmark(userID, bookID, pageNumber)
	if err != nil {
		log.Error("Failed to remove bookmark", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, history)
}

func (h *Handler) addLocationBookmark(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	var location model.BookmarkLocation
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if location.Chapter == "" {
		response.BadRequest(w, r, errors.New("chapter is required"))
		return
	}

	history, err := h.store.AddLocationBookmark(userID, bookID, location)
	if err != nil {
		log.Error("Failed to add location bookmark", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, history)
}

func (h *Handler) removeLocationBookmark(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	var location model.BookmarkLocation
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	history, err := h.store.RemoveLocationBookmark(userID, bookID, location.Chapter, location.Offset)
	if err != nil {
		log.Error("Failed to remove location bookmark", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, history)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	history, err := h.store.ToggleFavorite(userID, bookID)
	if err != nil {
		log.Error("Failed to toggle favorite", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, history)
}

func (h *Handler) listFavoriteBooks(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	books, err := h.store.ListFavoriteBooks(userID)
	if err != nil {
		log.Error("Failed to list favorite books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}
