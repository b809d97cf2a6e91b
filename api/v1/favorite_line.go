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

func (h *Handler) addFavoriteLine(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	req := &model.FavoriteLineRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if req.Text == "" {
		response.BadRequest(w, r, errors.New("text is required"))
		return
	}

	line, err := h.store.AddFavoriteLine(&model.FavoriteLine{
		UserID:   userID,
		BookID:   bookID,
		Text:     req.Text,
		Chapter:  req.Chapter,
		Location: req.Location,
		Color:    req.Color,
		Note:     req.Note,
	})
	if err != nil {
		log.Error("Failed to add favorite line", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, line)
}

// listFavoriteLines returns the caller's highlights in one book.
func (h *Handler) listFavoriteLines(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	lines, err := h.store.ListFavoriteLines(&model.FindFavoriteLine{UserID: &userID, BookID: &bookID})
	if err != nil {
		log.Error("Failed to list favorite lines", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, lines)
}

// listMyFavoriteLines returns every highlight of the caller across books.
func (h *Handler) listMyFavoriteLines(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	lines, err := h.store.ListFavoriteLines(&model.FindFavoriteLine{UserID: &userID})
	if err != nil {
		log.Error("Failed to list favorite lines", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, lines)
}

func (h *Handler) deleteFavoriteLine(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	lineID := request.RouteIntParam(r, "id")

	removed, err := h.store.RemoveFavoriteLine(lineID, userID)
	if err != nil {
		log.Error("Failed to delete favorite line", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if !removed {
		response.NotFound(w, r)
		return
	}
	response.NoContent(w, r)
}
