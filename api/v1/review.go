package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookwell/bookwell/http/request"
	"github.com/bookwell/bookwell/http/response"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/bookwell/bookwell/validator"
	"go.uber.org/zap"
)

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	reviews, err := h.store.ListReviews(&model.FindReview{BookID: &bookID})
	if err != nil {
		log.Error("Failed to list reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, reviews)
}

// getMyReview returns the caller's own review of a book, a null body when
// the book was never reviewed.
func (h *Handler) getMyReview(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	review, err := h.store.GetUserReview(bookID, userID)
	if err != nil {
		log.Error("Failed to get review", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, review)
}

// upsertReview writes the caller's review. A second review of the same book
// replaces the first one.
func (h *Handler) upsertReview(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteIntParam(r, "id")
	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	req := &model.ReviewRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	req.BookID = bookID
	if err := validator.ValidateReviewRequest(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	review, err := h.store.UpsertReview(&model.Review{
		BookID: bookID,
		UserID: userID,
		Rating: req.Rating,
		Text:   req.Text,
	})
	if err != nil {
		log.Error("Failed to upsert review", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, review)
}
