package validator

import (
	"github.com/pkg/errors"

	"github.com/bookwell/bookwell/model"
)

func ValidateReviewRequest(review *model.ReviewRequest) error {
	if review == nil {
		return errors.New("review is nil")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

func ValidateBookUploadRequest(book *model.BookUploadRequest) error {
	if book == nil {
		return errors.New("book is nil")
	}
	if book.Title == "" {
		return errors.New("title is empty")
	}
	if book.Category != "" && !model.IsValidCategory(book.Category) {
		return errors.New("unknown category")
	}
	return nil
}
