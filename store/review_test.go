package store

import (
	"testing"

	"github.com/bookwell/bookwell/model"
)

func TestUpsertReviewRecomputesAggregate(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)
	second, err := s.CreateUser(&model.User{
		Username:     "second",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	if _, err := s.UpsertReview(&model.Review{BookID: bookID, UserID: userID, Rating: 4, Text: "good"}); err != nil {
		t.Fatalf("Failed to upsert review: %v", err)
	}
	if _, err := s.UpsertReview(&model.Review{BookID: bookID, UserID: second.ID, Rating: 2, Text: "meh"}); err != nil {
		t.Fatalf("Failed to upsert review: %v", err)
	}

	book, err := s.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if book.TotalReviews != 2 {
		t.Errorf("Expected 2 reviews, got %d", book.TotalReviews)
	}
	if book.AverageRating != 3 {
		t.Errorf("Expected average rating 3, got %v", book.AverageRating)
	}

	// Re-reviewing replaces the old rating instead of adding a row.
	if _, err := s.UpsertReview(&model.Review{BookID: bookID, UserID: userID, Rating: 5, Text: "better on reread"}); err != nil {
		t.Fatalf("Failed to upsert review: %v", err)
	}
	book, err = s.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if book.TotalReviews != 2 {
		t.Errorf("Expected 2 reviews after re-review, got %d", book.TotalReviews)
	}
	if book.AverageRating != 3.5 {
		t.Errorf("Expected average rating 3.5, got %v", book.AverageRating)
	}

	list, err := s.ListReviews(&model.FindReview{BookID: &bookID})
	if err != nil {
		t.Fatalf("Failed to list reviews: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 reviews, got %d", len(list))
	}
	for _, review := range list {
		if review.Username == "" {
			t.Errorf("Expected username to be joined in")
		}
	}
}
