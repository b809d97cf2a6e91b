package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/database"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/pkg/errors"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func createTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	db, err := sql.Open("sqlite", dir+"/test.db")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.ApplyLatestSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	return NewStore(db)
}

func seedUserAndBook(t *testing.T, s *Store) (int, int) {
	t.Helper()
	user, err := s.CreateUser(&model.User{
		Username:     "reader",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	book, err := s.AddBook(&model.Book{
		Title:    "The Test Book",
		Author:   "Anonymous",
		Category: model.CategoryFiction,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	return user.ID, book.ID
}

func TestGetHistoryDefault(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)

	history, err := s.GetHistory(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if history.LastReadPage != 1 {
		t.Errorf("Expected default last read page 1, got %d", history.LastReadPage)
	}
	if history.LastReadChapter != nil {
		t.Errorf("Expected nil last read chapter, got %v", *history.LastReadChapter)
	}
	if len(history.Bookmarks) != 0 || len(history.BookmarkLocations) != 0 {
		t.Errorf("Expected empty bookmark sets")
	}
	if history.IsFavorite {
		t.Errorf("Expected favorite to be false")
	}

	// Reading a missing record must not create it.
	again, err := s.GetHistory(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if again.ID != 0 {
		t.Errorf("Expected no stored record, got id %d", again.ID)
	}
}

func TestUpsertHistoryPartialUpdate(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)

	page, percent := 42, 40.0
	if _, err := s.UpsertHistory(userID, &model.HistoryUpdate{
		BookID:          bookID,
		LastReadPage:    &page,
		ProgressPercent: &percent,
	}); err != nil {
		t.Fatalf("Failed to upsert history: %v", err)
	}

	// A later update that only touches the page must leave the percent alone.
	page = 50
	history, err := s.UpsertHistory(userID, &model.HistoryUpdate{
		BookID:       bookID,
		LastReadPage: &page,
	})
	if err != nil {
		t.Fatalf("Failed to upsert history: %v", err)
	}
	if history.LastReadPage != 50 {
		t.Errorf("Expected last read page 50, got %d", history.LastReadPage)
	}
	if history.ProgressPercent != 40 {
		t.Errorf("Expected progress percent 40, got %v", history.ProgressPercent)
	}

	stored, err := s.GetHistory(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if stored.LastReadPage != 50 || stored.ProgressPercent != 40 {
		t.Errorf("Stored history mismatch: page=%d percent=%v", stored.LastReadPage, stored.ProgressPercent)
	}
}

// A best-effort update with one type-mismatched field still persists the
// valid fields that follow it.
func TestUpsertHistoryToleratesMismatchedField(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)

	update := &model.HistoryUpdate{}
	body := `{"last_read_page": "five", "progress_percent": 50}`
	err := json.Unmarshal([]byte(body), update)
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Expected a type error, got %v", err)
	}

	update.BookID = bookID
	history, err := s.UpsertHistory(userID, update)
	if err != nil {
		t.Fatalf("Failed to upsert history: %v", err)
	}
	if history.ProgressPercent != 50 {
		t.Errorf("Expected progress percent 50, got %v", history.ProgressPercent)
	}
	if history.LastReadPage != 1 {
		t.Errorf("Expected the page left at its default, got %d", history.LastReadPage)
	}

	stored, err := s.GetHistory(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if stored.ProgressPercent != 50 {
		t.Errorf("Stored percent mismatch: %v", stored.ProgressPercent)
	}
}

func TestUpsertHistoryClampsPercent(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)

	over := 150.0
	history, err := s.UpsertHistory(userID, &model.HistoryUpdate{BookID: bookID, ProgressPercent: &over})
	if err != nil {
		t.Fatalf("Failed to upsert history: %v", err)
	}
	if history.ProgressPercent != 100 {
		t.Errorf("Expected percent clamped to 100, got %v", history.ProgressPercent)
	}

	under := -10.0
	history, err = s.UpsertHistory(userID, &model.HistoryUpdate{BookID: bookID, ProgressPercent: &under})
	if err != nil {
		t.Fatalf("Failed to upsert history: %v", err)
	}
	if history.ProgressPercent != 0 {
		t.Errorf("Expected percent clamped to 0, got %v", history.ProgressPercent)
	}
}

func TestPageBookmarksIdempotent(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)

	for i := 0; i < 3; i++ {
		if _, err := s.AddPageBookmark(userID, bookID, 7); err != nil {
			t.Fatalf("Failed to add bookmark: %v", err)
		}
	}
	history, err := s.GetHistory(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history.Bookmarks) != 1 || history.Bookmarks[0] != 7 {
		t.Errorf("Expected bookmarks [7], got %v", history.Bookmarks)
	}

	// Removing a page that was never bookmarked is a no-op.
	history, err = s.RemovePageBookmark(userID, bookID, 99)
	if err != nil {
		t.Fatalf("Failed to remove bookmark: %v", err)
	}
	if len(history.Bookmarks) != 1 {
		t.Errorf("Expected bookmarks unchanged, got %v", history.Bookmarks)
	}

	history, err = s.RemovePageBookmark(userID, bookID, 7)
	if err != nil {
		t.Fatalf("Failed to remove bookmark: %v", err)
	}
	if len(history.Bookmarks) != 0 {
		t.Errorf("Expected empty bookmarks, got %v", history.Bookmarks)
	}
}

func TestLocationBookmarks(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)

	if _, err := s.AddLocationBookmark(userID, bookID, model.BookmarkLocation{
		Chapter: "ch2", Offset: 0.25, Note: "plot twist",
	}); err != nil {
		t.Fatalf("Failed to add location bookmark: %v", err)
	}
	if _, err := s.AddLocationBookmark(userID, bookID, model.BookmarkLocation{
		Chapter: "ch2", Offset: 0.25, Note: "same spot again",
	}); err != nil {
		t.Fatalf("Failed to add location bookmark: %v", err)
	}
	if _, err := s.AddLocationBookmark(userID, bookID, model.BookmarkLocation{
		Chapter: "ch3", Offset: 0.5,
	}); err != nil {
		t.Fatalf("Failed to add location bookmark: %v", err)
	}

	history, err := s.GetHistory(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history.BookmarkLocations) != 3 {
		t.Fatalf("Expected 3 location bookmarks, got %d", len(history.BookmarkLocations))
	}
	if history.BookmarkLocations[0].CreatedTs == 0 {
		t.Errorf("Expected created timestamp to be set")
	}

	// Removal matches on (chapter, offset) and drops every match.
	history, err = s.RemoveLocationBookmark(userID, bookID, "ch2", 0.25)
	if err != nil {
		t.Fatalf("Failed to remove location bookmark: %v", err)
	}
	if len(history.BookmarkLocations) != 1 {
		t.Fatalf("Expected 1 location bookmark left, got %d", len(history.BookmarkLocations))
	}
	if history.BookmarkLocations[0].Chapter != "ch3" {
		t.Errorf("Expected ch3 bookmark to survive, got %v", history.BookmarkLocations[0])
	}
}

func TestToggleFavorite(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)

	// Toggling with no record creates one with the flag on.
	history, err := s.ToggleFavorite(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to toggle favorite: %v", err)
	}
	if !history.IsFavorite {
		t.Errorf("Expected favorite true after first toggle")
	}

	books, err := s.ListFavoriteBooks(userID)
	if err != nil {
		t.Fatalf("Failed to list favorites: %v", err)
	}
	if len(books) != 1 || books[0].ID != bookID {
		t.Errorf("Expected favorite list with one book, got %v", books)
	}

	history, err = s.ToggleFavorite(userID, bookID)
	if err != nil {
		t.Fatalf("Failed to toggle favorite: %v", err)
	}
	if history.IsFavorite {
		t.Errorf("Expected favorite false after second toggle")
	}

	books, err = s.ListFavoriteBooks(userID)
	if err != nil {
		t.Fatalf("Failed to list favorites: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("Expected empty favorite list, got %v", books)
	}
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	s := createTestStore(t)
	userID, bookID := seedUserAndBook(t, s)
	other, err := s.CreateUser(&model.User{
		Username:     "other",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	page := 12
	if _, err := s.UpsertHistory(userID, &model.HistoryUpdate{BookID: bookID, LastReadPage: &page}); err != nil {
		t.Fatalf("Failed to upsert history: %v", err)
	}

	history, err := s.GetHistory(other.ID, bookID)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if history.LastReadPage != 1 {
		t.Errorf("Expected default history for other user, got page %d", history.LastReadPage)
	}
}
