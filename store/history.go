package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GetHistory returns the reading position of a (user, book) pair. A pair
// that was never written returns the zero-value default, absence is a valid
// state and never an error.
func (s *Store) GetHistory(userID, bookID int) (*model.History, error) {
	history, err := s.findHistory(userID, bookID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return model.DefaultHistory(userID, bookID), nil
	}
	return history, nil
}

// UpsertHistory merges a partial update into the stored position, creating
// the record on first write. Fields absent from the update keep their stored
// values. The last write for a field wins, there is no conflict detection.
func (s *Store) UpsertHistory(userID int, update *model.HistoryUpdate) (*model.History, error) {
	history, err := s.GetHistory(userID, update.BookID)
	if err != nil {
		return nil, err
	}
	update.Apply(history)
	if err := s.saveHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

// AddPageBookmark adds a page number to the bookmark set. Adding a page that
// is already bookmarked is a no-op.
func (s *Store) AddPageBookmark(userID, bookID, pageNumber int) (*model.History, error) {
	history, err := s.GetHistory(userID, bookID)
	if err != nil {
		return nil, err
	}
	exists := false
	for _, p := range history.Bookmarks {
		if p == pageNumber {
			exists = true
			break
		}
	}
	if !exists {
		history.Bookmarks = append(history.Bookmarks, pageNumber)
	}
	if err := s.saveHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

// RemovePageBookmark removes a page number from the bookmark set. Removing
// a page that was never bookmarked is a silent no-op.
func (s *Store) RemovePageBookmark(userID, bookID, pageNumber int) (*model.History, error) {
	history, err := s.findHistory(userID, bookID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return model.DefaultHistory(userID, bookID), nil
	}
	kept := history.Bookmarks[:0]
	for _, p := range history.Bookmarks {
		if p != pageNumber {
			kept = append(kept, p)
		}
	}
	history.Bookmarks = kept
	if err := s.saveHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

// AddLocationBookmark appends a continuous-text bookmark.
func (s *Store) AddLocationBookmark(userID, bookID int, location model.BookmarkLocation) (*model.History, error) {
	history, err := s.GetHistory(userID, bookID)
	if err != nil {
		return nil, err
	}
	if location.CreatedTs == 0 {
		location.CreatedTs = time.Now().Unix()
	}
	history.BookmarkLocations = append(history.BookmarkLocations, location)
	if err := s.saveHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

// RemoveLocationBookmark removes every bookmark matching the exact
// (chapter, offset) pair. Notes are not part of the match.
func (s *Store) RemoveLocationBookmark(userID, bookID int, chapter string, offset float64) (*model.History, error) {
	history, err := s.findHistory(userID, bookID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return model.DefaultHistory(userID, bookID), nil
	}
	kept := history.BookmarkLocations[:0]
	for _, loc := range history.BookmarkLocations {
		if loc.Chapter == chapter && loc.Offset == offset {
			continue
		}
		kept = append(kept, loc)
	}
	history.BookmarkLocations = kept
	if err := s.saveHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

// ToggleFavorite flips the favorite flag. Toggling a pair that has no record
// yet creates one with the flag turned on.
func (s *Store) ToggleFavorite(userID, bookID int) (*model.History, error) {
	history, err := s.findHistory(userID, bookID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = model.DefaultHistory(userID, bookID)
		history.IsFavorite = true
	} else {
		history.IsFavorite = !history.IsFavorite
	}
	if err := s.saveHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

// ListFavoriteBooks returns the books a user marked as favorite.
func (s *Store) ListFavoriteBooks(userID int) ([]*model.Book, error) {
	query := `
		SELECT
			b.id,
			b.created_ts,
			b.updated_ts,
			b.title,
			b.author,
			b.description,
			b.category,
			b.cover_path,
			b.text_path,
			b.total_pages,
			b.uploaded_by,
			b.average_rating,
			b.total_reviews,
			b.uuid
		FROM history h
		JOIN book b ON b.id = h.book_id
		WHERE h.user_id = ? AND h.is_favorite = 1
		ORDER BY h.updated_ts DESC
	`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		log.Error("Failed to query favorite books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.CreatedTs,
			&book.UpdatedTs,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.Category,
			&book.CoverPath,
			&book.TextPath,
			&book.TotalPages,
			&book.UploadedBy,
			&book.AverageRating,
			&book.TotalReviews,
			&book.UUID,
		); err != nil {
			return nil, err
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) findHistory(userID, bookID int) (*model.History, error) {
	query := `
		SELECT
			id,
			user_id,
			book_id,
			last_read_page,
			last_read_chapter,
			last_read_offset,
			progress_percent,
			bookmarks,
			bookmark_locations,
			is_favorite,
			updated_ts
		FROM history
		WHERE user_id = ? AND book_id = ?
	`
	var history model.History
	var bookmarks, locations string
	err := s.db.QueryRow(query, userID, bookID).Scan(
		&history.ID,
		&history.UserID,
		&history.BookID,
		&history.LastReadPage,
		&history.LastReadChapter,
		&history.LastReadOffset,
		&history.ProgressPercent,
		&bookmarks,
		&locations,
		&history.IsFavorite,
		&history.UpdatedTs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(bookmarks), &history.Bookmarks); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal bookmarks")
	}
	if err := json.Unmarshal([]byte(locations), &history.BookmarkLocations); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal bookmark locations")
	}
	if history.Bookmarks == nil {
		history.Bookmarks = []int{}
	}
	if history.BookmarkLocations == nil {
		history.BookmarkLocations = []model.BookmarkLocation{}
	}
	return &history, nil
}

func (s *Store) saveHistory(history *model.History) error {
	bookmarks, err := json.Marshal(history.Bookmarks)
	if err != nil {
		return errors.Wrap(err, "failed to marshal bookmarks")
	}
	locations, err := json.Marshal(history.BookmarkLocations)
	if err != nil {
		return errors.Wrap(err, "failed to marshal bookmark locations")
	}

	stmt := `
		INSERT INTO history (
			user_id,
			book_id,
			last_read_page,
			last_read_chapter,
			last_read_offset,
			progress_percent,
			bookmarks,
			bookmark_locations,
			is_favorite,
			updated_ts
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, strftime('%s', 'now'))
		ON CONFLICT (user_id, book_id) DO UPDATE SET
			last_read_page = EXCLUDED.last_read_page,
			last_read_chapter = EXCLUDED.last_read_chapter,
			last_read_offset = EXCLUDED.last_read_offset,
			progress_percent = EXCLUDED.progress_percent,
			bookmarks = EXCLUDED.bookmarks,
			bookmark_locations = EXCLUDED.bookmark_locations,
			is_favorite = EXCLUDED.is_favorite,
			updated_ts = EXCLUDED.updated_ts
	`
	_, err = s.db.Exec(stmt,
		history.UserID,
		history.BookID,
		history.LastReadPage,
		history.LastReadChapter,
		history.LastReadOffset,
		history.ProgressPercent,
		string(bookmarks),
		string(locations),
		history.IsFavorite,
	)
	return err
}
