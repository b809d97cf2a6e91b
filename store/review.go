package store

import (
	"strings"

	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UpsertReview writes a user's review of a book, one per (book, user) pair,
// and refreshes the book's rating aggregate.
func (s *Store) UpsertReview(review *model.Review) (*model.Review, error) {
	stmt := `
		INSERT INTO review (book_id, user_id, rating, text)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (book_id, user_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			text = EXCLUDED.text,
			updated_ts = strftime('%s', 'now')
		RETURNING id, book_id, user_id, rating, text, created_ts, updated_ts
	`
	var saved model.Review
	if err := s.db.QueryRow(stmt, review.BookID, review.UserID, review.Rating, review.Text).Scan(
		&saved.ID,
		&saved.BookID,
		&saved.UserID,
		&saved.Rating,
		&saved.Text,
		&saved.CreatedTs,
		&saved.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert review")
	}

	if err := s.refreshBookRating(review.BookID); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *Store) ListReviews(find *model.FindReview) ([]*model.Review, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.BookID; v != nil {
		where, args = append(where, "r.book_id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "r.user_id = ?"), append(args, *v)
	}

	query := `
		SELECT
			r.id,
			r.book_id,
			r.user_id,
			r.rating,
			r.text,
			r.created_ts,
			r.updated_ts,
			u.username
		FROM review r
		JOIN user u ON u.id = r.user_id
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY r.created_ts DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query reviews", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Review, 0)
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Text,
			&review.CreatedTs,
			&review.UpdatedTs,
			&review.Username,
		); err != nil {
			return nil, err
		}
		list = append(list, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) GetUserReview(bookID, userID int) (*model.Review, error) {
	list, err := s.ListReviews(&model.FindReview{BookID: &bookID, UserID: &userID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) refreshBookRating(bookID int) error {
	var total int
	var average float64
	stmt := `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM review WHERE book_id = ?`
	if err := s.db.QueryRow(stmt, bookID).Scan(&total, &average); err != nil {
		return errors.Wrap(err, "failed to compute book rating")
	}
	return s.UpdateBookCounters(bookID, average, total)
}
