package store

import (
	"strings"

	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Store) AddFavoriteLine(line *model.FavoriteLine) (*model.FavoriteLine, error) {
	stmt := `
		INSERT INTO favorite_line (
			user_id, book_id, text, chapter, paragraph_index, char_start, char_end, scroll_offset, color, note
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, user_id, book_id, text, chapter, paragraph_index, char_start, char_end, scroll_offset, color, note, created_ts
	`
	var saved model.FavoriteLine
	if err := s.db.QueryRow(stmt,
		line.UserID,
		line.BookID,
		line.Text,
		line.Chapter,
		line.Location.ParagraphIndex,
		line.Location.CharStart,
		line.Location.CharEnd,
		line.Location.Offset,
		line.Color,
		line.Note,
	).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.BookID,
		&saved.Text,
		&saved.Chapter,
		&saved.Location.ParagraphIndex,
		&saved.Location.CharStart,
		&saved.Location.CharEnd,
		&saved.Location.Offset,
		&saved.Color,
		&saved.Note,
		&saved.CreatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to add favorite line")
	}
	return &saved, nil
}

func (s *Store) ListFavoriteLines(find *model.FindFavoriteLine) ([]*model.FavoriteLine, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}

	query := `
		SELECT
			id, user_id, book_id, text, chapter, paragraph_index, char_start, char_end, scroll_offset, color, note, created_ts
		FROM favorite_line
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query favorite lines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.FavoriteLine, 0)
	for rows.Next() {
		var line model.FavoriteLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.BookID,
			&line.Text,
			&line.Chapter,
			&line.Location.ParagraphIndex,
			&line.Location.CharStart,
			&line.Location.CharEnd,
			&line.Location.Offset,
			&line.Color,
			&line.Note,
			&line.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// RemoveFavoriteLine deletes a highlight, but only when it belongs to the
// given user.
func (s *Store) RemoveFavoriteLine(lineID, userID int) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM favorite_line WHERE id = ? AND user_id = ?`, lineID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
