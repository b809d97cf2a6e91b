package store

import (
	"fmt"
	"strings"

	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"go.uber.org/zap"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

// CheckBook reports whether the book exists.
func (s *Store) CheckBook(bookID int) bool {
	book, err := s.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Debug("Error checking book", zap.Error(err))
		return false
	}
	return book != nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Category; v != nil {
		where, args = append(where, "category = ?"), append(args, *v)
	}
	if v := find.Search; v != nil {
		pattern := "%" + strings.ToLower(*v) + "%"
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	query := `
        SELECT
            id,
            created_ts,
            updated_ts,
            title,
            author,
            description,
            category,
            cover_path,
            text_path,
            total_pages,
            uploaded_by,
            average_rating,
            total_reviews,
            uuid
        FROM book
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY title`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
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
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) AddBook(create *model.Book) (*model.Book, error) {
	fields := []string{"`title`", "`author`", "`description`", "`category`", "`cover_path`", "`text_path`", "`total_pages`", "`uploaded_by`", "`uuid`"}
	placeholder := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?"}
	args := []any{create.Title, create.Author, create.Description, create.Category, create.CoverPath, create.TextPath, create.TotalPages, create.UploadedBy, create.UUID}
	stmt := "INSERT INTO book (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") +
		") RETURNING id, created_ts, updated_ts, title, author, description, category, cover_path, text_path, total_pages, uploaded_by, average_rating, total_reviews, uuid"

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var book model.Book
	if err := tx.QueryRow(stmt, args...).Scan(
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

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &book, nil
}

func (s *Store) RemoveBook(bookID int) error {
	stmt := `DELETE FROM book WHERE id = ?`
	if _, err := s.db.Exec(stmt, bookID); err != nil {
		return err
	}
	s.BookCache.Delete(bookID)
	return nil
}

// UpdateBookCounters stores the recomputed review aggregate of a book.
func (s *Store) UpdateBookCounters(bookID int, averageRating float64, totalReviews int) error {
	stmt := `UPDATE book SET average_rating = ?, total_reviews = ?, updated_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, averageRating, totalReviews, bookID); err != nil {
		return err
	}
	s.BookCache.Delete(bookID)
	return nil
}

// UpdateBookCover records the stored cover image once the upload worker
// finishes transcoding it.
func (s *Store) UpdateBookCover(bookID int, coverPath string) error {
	stmt := `UPDATE book SET cover_path = ?, updated_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, coverPath, bookID); err != nil {
		return err
	}
	s.BookCache.Delete(bookID)
	return nil
}

func (s *Store) UpdateBookText(bookID int, textPath string) error {
	stmt := `UPDATE book SET text_path = ?, updated_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, textPath, bookID); err != nil {
		return err
	}
	s.BookCache.Delete(bookID)
	return nil
}

func (s *Store) UpdateBookTotalPages(bookID, totalPages int) error {
	stmt := `UPDATE book SET total_pages = ?, updated_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, totalPages, bookID); err != nil {
		return err
	}
	s.BookCache.Delete(bookID)
	return nil
}

func (s *Store) AddPage(page *model.Page) (*model.Page, error) {
	stmt := `
		INSERT INTO page (book_id, page_number, image_path)
		VALUES (?, ?, ?)
		ON CONFLICT (book_id, page_number) DO UPDATE SET image_path = EXCLUDED.image_path
		RETURNING id, book_id, page_number, image_path
	`
	var created model.Page
	if err := s.db.QueryRow(stmt, page.BookID, page.PageNumber, page.ImagePath).Scan(
		&created.ID,
		&created.BookID,
		&created.PageNumber,
		&created.ImagePath,
	); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) GetPage(bookID, pageNumber int) (*model.Page, error) {
	stmt := `
		SELECT id, book_id, page_number, image_path
		FROM page
		WHERE book_id = ? AND page_number = ?
	`
	var page model.Page
	err := s.db.QueryRow(stmt, bookID, pageNumber).Scan(
		&page.ID,
		&page.BookID,
		&page.PageNumber,
		&page.ImagePath,
	)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Store) CountPages(bookID int) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM page WHERE book_id = ?`, bookID).Scan(&count)
	return count, err
}
