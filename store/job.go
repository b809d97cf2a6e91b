package store

import (
	"github.com/bookwell/bookwell/model"
)

func (s *Store) AddJob(job model.Job) (*model.Job, error) {
	stmt := `
    INSERT INTO job (user_id, book_id, page_number, path, type, status) VALUES (?, ?, ?, ?, ?, ?)
    RETURNING id, user_id, book_id, page_number, path, type, status
    `

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var j model.Job
	if err := tx.QueryRow(stmt, job.UserID, job.BookID, job.PageNumber, job.Path, job.Type, job.Status).Scan(
		&j.ID, &j.UserID, &j.BookID, &j.PageNumber, &j.Path, &j.Type, &j.Status,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	j.Item = job.Item
	return &j, nil
}

func (s *Store) UpdateJobStatus(jobID int, status string) error {
	_, err := s.db.Exec(`UPDATE job SET status = ? WHERE id = ?`, status, jobID)
	return err
}
