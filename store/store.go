package store

import (
	"database/sql"
	"sync"
)

// Store wraps the sqlite handle and keeps small read caches.
type Store struct {
	db *sql.DB

	UserCache          sync.Map // map[int]*model.User
	BookCache          sync.Map // map[int]*model.Book
	SystemSettingCache sync.Map // map[string]*model.SystemSetting
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}
