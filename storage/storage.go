package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/log"
	"go.uber.org/zap"
)

// Storage persists uploaded book assets.
type Storage interface {
	// StoreFile writes the reader to the path relative to the storage root
	// and returns the absolute path.
	StoreFile(reader io.Reader, relPath string) (string, error)
	// Open opens a stored file by its absolute path.
	Open(path string) (*os.File, error)
	// RemoveBookDir removes every stored asset of a book.
	RemoveBookDir(bookUUID string) error
}

// LocalStorage stores book assets under <data>/books/<book-uuid>/.
type LocalStorage struct {
	Root string
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{Root: config.Opts.Data}
}

// BookDir returns the asset directory of a book.
func (s *LocalStorage) BookDir(bookUUID string) string {
	return filepath.Join(s.Root, "books", bookUUID)
}

func (s *LocalStorage) CoverPath(bookUUID string) string {
	return filepath.Join(s.BookDir(bookUUID), "cover.webp")
}

func (s *LocalStorage) PagePath(bookUUID string, pageNumber int) string {
	return filepath.Join(s.BookDir(bookUUID), "pages", fmt.Sprintf("page_%d.webp", pageNumber))
}

func (s *LocalStorage) TextPath(bookUUID string) string {
	return filepath.Join(s.BookDir(bookUUID), "book.txt")
}

func (s *LocalStorage) StoreFile(reader io.Reader, relPath string) (string, error) {
	filePath := relPath
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(s.Root, relPath)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directories: %v", err)
	}

	outFile, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	defer outFile.Close()

	// Calculate hash while saving the file
	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(outFile, hash), reader); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	fileHash := hex.EncodeToString(hash.Sum(nil))
	log.Debug("Stored file", zap.String("path", filePath), zap.String("hash", fileHash))

	return filePath, nil
}

func (s *LocalStorage) Open(path string) (*os.File, error) {
	return os.Open(path)
}

func (s *LocalStorage) RemoveBookDir(bookUUID string) error {
	return os.RemoveAll(s.BookDir(bookUUID))
}
