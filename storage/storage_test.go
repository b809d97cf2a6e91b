package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/log"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestStoreFileRelativePath(t *testing.T) {
	s := &LocalStorage{Root: t.TempDir()}

	path, err := s.StoreFile(strings.NewReader("once upon a time"), "books/abc/book.txt")
	if err != nil {
		t.Fatalf("Failed to store file: %v", err)
	}
	if path != filepath.Join(s.Root, "books/abc/book.txt") {
		t.Errorf("Unexpected stored path: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read stored file: %v", err)
	}
	if string(content) != "once upon a time" {
		t.Errorf("Stored content mismatch: %q", content)
	}
}

func TestStoreFileAbsolutePath(t *testing.T) {
	s := &LocalStorage{Root: t.TempDir()}

	// An absolute target, like the paths built by BookDir, is used as-is.
	target := s.TextPath("abc")
	path, err := s.StoreFile(strings.NewReader("chapter one"), target)
	if err != nil {
		t.Fatalf("Failed to store file: %v", err)
	}
	if path != target {
		t.Errorf("Expected path %s, got %s", target, path)
	}

	file, err := s.Open(path)
	if err != nil {
		t.Fatalf("Failed to open stored file: %v", err)
	}
	file.Close()
}
