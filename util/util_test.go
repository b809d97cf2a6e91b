package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasPrefixes(t *testing.T) {
	if !HasPrefixes("/api/v1/signin", "/api/v1", "/healthcheck") {
		t.Errorf("Expected prefix match")
	}
	if HasPrefixes("/metrics", "/api/v1") {
		t.Errorf("Unexpected prefix match")
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("reader@example.org") {
		t.Errorf("Valid email rejected")
	}
	if ValidateEmail("not-an-email") {
		t.Errorf("Invalid email accepted")
	}
}

func TestRandomString(t *testing.T) {
	s, err := RandomString(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 32 {
		t.Errorf("Expected 32 characters, got %d", len(s))
	}
}

func TestGenerateNewFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.png")
	if got := GenerateNewFileName(path); got != path {
		t.Errorf("Missing file should keep its name, got %s", got)
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	got := GenerateNewFileName(path)
	if got == path {
		t.Errorf("Existing file should get a new name")
	}
}
