package model

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
)

func TestHistoryUpdateApply(t *testing.T) {
	history := DefaultHistory(1, 2)
	history.ProgressPercent = 40

	page := 50
	update := &HistoryUpdate{LastReadPage: &page}
	update.Apply(history)

	if history.LastReadPage != 50 {
		t.Errorf("Expected page 50, got %d", history.LastReadPage)
	}
	if history.ProgressPercent != 40 {
		t.Errorf("Expected percent untouched at 40, got %v", history.ProgressPercent)
	}

	over, under := 150.0, -10.0
	(&HistoryUpdate{ProgressPercent: &over}).Apply(history)
	if history.ProgressPercent != 100 {
		t.Errorf("Expected percent clamped to 100, got %v", history.ProgressPercent)
	}
	(&HistoryUpdate{ProgressPercent: &under}).Apply(history)
	if history.ProgressPercent != 0 {
		t.Errorf("Expected percent clamped to 0, got %v", history.ProgressPercent)
	}
}

// A field of the wrong type is dropped while the fields after it still
// decode. The decoder reports the mismatch but keeps going.
func TestHistoryUpdateDecodeDropsMismatchedField(t *testing.T) {
	update := &HistoryUpdate{}
	payload := `{"last_read_page": "five", "progress_percent": 50}`
	err := json.Unmarshal([]byte(payload), update)

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Expected a type error, got %v", err)
	}
	if typeErr.Field != "last_read_page" {
		t.Errorf("Expected last_read_page to be the mismatched field, got %q", typeErr.Field)
	}
	if update.LastReadPage != nil {
		t.Errorf("Expected mismatched page to stay unset, got %v", *update.LastReadPage)
	}
	if update.ProgressPercent == nil || *update.ProgressPercent != 50 {
		t.Errorf("Expected progress percent 50, got %v", update.ProgressPercent)
	}
}

func TestHistoryUpdateDecodeSkipsUnknownFields(t *testing.T) {
	update := &HistoryUpdate{}
	payload := `{"last_read_page": 3, "some_future_field": true}`
	if err := json.Unmarshal([]byte(payload), update); err != nil {
		t.Fatalf("Failed to decode update: %v", err)
	}
	if update.LastReadPage == nil || *update.LastReadPage != 3 {
		t.Errorf("Expected last read page 3, got %v", update.LastReadPage)
	}
	if update.ProgressPercent != nil {
		t.Errorf("Expected nil progress percent")
	}
}
