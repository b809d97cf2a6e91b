package reader

import (
	"fmt"
	"strings"
	"testing"
)

func TestSegmentNeverReturnsZeroChapters(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\n", "one paragraph"} {
		chapters := Segment(input, "Book")
		if len(chapters) == 0 {
			t.Fatalf(`Expected at least one chapter for input %q, got none`, input)
		}
	}
}

func TestSegmentLabeling(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 20; i++ {
		paragraphs = append(paragraphs, strings.Repeat("word ", 100))
	}
	chapters := Segment(strings.Join(paragraphs, "\n\n"), "Moby Dick")

	if len(chapters) < 2 {
		t.Fatalf(`Expected multiple chapters, got %d`, len(chapters))
	}
	if chapters[0].Title != "Moby Dick — Introduction" {
		t.Errorf(`Unexpected first chapter title: %q`, chapters[0].Title)
	}
	for i := 1; i < len(chapters); i++ {
		expected := fmt.Sprintf("Chapter %d", i+1)
		if chapters[i].Title != expected {
			t.Errorf(`Chapter %d title is %q instead of %q`, i+1, chapters[i].Title, expected)
		}
	}
	for i, ch := range chapters {
		expected := fmt.Sprintf("ch%d", i+1)
		if ch.ID != expected {
			t.Errorf(`Chapter %d id is %q instead of %q`, i+1, ch.ID, expected)
		}
	}
}

// Concatenating the paragraphs across all chapters must reproduce the
// normalized paragraph sequence of the input, nothing dropped or reordered.
func TestSegmentCoverage(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 50; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("Paragraph number %d. %s", i, strings.Repeat("x", i*7)))
	}
	input := strings.Join(paragraphs, "\n\n")

	chapters := Segment(input, "Coverage")

	var got []string
	for _, ch := range chapters {
		for _, part := range strings.Split(ch.HTML, "\n") {
			part = strings.TrimSuffix(strings.TrimPrefix(part, "<p>"), "</p>")
			got = append(got, part)
		}
	}

	want := SplitParagraphs(input)
	if len(got) != len(want) {
		t.Fatalf(`Got %d paragraphs across chapters, want %d`, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf(`Paragraph %d mismatch: got %q, want %q`, i, got[i], want[i])
		}
	}
}

func TestSegmentSizeBand(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 100; i++ {
		paragraphs = append(paragraphs, strings.Repeat("a", 200))
	}
	chapters := Segment(strings.Join(paragraphs, "\n\n"), "Sizes")

	for i, ch := range chapters {
		size := 0
		for _, part := range strings.Split(ch.HTML, "\n") {
			size += len(part) - len("<p></p>")
		}
		if i < len(chapters)-1 {
			if size < MinChapterSize {
				t.Errorf(`Chapter %d closed below the soft floor: %d chars`, i+1, size)
			}
			if size > MaxChapterSize {
				t.Errorf(`Chapter %d exceeds the preferred maximum: %d chars`, i+1, size)
			}
		}
	}
}

func TestSegmentOversizedParagraphPassthrough(t *testing.T) {
	huge := strings.Repeat("b", MaxChapterSize+500)
	input := "short intro\n\n" + huge + "\n\nshort outro"

	chapters := Segment(input, "Oversized")

	found := false
	for _, ch := range chapters {
		if strings.Contains(ch.HTML, huge) {
			found = true
		}
	}
	if !found {
		t.Fatal(`Oversized paragraph was split or dropped`)
	}
}

func TestSegmentCollapsesWrappedLines(t *testing.T) {
	input := "line one\nline two\nline three\n\nsecond paragraph"
	chapters := Segment(input, "Wraps")

	if len(chapters) != 1 {
		t.Fatalf(`Expected 1 chapter, got %d`, len(chapters))
	}
	if !strings.Contains(chapters[0].HTML, "<p>line one line two line three</p>") {
		t.Errorf(`Interior newlines were not collapsed: %q`, chapters[0].HTML)
	}
}

func TestSegmentEscapesMarkup(t *testing.T) {
	chapters := Segment("a < b & b > c", "Escapes")
	if len(chapters) != 1 {
		t.Fatalf(`Expected 1 chapter, got %d`, len(chapters))
	}
	if chapters[0].HTML != "<p>a &lt; b &amp; b &gt; c</p>" {
		t.Errorf(`Unexpected markup: %q`, chapters[0].HTML)
	}
}

func TestSegmentEndToEnd(t *testing.T) {
	input := strings.Repeat("Para one.\n\nPara two is longer and repeated. ", 80)

	chapters := Segment(input, "Sample")

	if len(chapters) != 2 {
		t.Fatalf(`Expected exactly 2 chapters, got %d`, len(chapters))
	}
	if chapters[0].Title != "Sample — Introduction" {
		t.Errorf(`Unexpected first title: %q`, chapters[0].Title)
	}
	if chapters[1].Title != "Chapter 2" {
		t.Errorf(`Unexpected second title: %q`, chapters[1].Title)
	}
	if !strings.Contains(chapters[0].HTML, "Para one.") {
		t.Errorf(`First chapter should contain the opening paragraph`)
	}
}

func TestFallbackChapter(t *testing.T) {
	ch := FallbackChapter("Empty Book", "")
	if ch.HTML != "<p>No description provided</p>" {
		t.Errorf(`Unexpected fallback body: %q`, ch.HTML)
	}
	if ch.Title != "Empty Book — Introduction" {
		t.Errorf(`Unexpected fallback title: %q`, ch.Title)
	}

	ch = FallbackChapter("Described Book", "A fine description.")
	if ch.HTML != "<p>A fine description.</p>" {
		t.Errorf(`Unexpected fallback body: %q`, ch.HTML)
	}
}
