// Package reader turns extracted book text into display-ready chapters for
// the continuous-text reading mode.
package reader

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinChapterSize is the soft floor of accumulated characters a chapter
	// must reach before the size rule is allowed to close it.
	MinChapterSize = 1500
	// MaxChapterSize is the preferred upper bound of a chapter. A single
	// paragraph longer than this still becomes one chapter, paragraphs are
	// never split.
	MaxChapterSize = 2500
)

// Chapter is one reading unit. HTML holds pre-escaped paragraph markup,
// consumers must not escape it again.
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Segment converts a flat extracted text blob into an ordered, non-empty
// chapter list. Paragraphs are grouped greedily by accumulated character
// count, keeping each chapter between MinChapterSize and MaxChapterSize
// where the input allows it. The paragraph sequence is preserved losslessly.
func Segment(raw, title string) []Chapter {
	paragraphs := SplitParagraphs(raw)
	if len(paragraphs) == 0 {
		// Downstream consumers never receive zero chapters.
		return []Chapter{{
			ID:    "ch1",
			Title: introTitle(title),
			HTML:  renderParagraphs([]string{strings.TrimSpace(raw)}),
		}}
	}

	groups := groupParagraphs(paragraphs)

	chapters := make([]Chapter, 0, len(groups))
	for i, group := range groups {
		chapterTitle := fmt.Sprintf("Chapter %d", i+1)
		if i == 0 {
			chapterTitle = introTitle(title)
		}
		chapters = append(chapters, Chapter{
			ID:    fmt.Sprintf("ch%d", i+1),
			Title: chapterTitle,
			HTML:  renderParagraphs(group),
		})
	}
	return chapters
}

// FallbackChapter is returned when a book has no extractable text at all.
// The body comes from the catalog description.
func FallbackChapter(title, description string) Chapter {
	body := strings.TrimSpace(description)
	if body == "" {
		body = "No description provided"
	}
	return Chapter{
		ID:    "ch1",
		Title: introTitle(title),
		HTML:  renderParagraphs([]string{body}),
	}
}

// SplitParagraphs normalizes raw extracted text into trimmed paragraphs.
// Runs of blank lines delimit paragraphs, single newlines inside a paragraph
// are line-wrap artifacts from extraction and collapse to spaces.
func SplitParagraphs(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	parts := paragraphBreak.Split(raw, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(strings.ReplaceAll(part, "\n", " "))
		if part == "" {
			continue
		}
		paragraphs = append(paragraphs, part)
	}
	return paragraphs
}

// groupParagraphs packs paragraphs into chapters in document order. A group
// closes only when appending the next paragraph would push it past
// MaxChapterSize and it already holds at least MinChapterSize characters.
func groupParagraphs(paragraphs []string) [][]string {
	var groups [][]string
	var current []string
	acc := 0

	for _, p := range paragraphs {
		size := len(p)
		if acc+size > MaxChapterSize && acc >= MinChapterSize {
			groups = append(groups, current)
			current = []string{p}
			acc = size
			continue
		}
		current = append(current, p)
		acc += size
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

func renderParagraphs(paragraphs []string) string {
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, "<p>"+htmlEscaper.Replace(p)+"</p>")
	}
	return strings.Join(parts, "\n")
}

func introTitle(title string) string {
	return title + " — Introduction"
}
