package v1

import (
	"fmt"
	"net/http"
	"os"

	"github.com/bookwell/bookwell/http/request"
	"github.com/bookwell/bookwell/http/response"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/bookwell/bookwell/reader"
	"github.com/go-shiori/go-epub"
	"go.uber.org/zap"
)

type bookTextResponse struct {
	Book     *model.Book      `json:"book"`
	Chapters []reader.Chapter `json:"chapters"`
}

// getBookText serves the continuous-text reader: the stored plain text is
// segmented into chapters on every request. Books without a text source get
// a single chapter built from the description.
func (h *Handler) getBookText(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	chapters, err := h.segmentBook(book)
	if err != nil {
		log.Error("Failed to segment book text", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &bookTextResponse{Book: book, Chapters: chapters})
}

func (h *Handler) segmentBook(book *model.Book) ([]reader.Chapter, error) {
	if book.TextPath == "" {
		return []reader.Chapter{reader.FallbackChapter(book.Title, book.Description)}, nil
	}
	raw, err := os.ReadFile(book.TextPath)
	if err != nil {
		return nil, err
	}
	return reader.Segment(string(raw), book.Title), nil
}

// exportBook packages the segmented chapters as an EPUB download.
func (h *Handler) exportBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	chapters, err := h.segmentBook(book)
	if err != nil {
		log.Error("Failed to segment book text", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	e, err := epub.NewEpub(book.Title)
	if err != nil {
		log.Error("Failed to create epub", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	e.SetAuthor(book.Author)
	if book.Description != "" {
		e.SetDescription(book.Description)
	}
	for _, chapter := range chapters {
		body := fmt.Sprintf("<h1>%s</h1>\n%s", chapter.Title, chapter.HTML)
		if _, err := e.AddSection(body, chapter.Title, chapter.ID+".xhtml", ""); err != nil {
			log.Error("Failed to add epub section", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/epub+zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", book.Title+".epub"))
	if _, err := e.WriteTo(w); err != nil {
		log.Error("Failed to write epub", zap.Error(err))
	}
}
