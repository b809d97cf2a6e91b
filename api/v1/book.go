package v1

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/http/request"
	"github.com/bookwell/bookwell/http/response"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/bookwell/bookwell/util"
	"github.com/bookwell/bookwell/validator"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{}
	if v := request.QueryStringParam(r, "category", ""); v != "" {
		category := model.Category(v)
		if !model.IsValidCategory(category) {
			response.BadRequest(w, r, errors.New("unknown category"))
			return
		}
		find.Category = &category
	}
	if v := request.QueryStringParam(r, "search", ""); v != "" {
		find.Search = &v
	}
	if v := request.QueryIntParam(r, "limit", 0); v > 0 {
		find.Limit = &v
	}

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Error getting book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

// uploadBook accepts a multipart form with the book metadata, an optional
// cover image, an optional plain-text source and any number of page images.
// Files are stored and transcoded by the upload workers.
func (h *Handler) uploadBook(w http.ResponseWriter, r *http.Request) {
	if request.GetUserRole(r) != model.RoleHost && request.GetUserRole(r) != model.RoleAdmin {
		response.Forbidden(w, r)
		return
	}

	if err := r.ParseMultipartForm(config.Opts.MaxUploadSize << 20); err != nil {
		log.Error("Max upload size exceeded", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	upload := &model.BookUploadRequest{
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Description: r.FormValue("description"),
		Category:    model.Category(r.FormValue("category")),
	}
	if upload.Category == "" {
		upload.Category = model.CategoryOther
	}
	if err := validator.ValidateBookUploadRequest(upload); err != nil {
		log.Error("Failed to validate book upload", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	userID := request.GetUserID(r)
	book := &model.Book{
		Title:       upload.Title,
		Author:      upload.Author,
		Description: upload.Description,
		Category:    upload.Category,
		UploadedBy:  userID,
		UUID:        util.GenUUID(),
	}
	newBook, err := h.store.AddBook(book)
	if err != nil {
		log.Error("Failed to add book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	jobs := make([]model.Job, 0)

	if covers := r.MultipartForm.File["cover"]; len(covers) > 0 {
		jobs = append(jobs, model.Job{
			UserID: userID,
			BookID: newBook.ID,
			Path:   h.storage.CoverPath(newBook.UUID),
			Type:   model.JobTypeCover,
			Status: model.JobStatusPending,
			Item:   covers[0],
		})
	}
	if texts := r.MultipartForm.File["text"]; len(texts) > 0 {
		jobs = append(jobs, model.Job{
			UserID: userID,
			BookID: newBook.ID,
			Path:   h.storage.TextPath(newBook.UUID),
			Type:   model.JobTypeText,
			Status: model.JobStatusPending,
			Item:   texts[0],
		})
	}
	for i, page := range r.MultipartForm.File["pages"] {
		jobs = append(jobs, model.Job{
			UserID:     userID,
			BookID:     newBook.ID,
			PageNumber: i + 1,
			Path:       h.storage.PagePath(newBook.UUID, i+1),
			Type:       model.JobTypePage,
			Status:     model.JobStatusPending,
			Item:       page,
		})
	}

	for _, job := range jobs {
		newJob, err := h.store.AddJob(job)
		if err != nil {
			log.Error("Failed to add job", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		go h.uploadPool.Push(*newJob)
	}

	response.Created(w, r, newBook)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if request.GetUserRole(r) != model.RoleHost && request.GetUserRole(r) != model.RoleAdmin {
		response.Forbidden(w, r)
		return
	}

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

	if err := h.store.RemoveBook(bookID); err != nil {
		log.Error("Failed to delete book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if err := h.storage.RemoveBookDir(book.UUID); err != nil {
		log.Error("Failed to remove book files", zap.Error(err))
	}

	response.NoContent(w, r)
}

func (h *Handler) getCover(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil || book.CoverPath == "" {
		response.NotFound(w, r)
		return
	}
	response.ServeFile(w, r, book.CoverPath)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	pageNumber, err := strconv.Atoi(request.RouteStringParam(r, "pageNumber"))
	if err != nil || pageNumber < 1 {
		response.BadRequest(w, r, errors.New("invalid page number"))
		return
	}

	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}

	page, err := h.store.GetPage(bookID, pageNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, r)
			return
		}
		log.Error("Failed to get page", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.ServeFile(w, r, page.ImagePath)
}
