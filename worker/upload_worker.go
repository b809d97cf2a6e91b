package worker

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/bookwell/bookwell/storage"
	"github.com/bookwell/bookwell/store"
	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var supportedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

type UploadWorker struct {
	id      int
	store   *store.Store
	storage *storage.LocalStorage
}

// Run stores uploaded book assets. Cover and page images are transcoded to
// WebP, the text source is copied as-is.
func (w *UploadWorker) Run(c <-chan model.Job) {
	log.Debug("UploadWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("user_id", job.UserID),
			zap.Int("book_id", job.BookID),
			zap.String("type", job.Type))

		if err := w.store.UpdateJobStatus(job.ID, model.JobStatusRunning); err != nil {
			log.Error("Error updating job status", zap.Error(err))
		}

		var err error
		switch job.Type {
		case model.JobTypeCover:
			err = w.handleCover(job)
		case model.JobTypePage:
			err = w.handlePage(job)
		case model.JobTypeText:
			err = w.handleText(job)
		default:
			log.Error("Unknown job type", zap.String("type", job.Type))
			continue
		}

		status := model.JobStatusDone
		if err != nil {
			log.Error("Job failed",
				zap.Int("worker_id", w.id),
				zap.Int("book_id", job.BookID),
				zap.String("type", job.Type),
				zap.Error(err))
			status = model.JobStatusFailed
		}
		if err := w.store.UpdateJobStatus(job.ID, status); err != nil {
			log.Error("Error updating job status", zap.Error(err))
		}
	}
}

func (w *UploadWorker) handleCover(job model.Job) error {
	if err := transcodeToWebP(job.Item.(*multipart.FileHeader), job.Path); err != nil {
		return err
	}
	return w.store.UpdateBookCover(job.BookID, job.Path)
}

func (w *UploadWorker) handlePage(job model.Job) error {
	if err := transcodeToWebP(job.Item.(*multipart.FileHeader), job.Path); err != nil {
		return err
	}
	if _, err := w.store.AddPage(&model.Page{
		BookID:     job.BookID,
		PageNumber: job.PageNumber,
		ImagePath:  job.Path,
	}); err != nil {
		return err
	}
	count, err := w.store.CountPages(job.BookID)
	if err != nil {
		return err
	}
	return w.store.UpdateBookTotalPages(job.BookID, count)
}

func (w *UploadWorker) handleText(job model.Job) error {
	fileHeader := job.Item.(*multipart.FileHeader)
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := w.storage.StoreFile(file, job.Path); err != nil {
		return err
	}
	return w.store.UpdateBookText(job.BookID, job.Path)
}

func transcodeToWebP(fileHeader *multipart.FileHeader, path string) error {
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return err
	}
	fileType := http.DetectContentType(head[:n])
	if !isSupportedType(fileType, supportedImageTypes) {
		return errors.Errorf("unsupported image type: %s", fileType)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var img image.Image
	if fileType == "image/webp" {
		img, err = webp.Decode(file)
	} else {
		img, _, err = image.Decode(file)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return webp.Encode(out, img, &webp.Options{Quality: 85})
}

func isSupportedType(fileType string, supportTypes []string) bool {
	for _, t := range supportTypes {
		if t == fileType {
			return true
		}
	}
	return false
}
