package worker // import "github.com/bookwell/bookwell/worker"

import (
	"github.com/bookwell/bookwell/model"
	"github.com/bookwell/bookwell/storage"
	"github.com/bookwell/bookwell/store"
)

// UploadPool runs the background workers that store and transcode uploaded
// book assets.
type UploadPool struct {
	queue chan model.Job
}

func NewUploadPool(store *store.Store, size int) *UploadPool {
	pool := &UploadPool{
		queue: make(chan model.Job),
	}

	localStorage := storage.NewLocalStorage()
	for i := 0; i < size; i++ {
		worker := &UploadWorker{id: i, store: store, storage: localStorage}
		go worker.Run(pool.queue)
	}

	return pool
}

func (p *UploadPool) GetQueue() chan model.Job {
	return p.queue
}

func (p *UploadPool) Push(job model.Job) {
	p.queue <- job
}
