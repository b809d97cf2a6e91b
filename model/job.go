package model //import "github.com/bookwell/bookwell/model"

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

const (
	JobTypeCover = "cover"
	JobTypePage  = "page"
	JobTypeText  = "text"
)

// Job is one unit of upload work handled by the worker pool: a cover image
// or a numbered page image to be stored on disk.
type Job struct {
	ID     int
	UserID int
	BookID int
	// PageNumber is 0 for cover jobs.
	PageNumber int
	Path       string
	Type       string
	Status     string
	Item       interface{}
}

type JobList []Job

func (j JobList) Len() int {
	return len(j)
}
