package model

// RowStatus is the status of a row.
type RowStatus string

const (
	// Normal is the status of a normal row.
	Normal RowStatus = "NORMAL"
	// Archived is the status of an archived row.
	Archived RowStatus = "ARCHIVED"
)

func (e RowStatus) String() string {
	switch e {
	case Normal:
		return "NORMAL"
	case Archived:
		return "ARCHIVED"
	}
	return "NORMAL"
}
