package model

// History is the per-user-per-book reading position record. It carries two
// independent progress schemas: a page number for the image-paginated reader
// and a chapter id plus in-chapter offset for the continuous-text reader.
// Both bookmark kinds live side by side and are never reconciled.
type History struct {
	ID int `json:"id"`

	UserID int `json:"user_id"`
	BookID int `json:"book_id"`

	LastReadPage    int     `json:"last_read_page"`
	LastReadChapter *string `json:"last_read_chapter"`
	LastReadOffset  float64 `json:"last_read_offset"`
	// ProgressPercent is clamped to [0, 100] on every write.
	ProgressPercent float64 `json:"progress_percent"`

	// Bookmarks holds bookmarked page numbers of the paginated reader.
	Bookmarks []int `json:"bookmarks"`
	// BookmarkLocations holds bookmarks of the continuous-text reader.
	BookmarkLocations []BookmarkLocation `json:"bookmark_locations"`

	IsFavorite bool  `json:"is_favorite"`
	UpdatedTs  int64 `json:"updated_ts"`
}

// BookmarkLocation is a bookmark inside the continuous-text reader.
type BookmarkLocation struct {
	Chapter   string  `json:"chapter"`
	Offset    float64 `json:"offset"`
	Note      string  `json:"note"`
	CreatedTs int64   `json:"created_at"`
}

// DefaultHistory is the zero-value position returned for a (user, book) pair
// that has never been opened. Absence is a valid state, not an error.
func DefaultHistory(userID, bookID int) *History {
	return &History{
		UserID:            userID,
		BookID:            bookID,
		LastReadPage:      1,
		LastReadChapter:   nil,
		LastReadOffset:    0,
		ProgressPercent:   0,
		Bookmarks:         []int{},
		BookmarkLocations: []BookmarkLocation{},
		IsFavorite:        false,
	}
}

// HistoryUpdate is a partial update of a position record. A nil field leaves
// the stored value unchanged, it never resets it to a default.
type HistoryUpdate struct {
	BookID int `json:"book_id"`

	LastReadPage    *int     `json:"last_read_page"`
	LastReadChapter *string  `json:"last_read_chapter"`
	LastReadOffset  *float64 `json:"last_read_offset"`
	ProgressPercent *float64 `json:"progress_percent"`
}

// Apply merges the update into h, clamping ProgressPercent to [0, 100].
func (u *HistoryUpdate) Apply(h *History) {
	if v := u.LastReadPage; v != nil {
		h.LastReadPage = *v
	}
	if v := u.LastReadChapter; v != nil {
		h.LastReadChapter = v
	}
	if v := u.LastReadOffset; v != nil {
		h.LastReadOffset = *v
	}
	if v := u.ProgressPercent; v != nil {
		h.ProgressPercent = clampPercent(*v)
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
