package model //import "github.com/bookwell/bookwell/model"

// Category is the shelf a book is filed under.
type Category string

const (
	CategoryFiction   Category = "fiction"
	CategorySciFi     Category = "sci-fi"
	CategoryRomance   Category = "romance"
	CategoryEducation Category = "education"
	CategoryMystery   Category = "mystery"
	CategoryThriller  Category = "thriller"
	CategoryOther     Category = "other"
)

// IsValidCategory reports whether c is one of the known categories.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryFiction, CategorySciFi, CategoryRomance, CategoryEducation,
		CategoryMystery, CategoryThriller, CategoryOther:
		return true
	}
	return false
}

type Book struct {
	ID int `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	CoverPath   string   `json:"cover_path"`
	// TextPath points at the extracted plain-text source used by the
	// continuous-text reader. Empty when no text is available.
	TextPath      string  `json:"text_path"`
	TotalPages    int     `json:"total_pages"`
	UploadedBy    int     `json:"uploaded_by"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
	UUID          string  `json:"uuid"`
}

type FindBook struct {
	ID       *int      `json:"id"`
	Category *Category `json:"category"`
	// Search matches title, author or description, case-insensitively.
	Search *string `json:"search"`

	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

// Page is one image page of the paginated reader.
type Page struct {
	ID         int    `json:"id"`
	BookID     int    `json:"book_id"`
	PageNumber int    `json:"page_number"`
	ImagePath  string `json:"image_path"`
}

type BookUploadRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}
