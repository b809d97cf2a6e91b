package model

type Review struct {
	ID int `json:"id"`

	BookID int `json:"book_id"`
	UserID int `json:"user_id"`

	Rating int    `json:"rating"`
	Text   string `json:"text"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	// Username of the reviewer, joined in for list responses.
	Username string `json:"username,omitempty"`
}

type FindReview struct {
	BookID *int `json:"book_id"`
	UserID *int `json:"user_id"`
}

type ReviewRequest struct {
	BookID int    `json:"book_id"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}
