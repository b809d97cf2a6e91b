package model

// FavoriteLine is a highlighted passage saved from the continuous-text
// reader.
type FavoriteLine struct {
	ID int `json:"id"`

	UserID int `json:"user_id"`
	BookID int `json:"book_id"`

	Text     string       `json:"text"`
	Chapter  string       `json:"chapter"`
	Location LineLocation `json:"location"`
	Color    string       `json:"color"`
	Note     string       `json:"note"`

	CreatedTs int64 `json:"created_ts"`
}

// LineLocation pins a highlight inside a chapter.
type LineLocation struct {
	ParagraphIndex int     `json:"paragraph_index"`
	CharStart      int     `json:"char_start"`
	CharEnd        int     `json:"char_end"`
	Offset         float64 `json:"offset"`
}

type FindFavoriteLine struct {
	UserID *int `json:"user_id"`
	BookID *int `json:"book_id"`
}

type FavoriteLineRequest struct {
	BookID   int          `json:"book_id"`
	Text     string       `json:"text"`
	Chapter  string       `json:"chapter"`
	Location LineLocation `json:"location"`
	Color    string       `json:"color"`
	Note     string       `json:"note"`
}
