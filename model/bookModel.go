package model

import "time"

type BookStatus string

const (
	StatusToRead    BookStatus = "TO_READ"
	StatusReading   BookStatus = "READING"
	StatusRead      BookStatus = "READ"
	StatusPaused    BookStatus = "PAUSED"
	StatusAbandoned BookStatus = "ABANDONED"
)

type BookRating string

const (
	OneStar    BookRating = "ONE_STAR"
	TwoStars   BookRating = "TWO_STARS"
	ThreeStars BookRating = "THREE_STARS"
	FourStars  BookRating = "FOUR_STARS"
	FiveStars  BookRating = "FIVE_STARS"
)

type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book is the stored shape. Rating is nil when the book is unrated and ISBN is
// nil when absent.
type Book struct {
	ID            int64
	Title         string
	Year          *int
	Pages         int
	FinishedPages int
	Genre         *string
	Status        BookStatus
	Rating        *BookRating
	Cover         string
	ISBN          *string
	Description   string
	Notes         *string
	AuthorID      int64
	AuthorName    string
	UserID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookView is the wire shape: author resolved to a name, status and rating in
// display form.
type BookView struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Year          *int      `json:"year"`
	Pages         int       `json:"pages"`
	FinishedPages int       `json:"finishedPages"`
	Genre         *string   `json:"genre"`
	Status        string    `json:"status"`
	Rating        int       `json:"rating"`
	Cover         string    `json:"cover"`
	ISBN          string    `json:"isbn"`
	Description   string    `json:"description"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (b *Book) View() BookView {
	v := BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.AuthorName,
		Year:          b.Year,
		Pages:         b.Pages,
		FinishedPages: b.FinishedPages,
		Genre:         b.Genre,
		Status:        StatusLabel(b.Status),
		Rating:        RatingValue(b.Rating),
		Cover:         b.Cover,
		Description:   b.Description,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.ISBN != nil {
		v.ISBN = *b.ISBN
	}
	return v
}

type CreateBookReq struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Year          *int    `json:"year"`
	Pages         int     `json:"pages" validate:"gte=0"`
	FinishedPages int     `json:"finishedPages" validate:"gte=0"`
	Genre         *string `json:"genre"`
	Status        string  `json:"status"`
	Rating        int     `json:"rating"`
	Cover         string  `json:"cover"`
	ISBN          string  `json:"isbn"`
	Description   string  `json:"description"`
	Notes         *string `json:"notes"`
}

// UpdateBookReq is a partial update: nil fields are left unchanged.
type UpdateBookReq struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Year          *int    `json:"year"`
	Pages         *int    `json:"pages" validate:"omitempty,gte=0"`
	FinishedPages *int    `json:"finishedPages" validate:"omitempty,gte=0"`
	Genre         *string `json:"genre"`
	Status        *string `json:"status"`
	Rating        *int    `json:"rating"`
	Cover         *string `json:"cover"`
	ISBN          *string `json:"isbn"`
	Description   *string `json:"description"`
	Notes         *string `json:"notes"`
}
