package model

import "time"

type ReadingNote struct {
	ID        int64     `json:"id"`
	ReadingID int64     `json:"readingId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateNoteReq struct {
	ReadingID int64  `json:"readingId" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required"`
}

type UpdateNoteReq struct {
	Content string `json:"content" validate:"required"`
}
