package model

import "time"

type CurrentReading struct {
	ID             int64      `json:"id"`
	BookID         int64      `json:"bookId"`
	CurrentPage    int        `json:"currentPage"`
	TotalSeconds   int64      `json:"totalSeconds"`
	IsTimerRunning bool       `json:"isTimerRunning"`
	LastStartedAt  *time.Time `json:"lastStartedAt"`
	StartedAt      time.Time  `json:"startedAt"`
	IsPaused       bool       `json:"isPaused"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ProgressUpdate is append-only.
type ProgressUpdate struct {
	ID             int64     `json:"id"`
	ReadingID      int64     `json:"readingId"`
	PagesRead      int       `json:"pagesRead"`
	ReadingTimeMin int       `json:"readingTimeMin"`
	Date           time.Time `json:"date"`
}

// Timer is the reconciled timer state returned to clients.
type Timer struct {
	TotalSeconds   int64      `json:"totalSeconds"`
	IsTimerRunning bool       `json:"isTimerRunning"`
	LastStartedAt  *time.Time `json:"lastStartedAt"`
}

type SetTimerReq struct {
	BookID         int64 `json:"bookId" validate:"required,gt=0"`
	TotalSeconds   int64 `json:"totalSeconds" validate:"gte=0"`
	IsTimerRunning bool  `json:"isTimerRunning"`
}

type RecordProgressReq struct {
	BookID         int64 `json:"bookId" validate:"required,gt=0"`
	PagesRead      int   `json:"pagesRead" validate:"gte=0"`
	CurrentPage    int   `json:"currentPage" validate:"gte=0"`
	ReadingTimeMin int   `json:"readingTimeMin" validate:"gte=0"`
}

type ProgressUpdateReq struct {
	BookID         int64 `json:"bookId" validate:"required,gt=0"`
	PagesRead      int   `json:"pagesRead" validate:"gte=0"`
	ReadingTimeMin int   `json:"readingTimeMin" validate:"gte=0"`
}
