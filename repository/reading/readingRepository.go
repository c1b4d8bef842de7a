package readingrepo

import (
	"context"
	"time"

	"litera/model"
	"litera/util/database"
)

type Repo interface {
	// InTx runs fn with a Repo bound to a single transaction.
	InTx(ctx context.Context, fn func(r Repo) error) error

	// Books
	BookOwner(ctx context.Context, bookID int64) (userID int64, err error)
	SetBookStatus(ctx context.Context, bookID int64, status model.BookStatus) error

	// Current readings
	ByBook(ctx context.Context, bookID int64) (*model.CurrentReading, error)
	Create(ctx context.Context, bookID int64, currentPage int, now time.Time) (*model.CurrentReading, error)
	UpdateCurrentPage(ctx context.Context, readingID int64, currentPage int, now time.Time) (*model.CurrentReading, error)
	UpsertTimer(ctx context.Context, bookID, totalSeconds int64, running bool, now time.Time) (*model.CurrentReading, error)

	// Progress log
	InsertProgress(ctx context.Context, readingID int64, pagesRead, readingTimeMin int, date time.Time) (*model.ProgressUpdate, error)
	ListProgress(ctx context.Context, readingID int64) ([]model.ProgressUpdate, error)
}

type repo struct {
	db *database.DB
	q  database.Querier
}

func New(db *database.DB) Repo { return &repo{db: db, q: db.Pool} }

func (r *repo) InTx(ctx context.Context, fn func(r Repo) error) error {
	return r.db.InTx(ctx, func(q database.Querier) error {
		return fn(&repo{db: r.db, q: q})
	})
}

// Books

func (r *repo) BookOwner(ctx context.Context, bookID int64) (int64, error) {
	var uid int64
	err := r.q.QueryRow(ctx, `SELECT user_id FROM books WHERE id = $1`, bookID).Scan(&uid)
	return uid, database.NoRows(err)
}

func (r *repo) SetBookStatus(ctx context.Context, bookID int64, status model.BookStatus) error {
	const q = `
		UPDATE books
		SET status = $2,
			updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, q, bookID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Current readings

const readingCols = `id, book_id, current_page, total_seconds, is_timer_running,
	last_started_at, started_at, is_paused, updated_at`

func scanReading(row interface{ Scan(...any) error }) (*model.CurrentReading, error) {
	var c model.CurrentReading
	err := row.Scan(&c.ID, &c.BookID, &c.CurrentPage, &c.TotalSeconds, &c.IsTimerRunning,
		&c.LastStartedAt, &c.StartedAt, &c.IsPaused, &c.UpdatedAt)
	if err != nil {
		return nil, database.NoRows(err)
	}
	return &c, nil
}

func (r *repo) ByBook(ctx context.Context, bookID int64) (*model.CurrentReading, error) {
	return scanReading(r.q.QueryRow(ctx, `
		SELECT `+readingCols+`
		FROM current_readings
		WHERE book_id = $1`, bookID))
}

func (r *repo) Create(ctx context.Context, bookID int64, currentPage int, now time.Time) (*model.CurrentReading, error) {
	return scanReading(r.q.QueryRow(ctx, `
		INSERT INTO current_readings (book_id, current_page, started_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING `+readingCols, bookID, currentPage, now))
}

func (r *repo) UpdateCurrentPage(ctx context.Context, readingID int64, currentPage int, now time.Time) (*model.CurrentReading, error) {
	return scanReading(r.q.QueryRow(ctx, `
		UPDATE current_readings
		SET current_page = $2,
			updated_at = $3
		WHERE id = $1
		RETURNING `+readingCols, readingID, currentPage, now))
}

// UpsertTimer writes the timer fields in one statement. A running write
// anchors last_started_at at now; a stopped write keeps the previous value.
// Concurrent writers are last-write-wins.
func (r *repo) UpsertTimer(ctx context.Context, bookID, totalSeconds int64, running bool, now time.Time) (*model.CurrentReading, error) {
	const q = `
		INSERT INTO current_readings
			(book_id, current_page, total_seconds, is_timer_running, last_started_at, started_at, is_paused, updated_at)
		VALUES
			($1, 0, $2, $3, CASE WHEN $3 THEN $4::timestamptz END, $4, NOT $3, $4)
		ON CONFLICT (book_id) DO UPDATE
		SET total_seconds    = EXCLUDED.total_seconds,
			is_timer_running = EXCLUDED.is_timer_running,
			last_started_at  = CASE WHEN EXCLUDED.is_timer_running THEN $4::timestamptz
			                        ELSE current_readings.last_started_at END,
			is_paused        = EXCLUDED.is_paused,
			updated_at       = $4
		RETURNING ` + readingCols
	return scanReading(r.q.QueryRow(ctx, q, bookID, totalSeconds, running, now))
}

// Progress log

func (r *repo) InsertProgress(ctx context.Context, readingID int64, pagesRead, readingTimeMin int, date time.Time) (*model.ProgressUpdate, error) {
	p := &model.ProgressUpdate{ReadingID: readingID, PagesRead: pagesRead, ReadingTimeMin: readingTimeMin}
	err := r.q.QueryRow(ctx, `
		INSERT INTO progress_updates (reading_id, pages_read, reading_time_min, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date`, readingID, pagesRead, readingTimeMin, date).Scan(&p.ID, &p.Date)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) ListProgress(ctx context.Context, readingID int64) ([]model.ProgressUpdate, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, reading_id, pages_read, reading_time_min, date
		FROM progress_updates
		WHERE reading_id = $1
		ORDER BY date DESC, id DESC`, readingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProgressUpdate{}
	for rows.Next() {
		var p model.ProgressUpdate
		if err := rows.Scan(&p.ID, &p.ReadingID, &p.PagesRead, &p.ReadingTimeMin, &p.Date); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
