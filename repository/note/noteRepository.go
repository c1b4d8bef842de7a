package noterepo

import (
	"context"

	"litera/model"
	"litera/util/database"
)

type Repo interface {
	// ReadingOwner resolves the user owning a reading through its book.
	ReadingOwner(ctx context.Context, readingID int64) (userID int64, err error)
	// NoteOwner resolves the user owning a note through reading and book.
	NoteOwner(ctx context.Context, noteID int64) (userID int64, err error)

	List(ctx context.Context, readingID int64) ([]model.ReadingNote, error)
	Create(ctx context.Context, readingID int64, content string) (*model.ReadingNote, error)
	Update(ctx context.Context, noteID int64, content string) (*model.ReadingNote, error)
	Delete(ctx context.Context, noteID int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) ReadingOwner(ctx context.Context, readingID int64) (int64, error) {
	const q = `
		SELECT b.user_id
		FROM current_readings cr
		JOIN books b ON b.id = cr.book_id
		WHERE cr.id = $1`
	var uid int64
	err := r.db.Pool.QueryRow(ctx, q, readingID).Scan(&uid)
	return uid, database.NoRows(err)
}

func (r *repo) NoteOwner(ctx context.Context, noteID int64) (int64, error) {
	const q = `
		SELECT b.user_id
		FROM reading_notes n
		JOIN current_readings cr ON cr.id = n.reading_id
		JOIN books b ON b.id = cr.book_id
		WHERE n.id = $1`
	var uid int64
	err := r.db.Pool.QueryRow(ctx, q, noteID).Scan(&uid)
	return uid, database.NoRows(err)
}

func (r *repo) List(ctx context.Context, readingID int64) ([]model.ReadingNote, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, reading_id, content, created_at, updated_at
		FROM reading_notes
		WHERE reading_id = $1
		ORDER BY created_at DESC, id DESC`, readingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ReadingNote{}
	for rows.Next() {
		var n model.ReadingNote
		if err := rows.Scan(&n.ID, &n.ReadingID, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *repo) Create(ctx context.Context, readingID int64, content string) (*model.ReadingNote, error) {
	n := &model.ReadingNote{ReadingID: readingID, Content: content}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO reading_notes (reading_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`, readingID, content).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *repo) Update(ctx context.Context, noteID int64, content string) (*model.ReadingNote, error) {
	var n model.ReadingNote
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE reading_notes
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, reading_id, content, created_at, updated_at`, noteID, content,
	).Scan(&n.ID, &n.ReadingID, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, database.NoRows(err)
	}
	return &n, nil
}

func (r *repo) Delete(ctx context.Context, noteID int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM reading_notes WHERE id = $1`, noteID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
