package bookrepo

import (
	"context"
	"strings"

	"litera/model"
	"litera/util/database"
)

type Repo interface {
	FindOrCreateAuthor(ctx context.Context, name string) (int64, error)
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context, userID int64) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

// FindOrCreateAuthor resolves an author by exact name, inserting it when it
// does not exist yet. The no-op update makes RETURNING yield the existing id.
func (r *repo) FindOrCreateAuthor(ctx context.Context, name string) (int64, error) {
	const q = `
INSERT INTO authors (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, strings.TrimSpace(name)).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, year, pages, finished_pages, genre, status, rating,
                   cover, isbn, description, notes, author_id, user_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
RETURNING id, created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q,
		b.Title, b.Year, b.Pages, b.FinishedPages, b.Genre, b.Status, b.Rating,
		b.Cover, b.ISBN, b.Description, b.Notes, b.AuthorID, b.UserID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

const selectBook = `
SELECT b.id, b.title, b.year, b.pages, b.finished_pages, b.genre, b.status, b.rating,
       b.cover, b.isbn, b.description, b.notes, b.author_id, a.name, b.user_id,
       b.created_at, b.updated_at
FROM books b
JOIN authors a ON a.id = b.author_id`

func scanBook(row interface{ Scan(...any) error }) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Year, &b.Pages, &b.FinishedPages, &b.Genre, &b.Status, &b.Rating,
		&b.Cover, &b.ISBN, &b.Description, &b.Notes, &b.AuthorID, &b.AuthorName, &b.UserID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, database.NoRows(err)
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context, userID int64) ([]model.Book, error) {
	rows, err := r.db.Pool.Query(ctx, selectBook+`
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	return scanBook(r.db.Pool.QueryRow(ctx, selectBook+`
WHERE b.id = $1`, id))
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
UPDATE books
SET title = $2, year = $3, pages = $4, finished_pages = $5, genre = $6, status = $7,
    rating = $8, cover = $9, isbn = $10, description = $11, notes = $12, author_id = $13,
    updated_at = NOW()
WHERE id = $1
RETURNING updated_at`
	err := r.db.Pool.QueryRow(ctx, q,
		b.ID, b.Title, b.Year, b.Pages, b.FinishedPages, b.Genre, b.Status,
		b.Rating, b.Cover, b.ISBN, b.Description, b.Notes, b.AuthorID,
	).Scan(&b.UpdatedAt)
	return database.NoRows(err)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
