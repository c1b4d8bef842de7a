package userrepo

import (
	"context"
	"time"

	"litera/model"
	"litera/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error
	ByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const userCols = `id, name, email, password_hash, reset_token, reset_token_expiry, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt); err != nil {
		return nil, database.NoRows(err)
	}
	return u, nil
}

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users(name, email, password_hash)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.Pool.QueryRow(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE lower(email) = lower($1)`,
		email,
	))
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.Pool.QueryRow(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE id = $1`,
		id,
	))
}

func (r *repo) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE users
		SET reset_token = $2, reset_token_expiry = $3
		WHERE id = $1`,
		userID, tokenHash, expiry,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *repo) ByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	return scanUser(r.db.Pool.QueryRow(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE reset_token = $1
		AND reset_token_expiry > $2`,
		tokenHash, now,
	))
}

// UpdatePassword also clears any pending reset token.
func (r *repo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL
		WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
