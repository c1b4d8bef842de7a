package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                 BIGSERIAL PRIMARY KEY,
		name               TEXT NOT NULL,
		email              TEXT NOT NULL,
		password_hash      TEXT NOT NULL,
		reset_token        TEXT,
		reset_token_expiry TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email))`,
	`CREATE TABLE IF NOT EXISTS authors (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL CONSTRAINT authors_name_key UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id             BIGSERIAL PRIMARY KEY,
		title          TEXT NOT NULL,
		year           INT,
		pages          INT NOT NULL DEFAULT 0,
		finished_pages INT NOT NULL DEFAULT 0,
		genre          TEXT,
		status         TEXT NOT NULL DEFAULT 'TO_READ'
			CHECK (status IN ('TO_READ','READING','READ','PAUSED','ABANDONED')),
		rating         TEXT
			CHECK (rating IN ('ONE_STAR','TWO_STARS','THREE_STARS','FOUR_STARS','FIVE_STARS')),
		cover          TEXT NOT NULL DEFAULT '',
		isbn           TEXT CONSTRAINT books_isbn_key UNIQUE,
		description    TEXT NOT NULL DEFAULT '',
		notes          TEXT,
		author_id      BIGINT NOT NULL REFERENCES authors(id),
		user_id        BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS books_user_id_idx ON books (user_id)`,
	`CREATE TABLE IF NOT EXISTS current_readings (
		id               BIGSERIAL PRIMARY KEY,
		book_id          BIGINT NOT NULL CONSTRAINT current_readings_book_id_key UNIQUE
			REFERENCES books(id) ON DELETE CASCADE,
		current_page     INT NOT NULL DEFAULT 0,
		total_seconds    BIGINT NOT NULL DEFAULT 0 CHECK (total_seconds >= 0),
		is_timer_running BOOLEAN NOT NULL DEFAULT FALSE,
		last_started_at  TIMESTAMPTZ,
		started_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_paused        BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS progress_updates (
		id               BIGSERIAL PRIMARY KEY,
		reading_id       BIGINT NOT NULL REFERENCES current_readings(id) ON DELETE CASCADE,
		pages_read       INT NOT NULL,
		reading_time_min INT NOT NULL DEFAULT 0,
		date             TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS progress_updates_reading_id_idx ON progress_updates (reading_id, date DESC)`,
	`CREATE TABLE IF NOT EXISTS reading_notes (
		id         BIGSERIAL PRIMARY KEY,
		reading_id BIGINT NOT NULL REFERENCES current_readings(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS reading_notes_reading_id_idx ON reading_notes (reading_id)`,
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, q Querier) error {
	for i, s := range schema {
		if _, err := q.Exec(ctx, s); err != nil {
			return fmt.Errorf("migrate stmt %d: %w", i, err)
		}
	}
	return nil
}
