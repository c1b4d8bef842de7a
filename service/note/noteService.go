package notesvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"litera/model"
	noterepo "litera/repository/note"
	"litera/util/apperr"
	"litera/util/database"
)

var (
	ErrEmptyContent    = apperr.New(apperr.ErrValidation, "content is required")
	ErrReadingNotFound = apperr.New(apperr.ErrNotFound, "reading not found")
	ErrNoteNotFound    = apperr.New(apperr.ErrNotFound, "note not found")
	ErrNotOwner        = apperr.New(apperr.ErrForbidden, "note belongs to another user")
)

type Service interface {
	List(ctx context.Context, userID, readingID int64) ([]model.ReadingNote, error)
	Create(ctx context.Context, userID int64, req model.CreateNoteReq) (*model.ReadingNote, error)
	Update(ctx context.Context, userID, noteID int64, req model.UpdateNoteReq) (*model.ReadingNote, error)
	Delete(ctx context.Context, userID, noteID int64) error
}

type service struct{ r noterepo.Repo }

func New(r noterepo.Repo) Service { return &service{r: r} }

func owned(uid, userID int64, err, notFound error) error {
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound
		}
		return fmt.Errorf("resolve owner: %w", err)
	}
	if uid != userID {
		return ErrNotOwner
	}
	return nil
}

func (s *service) readingOwned(ctx context.Context, userID, readingID int64) error {
	uid, err := s.r.ReadingOwner(ctx, readingID)
	return owned(uid, userID, err, ErrReadingNotFound)
}

func (s *service) noteOwned(ctx context.Context, userID, noteID int64) error {
	uid, err := s.r.NoteOwner(ctx, noteID)
	return owned(uid, userID, err, ErrNoteNotFound)
}

func (s *service) List(ctx context.Context, userID, readingID int64) ([]model.ReadingNote, error) {
	if err := s.readingOwned(ctx, userID, readingID); err != nil {
		return nil, err
	}
	return s.r.List(ctx, readingID)
}

func (s *service) Create(ctx context.Context, userID int64, req model.CreateNoteReq) (*model.ReadingNote, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if err := s.readingOwned(ctx, userID, req.ReadingID); err != nil {
		return nil, err
	}
	n, err := s.r.Create(ctx, req.ReadingID, content)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (s *service) Update(ctx context.Context, userID, noteID int64, req model.UpdateNoteReq) (*model.ReadingNote, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if err := s.noteOwned(ctx, userID, noteID); err != nil {
		return nil, err
	}
	n, err := s.r.Update(ctx, noteID, content)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note %d: %w", noteID, err)
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, userID, noteID int64) error {
	if err := s.noteOwned(ctx, userID, noteID); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, noteID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("delete note %d: %w", noteID, err)
	}
	return nil
}
