package readingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"litera/model"
	readingrepo "litera/repository/reading"
	"litera/util/apperr"
	"litera/util/database"
)

var (
	ErrBookNotFound    = apperr.New(apperr.ErrNotFound, "book not found")
	ErrReadingNotFound = apperr.New(apperr.ErrNotFound, "no reading for this book")
	ErrNotOwner        = apperr.New(apperr.ErrForbidden, "book belongs to another user")
	ErrNegative        = apperr.New(apperr.ErrValidation, "values must not be negative")
)

// Progress is the outcome of a progress write.
type Progress struct {
	Reading  *model.CurrentReading
	Progress *model.ProgressUpdate
	Status   model.BookStatus
}

type Service interface {
	Elapsed(ctx context.Context, userID, bookID int64) (model.Timer, error)
	SetTimer(ctx context.Context, userID int64, req model.SetTimerReq) (model.Timer, error)
	RecordProgress(ctx context.Context, userID int64, req model.RecordProgressReq) (*Progress, error)
	LogProgress(ctx context.Context, userID int64, req model.ProgressUpdateReq) (*Progress, error)
	ReadingID(ctx context.Context, userID, bookID int64) (int64, error)
	History(ctx context.Context, userID, bookID int64) ([]model.ProgressUpdate, error)
}

type Config struct {
	Now func() time.Time
}

type service struct {
	r   readingrepo.Repo
	now func() time.Time
}

func New(r readingrepo.Repo, cfg Config) Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{r: r, now: cfg.Now}
}

// Reconcile folds the running segment into the stored total. A
// lastStartedAt in the future contributes nothing.
func Reconcile(c *model.CurrentReading, now time.Time) model.Timer {
	if c == nil {
		return model.Timer{}
	}
	t := model.Timer{
		TotalSeconds:   c.TotalSeconds,
		IsTimerRunning: c.IsTimerRunning,
		LastStartedAt:  c.LastStartedAt,
	}
	if c.IsTimerRunning && c.LastStartedAt != nil {
		if d := int64(now.Sub(*c.LastStartedAt) / time.Second); d > 0 {
			t.TotalSeconds += d
		}
	}
	return t
}

func (s *service) authorize(ctx context.Context, r readingrepo.Repo, userID, bookID int64) error {
	owner, err := r.BookOwner(ctx, bookID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("book owner %d: %w", bookID, err)
	}
	if owner != userID {
		return ErrNotOwner
	}
	return nil
}

// reading returns the book's reading or nil when none exists yet.
func reading(ctx context.Context, r readingrepo.Repo, bookID int64) (*model.CurrentReading, error) {
	c, err := r.ByBook(ctx, bookID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading for book %d: %w", bookID, err)
	}
	return c, nil
}

func (s *service) Elapsed(ctx context.Context, userID, bookID int64) (model.Timer, error) {
	if err := s.authorize(ctx, s.r, userID, bookID); err != nil {
		return model.Timer{}, err
	}
	c, err := reading(ctx, s.r, bookID)
	if err != nil {
		return model.Timer{}, err
	}
	return Reconcile(c, s.now()), nil
}

func (s *service) SetTimer(ctx context.Context, userID int64, req model.SetTimerReq) (model.Timer, error) {
	if req.TotalSeconds < 0 {
		return model.Timer{}, ErrNegative
	}
	if err := s.authorize(ctx, s.r, userID, req.BookID); err != nil {
		return model.Timer{}, err
	}
	c, err := s.r.UpsertTimer(ctx, req.BookID, req.TotalSeconds, req.IsTimerRunning, s.now())
	if err != nil {
		return model.Timer{}, fmt.Errorf("upsert timer %d: %w", req.BookID, err)
	}
	return model.Timer{
		TotalSeconds:   c.TotalSeconds,
		IsTimerRunning: c.IsTimerRunning,
		LastStartedAt:  c.LastStartedAt,
	}, nil
}

func (s *service) RecordProgress(ctx context.Context, userID int64, req model.RecordProgressReq) (*Progress, error) {
	if req.PagesRead < 0 || req.CurrentPage < 0 || req.ReadingTimeMin < 0 {
		return nil, ErrNegative
	}
	if err := s.authorize(ctx, s.r, userID, req.BookID); err != nil {
		return nil, err
	}

	now := s.now()
	out := &Progress{}
	err := s.r.InTx(ctx, func(r readingrepo.Repo) error {
		c, err := reading(ctx, r, req.BookID)
		if err != nil {
			return err
		}
		if c == nil {
			if c, err = r.Create(ctx, req.BookID, req.CurrentPage, now); err != nil {
				return fmt.Errorf("create reading: %w", err)
			}
			if err := r.SetBookStatus(ctx, req.BookID, model.StatusReading); err != nil {
				return fmt.Errorf("set status: %w", err)
			}
			out.Status = model.StatusReading
		} else if c, err = r.UpdateCurrentPage(ctx, c.ID, req.CurrentPage, now); err != nil {
			return fmt.Errorf("update current page: %w", err)
		}
		out.Reading = c

		p, err := r.InsertProgress(ctx, c.ID, req.PagesRead, req.ReadingTimeMin, now)
		if err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
		out.Progress = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) LogProgress(ctx context.Context, userID int64, req model.ProgressUpdateReq) (*Progress, error) {
	if req.PagesRead < 0 || req.ReadingTimeMin < 0 {
		return nil, ErrNegative
	}
	if err := s.authorize(ctx, s.r, userID, req.BookID); err != nil {
		return nil, err
	}

	status := model.StatusToRead
	if req.PagesRead > 0 {
		status = model.StatusReading
	}

	now := s.now()
	out := &Progress{Status: status}
	err := s.r.InTx(ctx, func(r readingrepo.Repo) error {
		c, err := reading(ctx, r, req.BookID)
		if err != nil {
			return err
		}
		if c == nil {
			if c, err = r.Create(ctx, req.BookID, req.PagesRead, now); err != nil {
				return fmt.Errorf("create reading: %w", err)
			}
		}
		out.Reading = c

		p, err := r.InsertProgress(ctx, c.ID, req.PagesRead, req.ReadingTimeMin, now)
		if err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
		out.Progress = p

		if err := r.SetBookStatus(ctx, req.BookID, status); err != nil {
			return fmt.Errorf("set status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ReadingID(ctx context.Context, userID, bookID int64) (int64, error) {
	if err := s.authorize(ctx, s.r, userID, bookID); err != nil {
		return 0, err
	}
	c, err := reading(ctx, s.r, bookID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, ErrReadingNotFound
	}
	return c.ID, nil
}

func (s *service) History(ctx context.Context, userID, bookID int64) ([]model.ProgressUpdate, error) {
	if err := s.authorize(ctx, s.r, userID, bookID); err != nil {
		return nil, err
	}
	c, err := reading(ctx, s.r, bookID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return []model.ProgressUpdate{}, nil
	}
	return s.r.ListProgress(ctx, c.ID)
}
