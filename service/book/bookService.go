package booksvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"litera/model"
	bookrepo "litera/repository/book"
	"litera/util/apperr"
	"litera/util/database"
)

type Service interface {
	Create(ctx context.Context, userID int64, req model.CreateBookReq) (*model.Book, error)
	List(ctx context.Context, userID int64) ([]model.Book, error)
	Detail(ctx context.Context, userID, id int64) (*model.Book, error)
	Update(ctx context.Context, userID, id int64, req model.UpdateBookReq) (*model.Book, error)
	Delete(ctx context.Context, userID, id int64) error
}

var (
	ErrMissingFields = apperr.New(apperr.ErrValidation, "title and author are required")
	ErrBookNotFound  = apperr.New(apperr.ErrNotFound, "book not found")
	ErrNotOwner      = apperr.New(apperr.ErrForbidden, "book belongs to another user")
	ErrISBNTaken     = apperr.New(apperr.ErrConflict, "a book with this ISBN already exists")
)

type service struct{ r bookrepo.Repo }

func New(r bookrepo.Repo) Service { return &service{r: r} }

func optionalISBN(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *service) Create(ctx context.Context, userID int64, req model.CreateBookReq) (*model.Book, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" {
		return nil, ErrMissingFields
	}

	authorID, err := s.r.FindOrCreateAuthor(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	b := &model.Book{
		Title:         title,
		Year:          req.Year,
		Pages:         req.Pages,
		FinishedPages: req.FinishedPages,
		Genre:         req.Genre,
		Status:        model.ParseStatus(req.Status),
		Rating:        model.ParseRating(req.Rating),
		Cover:         req.Cover,
		ISBN:          optionalISBN(req.ISBN),
		Description:   req.Description,
		Notes:         req.Notes,
		AuthorID:      authorID,
		AuthorName:    author,
		UserID:        userID,
	}
	if err := s.r.Create(ctx, b); err != nil {
		if database.IsUniqueViolation(err, "isbn") {
			return nil, ErrISBNTaken
		}
		return nil, fmt.Errorf("create book: %w", err)
	}
	return b, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]model.Book, error) {
	return s.r.List(ctx, userID)
}

func (s *service) Detail(ctx context.Context, userID, id int64) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("load book %d: %w", id, err)
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, userID, id int64, req model.UpdateBookReq) (*model.Book, error) {
	b, err := s.Detail(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return nil, ErrMissingFields
		}
		b.Title = t
	}
	if req.Author != nil {
		a := strings.TrimSpace(*req.Author)
		if a == "" {
			return nil, ErrMissingFields
		}
		if a != b.AuthorName {
			authorID, err := s.r.FindOrCreateAuthor(ctx, a)
			if err != nil {
				return nil, fmt.Errorf("resolve author: %w", err)
			}
			b.AuthorID, b.AuthorName = authorID, a
		}
	}
	if req.Year != nil {
		b.Year = req.Year
	}
	if req.Pages != nil {
		b.Pages = *req.Pages
	}
	if req.FinishedPages != nil {
		b.FinishedPages = *req.FinishedPages
	}
	if req.Genre != nil {
		b.Genre = req.Genre
	}
	if req.Status != nil {
		b.Status = model.ParseStatus(*req.Status)
	}
	if req.Rating != nil {
		b.Rating = model.ParseRating(*req.Rating)
	}
	if req.Cover != nil {
		b.Cover = *req.Cover
	}
	if req.ISBN != nil {
		b.ISBN = optionalISBN(*req.ISBN)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Notes != nil {
		b.Notes = req.Notes
	}

	if err := s.r.Update(ctx, b); err != nil {
		switch {
		case database.IsUniqueViolation(err, "isbn"):
			return nil, ErrISBNTaken
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Detail(ctx, userID, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}
