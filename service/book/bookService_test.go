package booksvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"litera/model"
	booksvc "litera/service/book"
	"litera/util/apperr"
	"litera/util/database"
)

type repoMock struct {
	authorFn func(ctx context.Context, name string) (int64, error)
	createFn func(ctx context.Context, b *model.Book) error
	listFn   func(ctx context.Context, userID int64) ([]model.Book, error)
	detailFn func(ctx context.Context, id int64) (*model.Book, error)
	updateFn func(ctx context.Context, b *model.Book) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *repoMock) FindOrCreateAuthor(ctx context.Context, name string) (int64, error) {
	return m.authorFn(ctx, name)
}
func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) List(ctx context.Context, userID int64) ([]model.Book, error) {
	return m.listFn(ctx, userID)
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Book, error) {
	return m.detailFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, b *model.Book) error { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) error     { return m.deleteFn(ctx, id) }

func ptr[T any](v T) *T { return &v }

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	_, err := s.Create(context.Background(), 1, model.CreateBookReq{Title: "", Author: "Orwell"})
	require.ErrorIs(t, err, booksvc.ErrMissingFields)
	_, err = s.Create(context.Background(), 1, model.CreateBookReq{Title: "1984", Author: "  "})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
}

func TestCreate_DefaultsToReadAndUnrated(t *testing.T) {
	var stored *model.Book
	m := &repoMock{
		authorFn: func(ctx context.Context, name string) (int64, error) {
			require.Equal(t, "Orwell", name)
			return 9, nil
		},
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = 42
			stored = b
			return nil
		},
	}
	s := booksvc.New(m)

	b, err := s.Create(context.Background(), 7, model.CreateBookReq{Title: "1984", Author: "Orwell"})
	require.NoError(t, err)
	require.Equal(t, int64(42), b.ID)
	require.Equal(t, model.StatusToRead, stored.Status)
	require.Nil(t, stored.Rating)
	require.Nil(t, stored.ISBN)
	require.Equal(t, int64(9), stored.AuthorID)
	require.Equal(t, int64(7), stored.UserID)
	require.Equal(t, "Quero Ler", b.View().Status)
	require.Equal(t, "Orwell", b.View().Author)
}

func TestCreate_MapsStatusAndRating(t *testing.T) {
	m := &repoMock{
		authorFn: func(ctx context.Context, name string) (int64, error) { return 1, nil },
		createFn: func(ctx context.Context, b *model.Book) error { return nil },
	}
	s := booksvc.New(m)

	b, err := s.Create(context.Background(), 1, model.CreateBookReq{Title: "Dom Casmurro", Author: "Machado", Status: "lido", Rating: 5})
	require.NoError(t, err)
	require.Equal(t, model.StatusRead, b.Status)
	require.Equal(t, "Lido", b.View().Status)
	require.Equal(t, 5, b.View().Rating)

	b, err = s.Create(context.Background(), 1, model.CreateBookReq{Title: "X", Author: "Y", Status: "xyz", Rating: 0})
	require.NoError(t, err)
	require.Equal(t, model.StatusToRead, b.Status)
	require.Nil(t, b.Rating)
}

func TestCreate_DuplicateISBN(t *testing.T) {
	m := &repoMock{
		authorFn: func(ctx context.Context, name string) (int64, error) { return 1, nil },
		createFn: func(ctx context.Context, b *model.Book) error {
			require.Equal(t, "123", *b.ISBN)
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "books_isbn_key"}
		},
	}
	_, err := booksvc.New(m).Create(context.Background(), 1, model.CreateBookReq{Title: "A", Author: "B", ISBN: " 123 "})
	require.ErrorIs(t, err, booksvc.ErrISBNTaken)
	require.Equal(t, apperr.ErrConflict, apperr.Code(err))
}

func TestDetail_Ownership(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) {
			if id == 1 {
				return &model.Book{ID: 1, UserID: 10}, nil
			}
			return nil, database.ErrNotFound
		},
	}
	s := booksvc.New(m)

	b, err := s.Detail(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), b.ID)

	_, err = s.Detail(context.Background(), 11, 1)
	require.ErrorIs(t, err, booksvc.ErrNotOwner)

	_, err = s.Detail(context.Background(), 10, 2)
	require.ErrorIs(t, err, booksvc.ErrBookNotFound)
}

func TestUpdate_Partial(t *testing.T) {
	var saved model.Book
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, UserID: 1, Title: "Old", AuthorID: 2, AuthorName: "Ann", Status: model.StatusReading, Rating: model.ParseRating(3), Pages: 100}, nil
		},
		authorFn: func(ctx context.Context, name string) (int64, error) {
			require.Equal(t, "Bea", name)
			return 3, nil
		},
		updateFn: func(ctx context.Context, b *model.Book) error {
			saved = *b
			return nil
		},
	}
	s := booksvc.New(m)

	b, err := s.Update(context.Background(), 1, 5, model.UpdateBookReq{
		Author: ptr("Bea"),
		Status: ptr("pausado"),
		Rating: ptr(0),
	})
	require.NoError(t, err)
	require.Equal(t, "Old", saved.Title)
	require.Equal(t, 100, saved.Pages)
	require.Equal(t, int64(3), saved.AuthorID)
	require.Equal(t, model.StatusPaused, saved.Status)
	require.Nil(t, saved.Rating)
	require.Equal(t, "Bea", b.View().Author)
}

func TestUpdate_UnknownStatusFallsBack(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, UserID: 1, Title: "T", AuthorName: "A", Status: model.StatusRead}, nil
		},
		updateFn: func(ctx context.Context, b *model.Book) error { return nil },
	}
	b, err := booksvc.New(m).Update(context.Background(), 1, 5, model.UpdateBookReq{Status: ptr("xyz")})
	require.NoError(t, err)
	require.Equal(t, model.StatusToRead, b.Status)
}

func TestUpdate_RejectsBlankTitle(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, UserID: 1}, nil
		},
	}
	_, err := booksvc.New(m).Update(context.Background(), 1, 5, model.UpdateBookReq{Title: ptr(" ")})
	require.ErrorIs(t, err, booksvc.ErrMissingFields)
}

func TestDelete(t *testing.T) {
	deleted := int64(0)
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) {
			switch id {
			case 1:
				return &model.Book{ID: 1, UserID: 10}, nil
			case 2:
				return &model.Book{ID: 2, UserID: 99}, nil
			}
			return nil, database.ErrNotFound
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	s := booksvc.New(m)

	require.NoError(t, s.Delete(context.Background(), 10, 1))
	require.Equal(t, int64(1), deleted)

	require.ErrorIs(t, s.Delete(context.Background(), 10, 2), booksvc.ErrNotOwner)
	require.ErrorIs(t, s.Delete(context.Background(), 10, 404), booksvc.ErrBookNotFound)
}

func TestList_PassThrough(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, userID int64) ([]model.Book, error) {
			if userID != 3 {
				return nil, errors.New("wrong user")
			}
			return []model.Book{{ID: 1}}, nil
		},
	}
	rows, err := booksvc.New(m).List(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
