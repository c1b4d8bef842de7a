package note

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"litera/app/echoServer/jwtx"
	"litera/model"
	notesvc "litera/service/note"
	jwtutil "litera/util/jwt"
)

type mockSvc struct {
	listFn   func(ctx context.Context, userID, readingID int64) ([]model.ReadingNote, error)
	createFn func(ctx context.Context, userID int64, req model.CreateNoteReq) (*model.ReadingNote, error)
	updateFn func(ctx context.Context, userID, noteID int64, req model.UpdateNoteReq) (*model.ReadingNote, error)
	deleteFn func(ctx context.Context, userID, noteID int64) error
}

func (m *mockSvc) List(ctx context.Context, userID, readingID int64) ([]model.ReadingNote, error) {
	return m.listFn(ctx, userID, readingID)
}
func (m *mockSvc) Create(ctx context.Context, userID int64, req model.CreateNoteReq) (*model.ReadingNote, error) {
	return m.createFn(ctx, userID, req)
}
func (m *mockSvc) Update(ctx context.Context, userID, noteID int64, req model.UpdateNoteReq) (*model.ReadingNote, error) {
	return m.updateFn(ctx, userID, noteID, req)
}
func (m *mockSvc) Delete(ctx context.Context, userID, noteID int64) error {
	return m.deleteFn(ctx, userID, noteID)
}

func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(jwtx.ContextKey, &jwt.Token{Claims: &jwtutil.Claims{UserID: 7}})
	return c, rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "want *echo.HTTPError, got %v", err)
	return he.Code
}

func TestList(t *testing.T) {
	h := &Controller{Svc: &mockSvc{listFn: func(ctx context.Context, userID, readingID int64) ([]model.ReadingNote, error) {
		require.Equal(t, int64(5), readingID)
		return []model.ReadingNote{{ID: 1, ReadingID: 5, Content: "hi"}}, nil
	}}}

	c, rec := newCtx(http.MethodGet, "/reading-notes?readingId=5", "")
	require.NoError(t, h.List(c))
	require.Contains(t, rec.Body.String(), `"content":"hi"`)

	c, _ = newCtx(http.MethodGet, "/reading-notes", "")
	require.Equal(t, http.StatusBadRequest, httpCode(t, h.List(c)))
}

func TestCreate(t *testing.T) {
	h := &Controller{V: validator.New(), Svc: &mockSvc{createFn: func(ctx context.Context, userID int64, req model.CreateNoteReq) (*model.ReadingNote, error) {
		if req.ReadingID == 2 {
			return nil, notesvc.ErrNotOwner
		}
		return &model.ReadingNote{ID: 3, ReadingID: req.ReadingID, Content: req.Content}, nil
	}}}

	c, rec := newCtx(http.MethodPost, "/reading-notes", `{"readingId":1,"content":"nice"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, _ = newCtx(http.MethodPost, "/reading-notes", `{"readingId":1}`)
	require.Equal(t, http.StatusBadRequest, httpCode(t, h.Create(c)))

	c, _ = newCtx(http.MethodPost, "/reading-notes", `{"readingId":2,"content":"x"}`)
	require.Equal(t, http.StatusForbidden, httpCode(t, h.Create(c)))
}

func TestUpdateAndDelete(t *testing.T) {
	h := &Controller{V: validator.New(), Svc: &mockSvc{
		updateFn: func(ctx context.Context, userID, noteID int64, req model.UpdateNoteReq) (*model.ReadingNote, error) {
			return &model.ReadingNote{ID: noteID, Content: req.Content}, nil
		},
		deleteFn: func(ctx context.Context, userID, noteID int64) error {
			return notesvc.ErrNoteNotFound
		},
	}}

	c, rec := newCtx(http.MethodPut, "/reading-notes/4", `{"content":"edited"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.Update(c))
	require.Contains(t, rec.Body.String(), `"content":"edited"`)

	c, _ = newCtx(http.MethodDelete, "/reading-notes/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.Equal(t, http.StatusNotFound, httpCode(t, h.Delete(c)))
}
