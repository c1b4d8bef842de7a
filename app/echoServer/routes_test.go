package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"litera/app/echoServer/controller/auth"
	"litera/app/echoServer/controller/book"
	"litera/app/echoServer/controller/note"
	"litera/app/echoServer/controller/reading"
)

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := echo.New()
	Register(e, C{
		Auth:      &auth.Controller{},
		Book:      &book.Controller{},
		Reading:   &reading.Controller{},
		Note:      &note.Controller{},
		JWTSecret: "s",
	})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/auth/me"},
		{http.MethodGet, "/books"},
		{http.MethodPost, "/books"},
		{http.MethodGet, "/books/1"},
		{http.MethodPut, "/books/1"},
		{http.MethodDelete, "/books/1"},
		{http.MethodGet, "/books/1/reading"},
		{http.MethodGet, "/books/1/progress"},
		{http.MethodGet, "/reading-timer/1"},
		{http.MethodPost, "/reading-timer"},
		{http.MethodPost, "/current-readings"},
		{http.MethodPost, "/progress-update"},
		{http.MethodGet, "/reading-notes?readingId=1"},
		{http.MethodPost, "/reading-notes"},
		{http.MethodPut, "/reading-notes/1"},
		{http.MethodDelete, "/reading-notes/1"},
	}
	for _, r := range routes {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.path)
	}
}
