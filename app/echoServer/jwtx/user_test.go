package jwtx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	jwtutil "litera/util/jwt"
)

func TestUserIDFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := UserIDFromContext(c)
	require.Error(t, err)

	c.Set(ContextKey, &jwt.Token{Claims: jwt.MapClaims{"sub": "1"}})
	_, err = UserIDFromContext(c)
	require.Error(t, err)

	c.Set(ContextKey, &jwt.Token{Claims: &jwtutil.Claims{UserID: 42, Email: "a@b.c"}})
	id, err := UserIDFromContext(c)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	email, err := EmailFromContext(c)
	require.NoError(t, err)
	require.Equal(t, "a@b.c", email)
}
