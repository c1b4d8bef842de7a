package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"litera/app/echoServer/jwtx"
	jwtutil "litera/util/jwt"
)

func protected(secret string) *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		uid, err := jwtx.UserIDFromContext(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return c.JSON(http.StatusOK, echo.Map{"uid": uid})
	}, JWT(secret))
	return e
}

func TestJWT(t *testing.T) {
	e := protected("s3cret")

	tok, err := jwtutil.Issue("s3cret", 7, "a@b.c", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"uid":7}`, rec.Body.String())

	for _, h := range []string{"", "Bearer nope", "Bearer " + tok + "x"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if h != "" {
			req.Header.Set(echo.HeaderAuthorization, h)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, h)
	}
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(0.001, 2))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{200, 200, 429}, codes)
}

func TestSlogRendersHandlerError(t *testing.T) {
	e := echo.New()
	RegisterMiddlewares(e, MiddlewareConfig{AllowedOrigins: []string{"*"}})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
