package auth

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
	authsvc "litera/service/auth"
	jwtutil "litera/util/jwt"
)

type mockSvc struct {
	registerFn func(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	loginFn    func(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	forgotFn   func(ctx context.Context, email string)
	resetFn    func(ctx context.Context, token, password string) error
	meFn       func(ctx context.Context, userID int64) (*model.User, error)
}

func (m *mockSvc) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	return m.registerFn(ctx, req)
}
func (m *mockSvc) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	return m.loginFn(ctx, req)
}
func (m *mockSvc) ForgotPassword(ctx context.Context, email string) { m.forgotFn(ctx, email) }
func (m *mockSvc) ResetPassword(ctx context.Context, token, password string) error {
	return m.resetFn(ctx, token, password)
}
func (m *mockSvc) Me(ctx context.Context, userID int64) (*model.User, error) {
	return m.meFn(ctx, userID)
}

func newCtx(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "want *echo.HTTPError, got %v", err)
	return he.Code
}

func TestRegister(t *testing.T) {
	svc := &mockSvc{registerFn: func(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
		if req.Email == "taken@x.io" {
			return nil, "", authsvc.ErrEmailTaken
		}
		return &model.User{ID: 1, Name: req.Name, Email: req.Email, PasswordHash: "secret-hash"}, "tok", nil
	}}
	h := &Controller{Svc: svc, V: validator.New()}

	c, rec := newCtx(http.MethodPost, `{"name":"Ana","email":"ana@x.io","password":"123456"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"token":"tok"`)
	require.NotContains(t, rec.Body.String(), "secret-hash")

	c, _ = newCtx(http.MethodPost, `{"name":"Ana","email":"ana@x.io","password":"123"}`)
	require.Equal(t, http.StatusBadRequest, httpCode(t, h.Register(c)))

	c, _ = newCtx(http.MethodPost, `{"name":"Ana","email":"taken@x.io","password":"123456"}`)
	require.Equal(t, http.StatusConflict, httpCode(t, h.Register(c)))
}

func TestLogin_InvalidCreds(t *testing.T) {
	svc := &mockSvc{loginFn: func(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
		return nil, "", authsvc.ErrInvalidCreds
	}}
	h := &Controller{Svc: svc, V: validator.New()}

	c, _ := newCtx(http.MethodPost, `{"email":"a@x.io","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, h.Login(c)))
}

func TestForgotPassword_AlwaysOK(t *testing.T) {
	called := ""
	svc := &mockSvc{forgotFn: func(ctx context.Context, email string) { called = email }}
	h := &Controller{Svc: svc, V: validator.New()}

	c, rec := newCtx(http.MethodPost, `{"email":"ghost@x.io"}`)
	require.NoError(t, h.ForgotPassword(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ghost@x.io", called)
}

func TestResetPassword_BadToken(t *testing.T) {
	svc := &mockSvc{resetFn: func(ctx context.Context, token, password string) error {
		return authsvc.ErrInvalidToken
	}}
	h := &Controller{Svc: svc, V: validator.New()}

	c, _ := newCtx(http.MethodPost, `{"token":"t","password":"abcdef"}`)
	err := h.ResetPassword(c)
	require.Equal(t, http.StatusBadRequest, httpCode(t, err))
	require.Equal(t, "invalid or expired token", err.(*echo.HTTPError).Message)
}

func TestMe(t *testing.T) {
	svc := &mockSvc{meFn: func(ctx context.Context, userID int64) (*model.User, error) {
		return &model.User{ID: userID, Email: "me@x.io"}, nil
	}}
	h := &Controller{Svc: svc}

	c, _ := newCtx(http.MethodGet, "")
	require.Equal(t, http.StatusUnauthorized, httpCode(t, h.Me(c)))

	c, rec := newCtx(http.MethodGet, "")
	c.Set(jwtx.ContextKey, &jwt.Token{Claims: &jwtutil.Claims{UserID: 9}})
	require.NoError(t, h.Me(c))
	require.Contains(t, rec.Body.String(), `"me@x.io"`)
}
