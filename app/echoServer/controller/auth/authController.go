package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"litera/app/echoServer/jwtx"
	"litera/app/echoServer/respond"
	"litera/model"
	authsvc "litera/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Register a new user and return a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already registered"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /auth/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := respond.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return respond.Error(c, ct.Log, "register", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"token": token,
		"user":  u,
	})
}

// Login
// @Summary      Login
// @Description  Login with email + password, returns JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /auth/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := respond.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		return respond.Error(c, ct.Log, "login", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  u,
	})
}

// ForgotPassword
// @Summary      Request a password reset
// @Description  Always answers 200 so callers cannot probe registered addresses
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.ForgotPasswordReq  true  "Email"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /auth/forgot-password [post]
func (ct *Controller) ForgotPassword(c echo.Context) error {
	var req model.ForgotPasswordReq
	if err := respond.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}

	ct.Svc.ForgotPassword(c.Request().Context(), req.Email)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "if the email is registered, a reset link has been sent",
	})
}

// ResetPassword
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.ResetPasswordReq  true  "Token and new password"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any "invalid or expired token"
// @Router       /auth/reset-password [post]
func (ct *Controller) ResetPassword(c echo.Context) error {
	var req model.ResetPasswordReq
	if err := respond.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}

	if err := ct.Svc.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return respond.Error(c, ct.Log, "reset password", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// Me
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /auth/me [get]
func (ct *Controller) Me(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	u, err := ct.Svc.Me(c.Request().Context(), uid)
	if err != nil {
		return respond.Error(c, ct.Log, "me", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
