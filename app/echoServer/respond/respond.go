// Package respond holds the request binding and error mapping shared by the
// controllers.
package respond

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"litera/util/apperr"
)

var statusOf = map[apperr.ErrCode]int{
	apperr.ErrValidation:   http.StatusBadRequest,
	apperr.ErrNotFound:     http.StatusNotFound,
	apperr.ErrUnauthorized: http.StatusUnauthorized,
	apperr.ErrForbidden:    http.StatusForbidden,
	apperr.ErrConflict:     http.StatusConflict,
}

// Bind decodes the body into req and validates it. v may be nil, in which
// case the echo validator is used.
func Bind(c echo.Context, v *validator.Validate, log *slog.Logger, req any) error {
	if err := c.Bind(req); err != nil {
		if log != nil {
			log.Warn("bind failed", "path", c.Path(), "err", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var err error
	if v != nil {
		err = v.Struct(req)
	} else {
		err = c.Validate(req)
	}
	if err != nil {
		if log != nil {
			log.Warn("validation failed", "path", c.Path(), "err", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	return nil
}

// ID parses a positive int64 path parameter.
func ID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// Error maps a service error to an HTTP error. Uncoded errors are logged with
// the request id and reported as "<op> failed".
func Error(c echo.Context, log *slog.Logger, op string, err error) error {
	if status, ok := statusOf[apperr.Code(err)]; ok {
		return echo.NewHTTPError(status, apperr.Message(err))
	}
	if log != nil {
		log.Error(op+" failed",
			"err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"method", c.Request().Method,
		)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, op+" failed")
}
