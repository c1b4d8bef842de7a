package reading

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"litera/app/echoServer/jwtx"
	"litera/app/echoServer/respond"
	"litera/model"
	readingsvc "litera/service/reading"
)

type Controller struct {
	Svc readingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func userID(c echo.Context) (int64, error) {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return uid, nil
}

// GetTimer
// @Summary      Reading timer state
// @Description  totalSeconds includes the running segment when the timer is on.
// @Tags         reading
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  path  int  true  "Book ID"
// @Success      200  {object}  model.Timer
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /reading-timer/{bookId} [get]
func (h *Controller) GetTimer(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookID, err := respond.ID(c, "bookId")
	if err != nil {
		return err
	}
	t, err := h.Svc.Elapsed(c.Request().Context(), uid, bookID)
	if err != nil {
		return respond.Error(c, h.Log, "timer load", err)
	}
	return c.JSON(http.StatusOK, t)
}

// SetTimer
// @Summary      Save reading timer
// @Tags         reading
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.SetTimerReq  true  "Timer state"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /reading-timer [post]
func (h *Controller) SetTimer(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.SetTimerReq
	if err := respond.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	t, err := h.Svc.SetTimer(c.Request().Context(), uid, req)
	if err != nil {
		return respond.Error(c, h.Log, "timer save", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"timer": echo.Map{
			"totalSeconds":   t.TotalSeconds,
			"isTimerRunning": t.IsTimerRunning,
		},
	})
}

// RecordProgress
// @Summary      Record reading progress
// @Description  Starts a reading on first use and moves the book to "Lendo".
// @Tags         reading
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.RecordProgressReq  true  "Progress"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /current-readings [post]
func (h *Controller) RecordProgress(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.RecordProgressReq
	if err := respond.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	out, err := h.Svc.RecordProgress(c.Request().Context(), uid, req)
	if err != nil {
		return respond.Error(c, h.Log, "record progress", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reading":  out.Reading,
		"progress": out.Progress,
	})
}

// LogProgress
// @Summary      Log a progress update
// @Description  Sets the book to "Lendo" when pages were read, "Quero Ler" otherwise.
// @Tags         reading
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.ProgressUpdateReq  true  "Progress"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /progress-update [post]
func (h *Controller) LogProgress(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.ProgressUpdateReq
	if err := respond.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	out, err := h.Svc.LogProgress(c.Request().Context(), uid, req)
	if err != nil {
		return respond.Error(c, h.Log, "progress update", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reading":  out.Reading,
		"progress": out.Progress,
		"status":   model.StatusLabel(out.Status),
	})
}

// ReadingID
// @Summary      Reading id for a book
// @Tags         reading
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Book ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /books/{id}/reading [get]
func (h *Controller) ReadingID(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookID, err := respond.ID(c, "id")
	if err != nil {
		return err
	}
	id, err := h.Svc.ReadingID(c.Request().Context(), uid, bookID)
	if err != nil {
		return respond.Error(c, h.Log, "reading lookup", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"readingId": id})
}

// History
// @Summary      Progress history for a book
// @Tags         reading
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Book ID"
// @Success      200  {array}   model.ProgressUpdate
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /books/{id}/progress [get]
func (h *Controller) History(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookID, err := respond.ID(c, "id")
	if err != nil {
		return err
	}
	rows, err := h.Svc.History(c.Request().Context(), uid, bookID)
	if err != nil {
		return respond.Error(c, h.Log, "progress history", err)
	}
	return c.JSON(http.StatusOK, rows)
}
