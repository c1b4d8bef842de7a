package note

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"litera/app/echoServer/jwtx"
	"litera/app/echoServer/respond"
	"litera/model"
	notesvc "litera/service/note"
)

type Controller struct {
	Svc notesvc.Service
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

// GET /reading-notes?readingId=
func (h *Controller) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	readingID, err := strconv.ParseInt(c.QueryParam("readingId"), 10, 64)
	if err != nil || readingID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid readingId")
	}
	rows, err := h.Svc.List(c.Request().Context(), uid, readingID)
	if err != nil {
		return respond.Error(c, h.Log, "note list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /reading-notes
func (h *Controller) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.CreateNoteReq
	if err := respond.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	n, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return respond.Error(c, h.Log, "note create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"note": n})
}

// PUT /reading-notes/:id
func (h *Controller) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := respond.ID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateNoteReq
	if err := respond.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	n, err := h.Svc.Update(c.Request().Context(), uid, id, req)
	if err != nil {
		return respond.Error(c, h.Log, "note update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"note": n})
}

// DELETE /reading-notes/:id
func (h *Controller) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := respond.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return respond.Error(c, h.Log, "note delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "note deleted"})
}
