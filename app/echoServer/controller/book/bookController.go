package book

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"litera/app/echoServer/jwtx"
	"litera/app/echoServer/respond"
	"litera/model"
	booksvc "litera/service/book"
)

type Controller struct {
	Svc booksvc.Service
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

// List
// @Summary      List my books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.BookView
// @Failure      401  {object}  map[string]any
// @Router       /books [get]
func (h *Controller) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	rows, err := h.Svc.List(c.Request().Context(), uid)
	if err != nil {
		return respond.Error(c, h.Log, "book list", err)
	}
	out := make([]model.BookView, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].View())
	}
	return c.JSON(http.StatusOK, out)
}

// Create
// @Summary      Add a book
// @Description  Status and rating accept display values; unknown values fall back to "Quero Ler" and unrated.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.CreateBookReq  true  "Book"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "duplicate isbn"
// @Router       /books [post]
func (h *Controller) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.CreateBookReq
	if err := respond.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	b, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return respond.Error(c, h.Log, "book create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"book": b.View()})
}

// Detail
// @Summary      Book detail
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Book ID"
// @Success      200  {object}  model.BookView
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /books/{id} [get]
func (h *Controller) Detail(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := respond.ID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.Svc.Detail(c.Request().Context(), uid, id)
	if err != nil {
		return respond.Error(c, h.Log, "book detail", err)
	}
	return c.JSON(http.StatusOK, b.View())
}

// Update
// @Summary      Update a book
// @Description  Partial update: omitted fields keep their value.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                  true  "Book ID"
// @Param        payload  body  model.UpdateBookReq  true  "Fields to change"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /books/{id} [put]
func (h *Controller) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := respond.ID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateBookReq
	if err := respond.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	b, err := h.Svc.Update(c.Request().Context(), uid, id, req)
	if err != nil {
		return respond.Error(c, h.Log, "book update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"book": b.View()})
}

// Delete
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Book ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /books/{id} [delete]
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
		return respond.Error(c, h.Log, "book delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted"})
}
