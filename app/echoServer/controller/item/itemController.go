package item

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	itemsvc "github.com/Thadzy/FIBO-Store/service/item"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /items
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("item list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []itemsvc.Item{}
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req UpsertItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	id, err := h.Svc.Create(c.Request().Context(), toInput(req))
	if err != nil {
		if errors.Is(err, itemsvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item payload"})
		}
		h.Log.Error("item create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item_id": id, "message": "Item created"})
}

// PUT /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpsertItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	if err := h.Svc.Update(c.Request().Context(), id, toInput(req)); err != nil {
		switch {
		case errors.Is(err, itemsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
		case errors.Is(err, itemsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item payload"})
		default:
			h.Log.Error("item update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item updated"})
}

// DELETE /items/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		h.Log.Error("item delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item deleted"})
}

func toInput(req UpsertItemReq) itemsvc.Input {
	return itemsvc.Input{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Specifications: req.Specifications,
		ImageURL:       req.ImageURL,
	}
}
