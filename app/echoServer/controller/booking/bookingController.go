package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Thadzy/FIBO-Store/model"
	bs "github.com/Thadzy/FIBO-Store/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	lines := make([]model.BookingLine, 0, len(req.Items))
	for _, l := range req.Items {
		lines = append(lines, model.BookingLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	id, err := h.Svc.Create(c.Request().Context(),
		bs.Identity{Email: req.UserEmail, FullName: req.UserName},
		bs.Request{
			PickupDate: req.PickupDate,
			DueDate:    req.DueDate,
			Purpose:    req.Purpose,
			Lines:      lines,
		})
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case bs.ErrInsufficientStock:
			return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
		case bs.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("booking create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id": id,
		"message":    "Booking created",
	})
}

// GET /my-bookings?email=
func (h *Controller) MyBookings(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email is required"})
	}
	rows, err := h.Svc.MyBookings(c.Request().Context(), email)
	if err != nil {
		h.Log.Error("my bookings", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /admin/bookings
func (h *Controller) AdminList(c echo.Context) error {
	rows, err := h.Svc.AdminBookings(c.Request().Context())
	if err != nil {
		h.Log.Error("admin bookings", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// PATCH /bookings/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		switch bs.Code(err) {
		case bs.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		case bs.ErrBadStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("booking status", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated to " + req.Status})
}
