package echoServer

import (
	"github.com/Thadzy/FIBO-Store/app/echoServer/controller/booking"
	"github.com/Thadzy/FIBO-Store/app/echoServer/controller/item"

	"github.com/labstack/echo/v4"
)

type C struct {
	Item    *item.Controller
	Booking *booking.Controller
}

func Register(e *echo.Echo, c C) {
	// Catalog
	e.GET("/items", c.Item.List)
	e.POST("/items", c.Item.Create)
	e.PUT("/items/:id", c.Item.Update)
	e.DELETE("/items/:id", c.Item.Delete)

	// Bookings
	e.POST("/bookings", c.Booking.Create)
	e.GET("/my-bookings", c.Booking.MyBookings)

	// Admin
	e.GET("/admin/bookings", c.Booking.AdminList)
	e.PATCH("/bookings/:id/status", c.Booking.UpdateStatus)
}
