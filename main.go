// Package main FIBO Store API.
//
// @title           FIBO Store API
// @version         1.0
// @description     Inventory booking service (items, bookings, approvals).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Thadzy/FIBO-Store/app/echoServer"
	bookingctrl "github.com/Thadzy/FIBO-Store/app/echoServer/controller/booking"
	itemctrl "github.com/Thadzy/FIBO-Store/app/echoServer/controller/item"
	"github.com/Thadzy/FIBO-Store/app/echoServer/validation"
	"github.com/Thadzy/FIBO-Store/config"
	bookingrepo "github.com/Thadzy/FIBO-Store/repository/booking"
	itemrepo "github.com/Thadzy/FIBO-Store/repository/item"
	userrepo "github.com/Thadzy/FIBO-Store/repository/user"
	bookingsvc "github.com/Thadzy/FIBO-Store/service/booking"
	itemsvc "github.com/Thadzy/FIBO-Store/service/item"
	"github.com/Thadzy/FIBO-Store/util/database"
	"github.com/Thadzy/FIBO-Store/util/shutdown"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	ir := itemrepo.New(db)
	ur := userrepo.New()
	br := bookingrepo.New(db)

	// services
	is := itemsvc.New(ir)
	bs := bookingsvc.New(db, ir, ur, br)

	// controllers
	v := validator.New()
	itemC := &itemctrl.Controller{Svc: is, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"message": "Welcome to FIBO Store API!"})
	})

	e.GET("/health", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(503, map[string]any{"status": "error", "message": "database unreachable"})
		}
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Item:    itemC,
		Booking: bookingC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		log.Info("starting server", "port", port, "env", cfg.Env)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
