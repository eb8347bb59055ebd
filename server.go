// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"bootstrapper-server/commons"
	"bootstrapper-server/db"
	"bootstrapper-server/handlers"
	"bootstrapper-server/migrations"
	"bootstrapper-server/routes"
	"bootstrapper-server/storage"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func intEnv(key, fallback string) int {
	value, err := strconv.Atoi(commons.GetEnv(key, fallback))
	if err != nil {
		commons.Logger.Errorf("%s must be an integer: %v", key, err)
		os.Exit(1)
	}
	return value
}

func main() {
	commons.LoadEnvFile()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	pool, err := db.OpenPool(db.ConfigFromEnv())
	if err != nil {
		e.Logger.Fatal("Failed to open connection pool: ", err)
	}

	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		if err := pool.WithConn(context.Background(), migrations.Migrate); err != nil {
			e.Logger.Fatal(err)
		}
	}

	h := &handlers.Handler{
		Store:      storage.NewStore(pool),
		DailyLimit: intEnv("API_RATE_LIMIT_PER_DAY", "10"),
		MonthLimit: intEnv("API_PROJECTS_PER_MONTH", "5"),
	}
	routes.RegisterRoutes(e, h)

	port := commons.GetEnv("PORT")
	if port == "" {
		port = ":8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}

	go func() {
		if err := e.Start(port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal("Shutting down the server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error("Server shutdown failed: ", err)
	}
	pool.Close()
}
