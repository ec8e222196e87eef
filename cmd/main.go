package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"MoviesCatalogAPI/config"
	"MoviesCatalogAPI/internal/database"
	"MoviesCatalogAPI/internal/handlers"
	"MoviesCatalogAPI/internal/routes"
	"MoviesCatalogAPI/internal/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Open(database.Config{
		DSN:             cfg.DSN(),
		DriverName:      "pgx",
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		DefaultTimeout:  10 * time.Second,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Dependency injection
	movieService := services.NewMovieService(db, logger)
	movieHandler := handlers.NewMovieHandler(movieService)
	healthHandler := handlers.NewHealthHandler(db)

	router := routes.SetupRouter(movieHandler, healthHandler)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	shutdownError := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownError <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", cfg.Addr())
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
	if err := <-shutdownError; err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("stopped server", "addr", cfg.Addr())
}
