// Package main is the entry point for the Carbon Tracker API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/infra/cache"
	"github.com/carbon-tracker/backend/internal/infra/db"
	"github.com/carbon-tracker/backend/internal/infra/dependency"
	"github.com/carbon-tracker/backend/internal/infra/seed"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	slog.Info("Starting Carbon Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewPostgresConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, login rate limiting falls back to process memory", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient)
	if err != nil {
		return err
	}

	if cfg.Seed.OnStartup {
		if err := seedIfEmpty(ctx, injector, cfg.Seed.File); err != nil {
			return err
		}
	}

	var wg sync.WaitGroup
	if injector.EmailWorker != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			injector.EmailWorker.Start(ctx)
		}()
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		wg.Wait()
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	wg.Wait()

	slog.Info("Server exited properly")
	return nil
}

func seedIfEmpty(ctx context.Context, injector *dependency.Injector, file string) error {
	existing, err := injector.FactorRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	inputs, err := seed.LoadFile(file)
	if err != nil {
		return err
	}
	factors, err := injector.SeedFactors.Execute(ctx, inputs)
	if err != nil {
		return err
	}
	slog.Info("Seeded emission factor catalogue", "count", len(factors))
	return nil
}
