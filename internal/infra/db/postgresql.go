// Package db provides database connection and management functionality.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// Database wraps the GORM database connection.
type Database struct {
	db  *gorm.DB
	cfg *config.DatabaseConfig
}

// NewPostgresConnection connects to PostgreSQL, retrying with exponential
// backoff until cfg.ConnectMaxElapsed has passed.
func NewPostgresConnection(ctx context.Context, cfg *config.DatabaseConfig) (*Database, error) {
	return Open(ctx, postgres.Open(cfg.URL), cfg)
}

// Open connects through any GORM dialector with the pool and retry settings of cfg.
func Open(ctx context.Context, dialector gorm.Dialector, cfg *config.DatabaseConfig) (*Database, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.Debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = cfg.ConnectMaxElapsed

	var conn *gorm.DB
	connect := func() error {
		db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to get underlying sql.DB: %w", err))
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}

		conn = db
		return nil
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("Database not ready, retrying", "error", err, "retry_in", wait)
	}

	if err := backoff.RetryNotify(connect, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	slog.Info("Database connection established",
		"dialect", conn.Dialector.Name(),
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return &Database{db: conn, cfg: cfg}, nil
}

// DB returns the underlying GORM database instance.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Ping checks that the database answers.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	slog.Info("Database connection closed")
	return nil
}

// Migrate creates or updates the schema of every persisted model.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
