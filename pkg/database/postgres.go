package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/plant-shift-api/pkg/config"
)

// NewPostgres returns a configured PostgreSQL client.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema creates the tables the service reads and writes. shift_date is stored as zero-padded
// Jalali text so lexical order is chronological order.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS personnel (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		position TEXT NOT NULL DEFAULT '',
		crew CHAR(1),
		eligible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS shift_reports (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		shift_date CHAR(10) NOT NULL,
		gregorian_date DATE NOT NULL,
		crew CHAR(1) NOT NULL,
		rotation_type TEXT NOT NULL,
		supervisor_id TEXT NOT NULL,
		total_tonnage DOUBLE PRECISION NOT NULL DEFAULT 0,
		present_count INTEGER NOT NULL DEFAULT 0,
		stopped_minutes INTEGER NOT NULL DEFAULT 0,
		payload JSONB NOT NULL,
		created_by TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS shift_reports_shift_date_idx ON shift_reports (shift_date DESC, created_at DESC)`,
}

// Migrate applies the schema idempotently.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
