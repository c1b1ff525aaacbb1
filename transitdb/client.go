package transitdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotDataset is returned by Open when the file exists but lacks the dataset tables.
var ErrNotDataset = errors.New("file is not a transit dataset")

// Client is the main entry point for the library
type Client struct {
	config  Config
	DB      *sql.DB
	Queries *Queries
}

// Create opens a writable dataset at config.DBPath and creates the schema.
// Only the builder writes, so the handle is limited to a single connection.
func Create(config Config) (*Client, error) {
	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := performDatabaseMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	if config.verbose {
		slog.Info("created dataset tables", slog.String("path", config.DBPath))
	}

	return &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
	}, nil
}

// Open opens an existing dataset read-only. The returned handle is safe for
// any number of concurrent readers.
func Open(config Config) (*Client, error) {
	if _, err := os.Stat(config.DBPath); err != nil {
		return nil, fmt.Errorf("error opening dataset %s: %w", config.DBPath, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=query_only(1)&_pragma=busy_timeout(5000)", config.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	configureConnectionPool(db)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var tables int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('routes', 'stops', 'direction_patterns', 'pattern_stops', 'stop_route_index')",
	).Scan(&tables)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error inspecting schema: %w", err)
	}
	if tables != 5 {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.DBPath, ErrNotDataset)
	}

	if config.verbose {
		slog.Info("opened dataset", slog.String("path", config.DBPath))
	}

	return &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
	}, nil
}

func configureConnectionPool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func (c *Client) Close() error {
	return c.DB.Close()
}
