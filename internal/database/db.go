// Package database wraps database/sql with context-aware helpers, unified
// error mapping and transaction management for the movie catalog. All SQL
// lives in the repositories; this package only owns the connection pool.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Config holds the options for opening the connection pool.
type Config struct {
	// DSN is the driver-specific data-source name.
	DSN string

	// DriverName is "pgx" in production and "sqlite3" in tests.
	DriverName string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// DefaultTimeout is applied when the caller's context carries no
	// deadline. Zero disables it.
	DefaultTimeout time.Duration

	// Logger receives one debug entry per executed statement. Nil disables
	// query logging.
	Logger *slog.Logger
}

// DB is a concurrency-safe wrapper around *sql.DB. It is owned by the
// composition root and injected into the repositories; nothing else holds a
// reference to the pool.
type DB struct {
	sqldb  *sql.DB
	cfg    Config
	logger *slog.Logger
}

// Open opens the pool described by cfg and verifies connectivity with a ping.
// The caller is responsible for Close on shutdown.
func Open(cfg Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database: DSN must not be empty")
	}
	if cfg.DriverName == "" {
		return nil, fmt.Errorf("database: DriverName must not be empty")
	}

	sqldb, err := sql.Open(cfg.DriverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &DB{sqldb: sqldb, cfg: cfg, logger: cfg.Logger}, nil
}

// Close closes all pooled connections. Safe to call multiple times.
func (d *DB) Close() error { return d.sqldb.Close() }

// Ping verifies that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := d.applyDefaultTimeout(ctx)
	defer cancel()
	return d.sqldb.PingContext(ctx)
}

// Exec executes a statement that returns no rows.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := d.applyDefaultTimeout(ctx)
	defer cancel()
	start := time.Now()
	res, err := d.sqldb.ExecContext(ctx, query, args...)
	err = mapError(err)
	d.logQuery(ctx, query, time.Since(start), err)
	return res, err
}

// Query executes a query that returns rows. The caller must close them. The
// default timeout is not applied here: the Rows outlive this call and
// database/sql closes them when the derived context is cancelled, which would
// abort the caller's iteration.
func (d *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.sqldb.QueryContext(ctx, query, args...)
	err = mapError(err)
	d.logQuery(ctx, query, time.Since(start), err)
	return rows, err
}

// QueryRow executes a query expected to return at most one row. Scan on the
// returned Row yields ErrNotFound when nothing matches. The default timeout
// is not applied here: the Row outlives this call and cancelling early would
// abort the caller's Scan.
func (d *DB) QueryRow(ctx context.Context, query string, args ...any) *Row {
	start := time.Now()
	raw := d.sqldb.QueryRowContext(ctx, query, args...)
	d.logQuery(ctx, query, time.Since(start), nil)
	return &Row{raw: raw}
}

func (d *DB) applyDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.cfg.DefaultTimeout == 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.cfg.DefaultTimeout)
}

func (d *DB) logQuery(ctx context.Context, query string, dur time.Duration, err error) {
	if d.logger == nil {
		return
	}
	if err != nil {
		d.logger.ErrorContext(ctx, "query failed", "query", query, "duration", dur, "err", err)
		return
	}
	d.logger.DebugContext(ctx, "query", "query", query, "duration", dur)
}

// Row wraps *sql.Row so scan errors pass through the unified error mapper.
type Row struct {
	raw *sql.Row
}

// Scan copies the matched row into dest values.
func (r *Row) Scan(dest ...any) error {
	return mapError(r.raw.Scan(dest...))
}
