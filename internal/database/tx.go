package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Querier is the interface shared by *DB and *Tx. Repository constructors
// accept a Querier so the same code runs standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *Row
}

var (
	_ Querier = (*DB)(nil)
	_ Querier = (*Tx)(nil)
)

// Tx mirrors the DB query surface within a transaction.
type Tx struct {
	sqltx *sql.Tx
	db    *DB
}

// Exec executes a statement that returns no rows.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := t.sqltx.ExecContext(ctx, query, args...)
	err = mapError(err)
	t.db.logQuery(ctx, query, time.Since(start), err)
	return res, err
}

// Query executes a query returning rows. The caller must close them.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.sqltx.QueryContext(ctx, query, args...)
	err = mapError(err)
	t.db.logQuery(ctx, query, time.Since(start), err)
	return rows, err
}

// QueryRow executes a query expected to return at most one row.
func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *Row {
	start := time.Now()
	raw := t.sqltx.QueryRowContext(ctx, query, args...)
	t.db.logQuery(ctx, query, time.Since(start), nil)
	return &Row{raw: raw}
}

// ExecTx starts a transaction, runs fn, and commits on success or rolls back
// on error or panic.
func (d *DB) ExecTx(ctx context.Context, fn func(*Tx) error) (err error) {
	ctx, cancel := d.applyDefaultTimeout(ctx)
	defer cancel()

	sqltx, err := d.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}

	committing := false
	defer func() {
		if p := recover(); p != nil {
			_ = sqltx.Rollback()
			panic(p)
		}
		if err != nil && !committing {
			if rbErr := sqltx.Rollback(); rbErr != nil {
				err = fmt.Errorf("database: rollback failed (%v) after: %w", rbErr, err)
			}
		}
	}()

	if err = fn(&Tx{sqltx: sqltx, db: d}); err != nil {
		return mapError(err)
	}
	// A failed Commit finalizes the transaction, so the deferred rollback
	// must not run after it: its ErrTxDone would mask the commit error.
	committing = true
	if err = sqltx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}
