package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a query matches no rows. Repositories
	// surface it for fetch/update/delete on a nonexistent id; it is an
	// absent result, not a failure.
	ErrNotFound = errors.New("database: record not found")

	// ErrDuplicateKey is returned on unique constraint violations.
	ErrDuplicateKey = errors.New("database: duplicate key")

	// ErrForeignKeyViolation is returned when a referenced row is missing.
	ErrForeignKeyViolation = errors.New("database: foreign key violation")

	// ErrConnectionFailed is returned when the server is unreachable.
	ErrConnectionFailed = errors.New("database: connection failed")
)

func IsNotFound(err error) bool            { return errors.Is(err, ErrNotFound) }
func IsDuplicateKey(err error) bool        { return errors.Is(err, ErrDuplicateKey) }
func IsForeignKeyViolation(err error) bool { return errors.Is(err, ErrForeignKeyViolation) }

// DBError wraps a sentinel with the original driver error, so callers can use
// errors.Is for classification while the cause stays inspectable.
type DBError struct {
	Sentinel error
	Cause    error
}

func (e *DBError) Error() string {
	return fmt.Sprintf("%s (cause: %v)", e.Sentinel, e.Cause)
}

func (e *DBError) Is(target error) bool { return errors.Is(e.Sentinel, target) }
func (e *DBError) Unwrap() error        { return e.Cause }

// mapError translates raw driver errors into the package sentinels. It covers
// pgx (SQLSTATE codes) and go-sqlite3 (message strings); anything else passes
// through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &DBError{Sentinel: ErrNotFound, Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var dbe *DBError
	if errors.As(err, &dbe) {
		return err
	}

	if mapped := mapPostgresError(err); mapped != nil {
		return mapped
	}
	if mapped := mapSQLiteError(err); mapped != nil {
		return mapped
	}
	return err
}

// mapPostgresError matches pgconn.PgError through its SQLState method so the
// package has no hard dependency on the driver.
func mapPostgresError(err error) error {
	type stater interface{ SQLState() string }
	var s stater
	if !errors.As(err, &s) {
		return nil
	}
	// https://www.postgresql.org/docs/current/errcodes-appendix.html
	switch s.SQLState() {
	case "23505":
		return &DBError{Sentinel: ErrDuplicateKey, Cause: err}
	case "23503":
		return &DBError{Sentinel: ErrForeignKeyViolation, Cause: err}
	case "08000", "08001", "08003", "08004", "08006", "08007", "08P01":
		return &DBError{Sentinel: ErrConnectionFailed, Cause: err}
	}
	return nil
}

// mapSQLiteError is string-based; go-sqlite3 does not export typed errors.
func mapSQLiteError(err error) error {
	s := err.Error()
	switch {
	case strings.Contains(s, "UNIQUE constraint failed"):
		return &DBError{Sentinel: ErrDuplicateKey, Cause: err}
	case strings.Contains(s, "FOREIGN KEY constraint failed"):
		return &DBError{Sentinel: ErrForeignKeyViolation, Cause: err}
	}
	return nil
}
