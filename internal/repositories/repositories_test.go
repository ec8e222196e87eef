package repositories_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"MoviesCatalogAPI/internal/database"
	"MoviesCatalogAPI/internal/models"
	"MoviesCatalogAPI/internal/repositories"
)

var testDBSeq atomic.Int64

const testSchema = `
	CREATE TABLE movie (
		id       TEXT PRIMARY KEY,
		title    TEXT NOT NULL,
		year     INTEGER NOT NULL,
		director TEXT NOT NULL,
		duration INTEGER NOT NULL CHECK (duration > 0),
		poster   TEXT NOT NULL,
		rate     REAL NOT NULL DEFAULT 5
	);
	CREATE TABLE genre (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE UNIQUE INDEX genre_name_lower_idx ON genre (LOWER(name));
	CREATE TABLE movie_genres (
		movie_id TEXT    NOT NULL REFERENCES movie (id) ON DELETE CASCADE,
		genre_id INTEGER NOT NULL REFERENCES genre (id),
		PRIMARY KEY (movie_id, genre_id)
	)`

func newTestDB(t *testing.T) *database.DB {
	return openTestDB(t, 0)
}

func openTestDB(t *testing.T, timeout time.Duration) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	d, err := database.Open(database.Config{
		DSN:            dsn,
		DriverName:     "sqlite3",
		MaxOpenConns:   1,
		DefaultTimeout: timeout,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if _, err := d.Exec(context.Background(), testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return d
}

// seedMovie inserts a movie with distinguishable attribute values.
func seedMovie(t *testing.T, r *repositories.MovieRepository, id string) models.Movie {
	t.Helper()

	m := models.Movie{
		ID:       id,
		Title:    "Movie " + id,
		Year:     2000,
		Director: "Director " + id,
		Duration: 120,
		Poster:   "http://posters.test/" + id + ".jpg",
		Rate:     7.5,
	}
	if err := r.Insert(context.Background(), m); err != nil {
		t.Fatalf("seed movie %s: %v", id, err)
	}
	return m
}
