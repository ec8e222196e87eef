package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"MoviesCatalogAPI/internal/database"
	"MoviesCatalogAPI/internal/repositories"
)

func TestMovieRepo_InsertAndGetByID(t *testing.T) {
	d := newTestDB(t)
	r := repositories.NewMovieRepository(d)

	want := seedMovie(t, r, uuid.New().String())

	got, err := r.GetByID(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != want.Title || got.Year != want.Year || got.Director != want.Director ||
		got.Duration != want.Duration || got.Poster != want.Poster || got.Rate != want.Rate {
		t.Fatalf("roundtrip mismatch: got %+v want %+v", got, want)
	}
}

func TestMovieRepo_GetByID_NotFound(t *testing.T) {
	d := newTestDB(t)
	r := repositories.NewMovieRepository(d)

	_, err := r.GetByID(context.Background(), uuid.New().String())
	if !database.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMovieRepo_GetAll_ListProjection(t *testing.T) {
	d := newTestDB(t)
	r := repositories.NewMovieRepository(d)
	ctx := context.Background()

	seedMovie(t, r, uuid.New().String())
	seedMovie(t, r, uuid.New().String())

	movies, err := r.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	for _, m := range movies {
		// The plain list omits duration and genre columns.
		if m.Duration != 0 || m.GenreID != 0 || m.GenreName != "" {
			t.Fatalf("list projection leaked detail fields: %+v", m)
		}
	}
}

func TestMovieRepo_GetAll_WithDefaultTimeout(t *testing.T) {
	d := openTestDB(t, 10*time.Second)
	r := repositories.NewMovieRepository(d)
	ctx := context.Background()

	const total = 50
	for i := 0; i < total; i++ {
		seedMovie(t, r, uuid.New().String())
	}

	// Row iteration happens after the pool call returns; the pool-level
	// timeout must not cut the result set short.
	for i := 0; i < 200; i++ {
		movies, err := r.GetAll(ctx)
		if err != nil {
			t.Fatalf("get all (round %d): %v", i, err)
		}
		if len(movies) != total {
			t.Fatalf("get all (round %d): expected %d movies, got %d", i, total, len(movies))
		}
	}
}

func TestMovieRepo_Update_PartialRecognizedKeys(t *testing.T) {
	d := newTestDB(t)
	r := repositories.NewMovieRepository(d)
	ctx := context.Background()

	m := seedMovie(t, r, uuid.New().String())

	affected, err := r.Update(ctx, m.ID, map[string]any{
		"Rate":    9.0,
		"TITLE":   "Renamed",
		"unknown": "ignored",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Rate != 9.0 || got.Title != "Renamed" {
		t.Fatalf("recognized keys not applied: %+v", got)
	}
	if got.Director != m.Director || got.Year != m.Year {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestMovieRepo_Update_NoRecognizedKeys(t *testing.T) {
	d := newTestDB(t)
	r := repositories.NewMovieRepository(d)
	ctx := context.Background()

	m := seedMovie(t, r, uuid.New().String())

	matched, err := r.Update(ctx, m.ID, map[string]any{"nonsense": 1, "genre": "Drama"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if matched != 1 {
		t.Fatalf("no-op update must still report the matched row, got %d", matched)
	}

	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != m.Title || got.Year != m.Year || got.Director != m.Director ||
		got.Duration != m.Duration || got.Poster != m.Poster || got.Rate != m.Rate {
		t.Fatalf("no-op update changed the record: %+v", got)
	}
}

func TestMovieRepo_Update_NonexistentID(t *testing.T) {
	d := newTestDB(t)
	r := repositories.NewMovieRepository(d)

	matched, err := r.Update(context.Background(), uuid.New().String(), map[string]any{"rate": 3.0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if matched != 0 {
		t.Fatalf("expected 0 matched rows, got %d", matched)
	}
}

func TestMovieRepo_Delete_Idempotent(t *testing.T) {
	d := newTestDB(t)
	r := repositories.NewMovieRepository(d)
	ctx := context.Background()

	m := seedMovie(t, r, uuid.New().String())

	if err := r.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.GetByID(ctx, m.ID); !database.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again, or deleting an unknown id, is not an error.
	if err := r.Delete(ctx, m.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := r.Delete(ctx, uuid.New().String()); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
}

func TestMovieRepo_Delete_CascadesAssociations(t *testing.T) {
	d := newTestDB(t)
	movies := repositories.NewMovieRepository(d)
	genres := repositories.NewGenreRepository(d)
	links := repositories.NewMovieGenreRepository(d)
	ctx := context.Background()

	m := seedMovie(t, movies, uuid.New().String())
	genreID, err := genres.Resolve(ctx, "Drama")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := links.Link(ctx, m.ID, genreID); err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := movies.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(*) FROM movie_genres`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade to remove association rows, found %d", count)
	}
}
