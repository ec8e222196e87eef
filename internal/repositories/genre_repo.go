package repositories

import (
	"context"

	"MoviesCatalogAPI/internal/database"
	"MoviesCatalogAPI/internal/models"
)

// GenreRepository owns the genre table. Names are unique case-insensitively;
// the table keeps whatever casing the first creator supplied. Genres are
// created lazily on first use and never deleted here, so orphan genres may
// persist — a documented limitation.
type GenreRepository struct {
	q database.Querier
}

// NewGenreRepository returns a repository backed by q, which can be the pool
// or a transaction.
func NewGenreRepository(q database.Querier) *GenreRepository {
	return &GenreRepository{q: q}
}

const (
	sqlLookupGenre = `
		SELECT id, name
		FROM   genre
		WHERE  LOWER(name) = LOWER($1)`

	// ON CONFLICT DO NOTHING keeps a lost insert race from erroring out (and,
	// inside a transaction, from aborting it); the conflicting insert simply
	// returns no row and the caller re-reads the winner's.
	sqlInsertGenre = `
		INSERT INTO genre (name)
		VALUES ($1)
		ON CONFLICT DO NOTHING
		RETURNING id`
)

// Lookup fetches a genre by name, matching case-insensitively.
// Returns database.ErrNotFound when no such genre exists; it never creates.
func (r *GenreRepository) Lookup(ctx context.Context, name string) (models.Genre, error) {
	var g models.Genre
	err := r.q.QueryRow(ctx, sqlLookupGenre, name).Scan(&g.ID, &g.Name)
	return g, err
}

// Resolve maps a genre name to its id, inserting the genre on first use with
// the caller's casing preserved. Two concurrent resolves of the same new name
// race on the unique index; the loser re-reads the winner's row, so the same
// case-insensitive name never yields two rows.
func (r *GenreRepository) Resolve(ctx context.Context, name string) (int64, error) {
	g, err := r.Lookup(ctx, name)
	if err == nil {
		return g.ID, nil
	}
	if !database.IsNotFound(err) {
		return 0, err
	}

	var id int64
	err = r.q.QueryRow(ctx, sqlInsertGenre, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !database.IsNotFound(err) {
		return 0, err
	}

	// Lost the insert race; the row exists now.
	g, err = r.Lookup(ctx, name)
	if err != nil {
		return 0, err
	}
	return g.ID, nil
}
