package repositories

import (
	"context"

	"MoviesCatalogAPI/internal/database"
)

// MovieGenreRepository owns the movie_genres junction table. It is the only
// component that writes association rows; the movie and genre tables belong
// to their own repositories.
type MovieGenreRepository struct {
	q database.Querier
}

func NewMovieGenreRepository(q database.Querier) *MovieGenreRepository {
	return &MovieGenreRepository{q: q}
}

const (
	// The primary key rejects duplicate pairs; ON CONFLICT DO NOTHING turns
	// the rejection into a no-op instead of an error, so relinking is safe
	// even mid-transaction. Foreign key violations still surface.
	sqlInsertLink = `
		INSERT INTO movie_genres (movie_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	sqlGenresForMovie = `
		SELECT g.name
		FROM   genre g
		JOIN   movie_genres mg ON g.id = mg.genre_id
		WHERE  mg.movie_id = $1
		ORDER  BY g.name`
)

// Link associates a movie with a genre. A foreign key violation surfaces when
// either side does not exist. Linking an already-linked pair is a no-op, so
// duplicate (movie, genre) pairs cannot happen.
func (r *MovieGenreRepository) Link(ctx context.Context, movieID string, genreID int64) error {
	_, err := r.q.Exec(ctx, sqlInsertLink, movieID, genreID)
	return err
}

// LinkAll links the movie to each genre id in order, stopping at the first
// failure. Callers that need all-or-nothing run it inside a transaction.
func (r *MovieGenreRepository) LinkAll(ctx context.Context, movieID string, genreIDs []int64) error {
	for _, id := range genreIDs {
		if err := r.Link(ctx, movieID, id); err != nil {
			return err
		}
	}
	return nil
}

// GenresFor returns the movie's genre names ordered alphabetically. A movie
// with no genres yields an empty, non-nil slice.
func (r *MovieGenreRepository) GenresFor(ctx context.Context, movieID string) ([]string, error) {
	rows, err := r.q.Query(ctx, sqlGenresForMovie, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		genres = append(genres, name)
	}
	return genres, rows.Err()
}
