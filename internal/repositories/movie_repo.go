package repositories

import (
	"context"
	"fmt"
	"strings"

	"MoviesCatalogAPI/internal/database"
	"MoviesCatalogAPI/internal/models"
)

// MovieRepository owns the movie table. All SQL is parameterized; identifiers
// are bound like any other value, never spliced into query text.
type MovieRepository struct {
	q database.Querier
}

func NewMovieRepository(q database.Querier) *MovieRepository {
	return &MovieRepository{q: q}
}

// updatableColumns is the closed set of attributes a partial update may
// touch, in the order the SET clause lists them. Adding a column to the
// movie table means adding it here; genre membership is deliberately absent.
var updatableColumns = []string{"title", "year", "director", "duration", "poster", "rate"}

const (
	sqlGetAllMovies = `
		SELECT id, title, year, director, poster, rate
		FROM   movie`

	sqlGetMoviesByGenre = `
		SELECT m.id, m.title, m.year, m.director, m.duration, m.poster, m.rate
		FROM   movie m
		JOIN   movie_genres mg ON m.id = mg.movie_id
		WHERE  mg.genre_id = $1
		ORDER  BY m.title`

	sqlGetMovieByID = `
		SELECT id, title, year, director, duration, poster, rate
		FROM   movie
		WHERE  id = $1`

	sqlInsertMovie = `
		INSERT INTO movie (id, title, year, director, duration, poster, rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	sqlMovieExists = `
		SELECT COUNT(*) FROM movie WHERE id = $1`

	sqlDeleteMovie = `
		DELETE FROM movie WHERE id = $1`
)

// GetAll returns the list projection of every movie. Duration and genres are
// intentionally omitted from this view.
func (r *MovieRepository) GetAll(ctx context.Context) ([]models.MovieSummary, error) {
	rows, err := r.q.Query(ctx, sqlGetAllMovies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []models.MovieSummary{}
	for rows.Next() {
		var m models.MovieSummary
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Director, &m.Poster, &m.Rate); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetAllByGenre returns every movie linked to the given genre, each row
// carrying the genre's id and name alongside the movie attributes.
func (r *MovieRepository) GetAllByGenre(ctx context.Context, genre models.Genre) ([]models.MovieSummary, error) {
	rows, err := r.q.Query(ctx, sqlGetMoviesByGenre, genre.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []models.MovieSummary{}
	for rows.Next() {
		m := models.MovieSummary{GenreID: genre.ID, GenreName: genre.Name}
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Director, &m.Duration, &m.Poster, &m.Rate); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetByID fetches a single movie's scalar attributes.
// Returns database.ErrNotFound when the id does not exist.
func (r *MovieRepository) GetByID(ctx context.Context, id string) (models.Movie, error) {
	var m models.Movie
	err := r.q.QueryRow(ctx, sqlGetMovieByID, id).
		Scan(&m.ID, &m.Title, &m.Year, &m.Director, &m.Duration, &m.Poster, &m.Rate)
	return m, err
}

// Insert writes a new movie row. The id must already be set by the caller;
// this repository never generates identifiers.
func (r *MovieRepository) Insert(ctx context.Context, m models.Movie) error {
	_, err := r.q.Exec(ctx, sqlInsertMovie,
		m.ID, m.Title, m.Year, m.Director, m.Duration, m.Poster, m.Rate)
	return err
}

// Update applies a partial update. Input keys are lower-cased and intersected
// against updatableColumns; unrecognized keys are dropped. With an empty
// intersection nothing is written, but the number of matched rows is still
// reported so callers can distinguish a no-op from a missing movie. Returns
// the affected-row count.
func (r *MovieRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	byColumn := make(map[string]any, len(fields))
	for key, value := range fields {
		byColumn[strings.ToLower(key)] = value
	}

	setClauses := make([]string, 0, len(updatableColumns))
	args := make([]any, 0, len(updatableColumns)+1)
	for _, col := range updatableColumns {
		value, ok := byColumn[col]
		if !ok {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, value)
	}

	if len(setClauses) == 0 {
		var matched int64
		if err := r.q.QueryRow(ctx, sqlMovieExists, id).Scan(&matched); err != nil {
			return 0, err
		}
		return matched, nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE movie SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))

	res, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a movie row. Deleting a nonexistent id succeeds silently;
// association rows vanish with the movie via the foreign key cascade.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, sqlDeleteMovie, id)
	return err
}
