package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"MoviesCatalogAPI/internal/database"
	"MoviesCatalogAPI/internal/models"
	"MoviesCatalogAPI/internal/repositories"
)

// MovieService orchestrates the repositories behind the five public catalog
// operations. It owns the only *database.DB reference above the composition
// root so multi-step writes can run transactionally.
type MovieService struct {
	db     *database.DB
	movies *repositories.MovieRepository
	genres *repositories.GenreRepository
	links  *repositories.MovieGenreRepository
	logger *slog.Logger
}

func NewMovieService(db *database.DB, logger *slog.Logger) *MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieService{
		db:     db,
		movies: repositories.NewMovieRepository(db),
		genres: repositories.NewGenreRepository(db),
		links:  repositories.NewMovieGenreRepository(db),
		logger: logger,
	}
}

// List returns the catalog's list view, optionally filtered by genre name.
// The filter matches case-insensitively and never creates a genre; an unknown
// genre name yields an empty list, not an error.
func (s *MovieService) List(ctx context.Context, genre string) ([]models.MovieSummary, error) {
	if genre == "" {
		return s.movies.GetAll(ctx)
	}

	g, err := s.genres.Lookup(ctx, genre)
	if database.IsNotFound(err) {
		return []models.MovieSummary{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.movies.GetAllByGenre(ctx, g)
}

// Get returns the full movie record with its genre name list.
// Returns database.ErrNotFound when the id does not exist.
func (s *MovieService) Get(ctx context.Context, id string) (models.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return models.Movie{}, err
	}
	m.Genres, err = s.links.GenresFor(ctx, id)
	if err != nil {
		return models.Movie{}, err
	}
	return m, nil
}

// Create inserts a new movie with a freshly generated identifier, resolves
// each input genre (creating missing ones) and links them, all inside one
// transaction: a failed genre link rolls the movie row back instead of
// leaving it half-created. Repeated genre names in the input collapse to a
// single association. The committed record is re-fetched and returned.
func (s *MovieService) Create(ctx context.Context, input models.CreateMovieInput) (models.Movie, error) {
	id := uuid.New().String()

	movie := models.Movie{
		ID:       id,
		Title:    input.Title,
		Year:     input.Year,
		Director: input.Director,
		Duration: input.Duration,
		Poster:   input.Poster,
		Rate:     input.RateOrDefault(),
	}

	err := s.db.ExecTx(ctx, func(tx *database.Tx) error {
		movies := repositories.NewMovieRepository(tx)
		genres := repositories.NewGenreRepository(tx)
		links := repositories.NewMovieGenreRepository(tx)

		if err := movies.Insert(ctx, movie); err != nil {
			return fmt.Errorf("creating movie: %w", err)
		}

		seen := make(map[int64]bool, len(input.Genre))
		genreIDs := make([]int64, 0, len(input.Genre))
		for _, name := range input.Genre {
			genreID, err := genres.Resolve(ctx, name)
			if err != nil {
				return fmt.Errorf("resolving genre %q: %w", name, err)
			}
			if seen[genreID] {
				continue
			}
			seen[genreID] = true
			genreIDs = append(genreIDs, genreID)
		}

		if err := links.LinkAll(ctx, id, genreIDs); err != nil {
			return fmt.Errorf("linking genres: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Movie{}, err
	}

	created, err := s.Get(ctx, id)
	if database.IsNotFound(err) {
		// The committed row should always be readable; a miss here points at
		// a consistency bug upstream.
		s.logger.ErrorContext(ctx, "created movie missing on re-fetch", "movie_id", id)
		return models.Movie{}, err
	}
	return created, err
}

// Update applies a partial update restricted to the movie's updatable scalar
// attributes and returns the refreshed record.
// Returns database.ErrNotFound when the id does not exist; a payload with no
// recognized attribute names leaves the record untouched.
func (s *MovieService) Update(ctx context.Context, id string, fields map[string]any) (models.Movie, error) {
	matched, err := s.movies.Update(ctx, id, fields)
	if err != nil {
		return models.Movie{}, fmt.Errorf("updating movie: %w", err)
	}
	if matched == 0 {
		return models.Movie{}, database.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a movie and, through the storage cascade, its genre
// associations. Deleting a nonexistent id is a silent no-op.
func (s *MovieService) Delete(ctx context.Context, id string) error {
	return s.movies.Delete(ctx, id)
}
