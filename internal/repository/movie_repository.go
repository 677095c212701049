package repository

import (
	"context"      // context bounds query lifetimes
	"database/sql" // sql provides the DB abstraction

	"github.com/aframi/cinema-storefront/internal/model"
)

// MovieRepo manages read access to the movies catalog.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// ListNowShowing returns the movies currently on sale, ordered by
// title so the listing is stable between requests.
func (r *MovieRepo) ListNowShowing(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, title, synopsis, duration_min, rating, poster_url
	           FROM movies WHERE now_showing = 1 ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Synopsis, &m.DurationMin, &m.Rating, &m.PosterURL); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID retrieves one movie.  It returns ErrMovieNotFound when no
// row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, title, synopsis, duration_min, rating, poster_url
	           FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Synopsis, &m.DurationMin, &m.Rating, &m.PosterURL)
	if err == sql.ErrNoRows {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
