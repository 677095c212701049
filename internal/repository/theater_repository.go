package repository

import (
	"context"
	"database/sql"

	"github.com/aframi/cinema-storefront/internal/model"
)

// TheaterRepo manages read access to theaters and their screens.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo {
	return &TheaterRepo{db: db}
}

// List returns all theaters ordered by city then name.
func (r *TheaterRepo) List(ctx context.Context) ([]model.Theater, error) {
	const q = `SELECT id, name, city FROM theaters ORDER BY city, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Theater
	for rows.Next() {
		var t model.Theater
		if err := rows.Scan(&t.ID, &t.Name, &t.City); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID retrieves one theater, returning ErrTheaterNotFound when no
// row matches.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	const q = `SELECT id, name, city FROM theaters WHERE id = ?`
	var t model.Theater
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.City)
	if err == sql.ErrNoRows {
		return nil, ErrTheaterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListScreens returns the screens of a theater in name order.  The
// geometry columns feed seat layout construction directly.
func (r *TheaterRepo) ListScreens(ctx context.Context, theaterID uint64) ([]model.Screen, error) {
	const q = `SELECT id, theater_id, name, screen_type, seat_rows, seats_per_row
	           FROM screens WHERE theater_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Screen
	for rows.Next() {
		var s model.Screen
		if err := rows.Scan(&s.ID, &s.TheaterID, &s.Name, &s.ScreenType, &s.SeatRows, &s.SeatsPerRow); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetScreen retrieves one screen by id, returning ErrScreenNotFound
// when no row matches.
func (r *TheaterRepo) GetScreen(ctx context.Context, id uint64) (*model.Screen, error) {
	const q = `SELECT id, theater_id, name, screen_type, seat_rows, seats_per_row
	           FROM screens WHERE id = ?`
	var s model.Screen
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.TheaterID, &s.Name, &s.ScreenType, &s.SeatRows, &s.SeatsPerRow)
	if err == sql.ErrNoRows {
		return nil, ErrScreenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
