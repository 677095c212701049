package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aframi/cinema-storefront/internal/model"
)

// ShowtimeRepo manages read access to showtimes, their per-class price
// tables and the seats already sold for each showtime.  Sold seats are
// input to layout construction; this service never writes them.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// scanShowtime reads one showtime row including its price columns.
// DECIMAL columns arrive as strings from the MySQL driver and are
// parsed into exact decimals; a malformed value is a data bug and
// surfaces as an error.
func scanShowtime(scan func(dest ...any) error) (*model.Showtime, error) {
	var (
		st             model.Showtime
		std, prem, vip string
	)
	if err := scan(&st.ID, &st.MovieID, &st.ScreenID, &st.StartsAt, &std, &prem, &vip); err != nil {
		return nil, err
	}
	var err error
	if st.Prices.Standard, err = decimal.NewFromString(std); err != nil {
		return nil, fmt.Errorf("showtime %d: bad standard price %q: %w", st.ID, std, err)
	}
	if st.Prices.Premium, err = decimal.NewFromString(prem); err != nil {
		return nil, fmt.Errorf("showtime %d: bad premium price %q: %w", st.ID, prem, err)
	}
	if st.Prices.Vip, err = decimal.NewFromString(vip); err != nil {
		return nil, fmt.Errorf("showtime %d: bad vip price %q: %w", st.ID, vip, err)
	}
	if err := st.Prices.Validate(); err != nil {
		return nil, fmt.Errorf("showtime %d: %w", st.ID, err)
	}
	return &st, nil
}

// GetByID retrieves one showtime with its price table.  It returns
// ErrShowtimeNotFound when no row matches.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, movie_id, screen_id, starts_at, price_standard, price_premium, price_vip
	           FROM showtimes WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	st, err := scanShowtime(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrShowtimeNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ListForMovie returns the upcoming showtimes of a movie, earliest
// first.  Past showtimes are filtered against the provided now so the
// query stays deterministic under test.
func (r *ShowtimeRepo) ListForMovie(ctx context.Context, movieID uint64, now time.Time) ([]model.Showtime, error) {
	const q = `SELECT id, movie_id, screen_id, starts_at, price_standard, price_premium, price_vip
	           FROM showtimes WHERE movie_id = ? AND starts_at >= ? ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, movieID, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Showtime
	for rows.Next() {
		st, err := scanShowtime(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

// SoldSeatIDs returns the set of seat ids already sold for a showtime,
// in the shape BuildLayout consumes.
func (r *ShowtimeRepo) SoldSeatIDs(ctx context.Context, showtimeID uint64) (map[string]struct{}, error) {
	const q = `SELECT seat_id FROM sold_seats WHERE showtime_id = ?`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}
