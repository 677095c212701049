package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aframi/cinema-storefront/internal/model"
)

// SnackRepo manages read access to the add-on (snack) catalog.
type SnackRepo struct {
	db *sql.DB
}

// NewSnackRepo constructs a SnackRepo with the given DB handle.
func NewSnackRepo(db *sql.DB) *SnackRepo {
	return &SnackRepo{db: db}
}

func scanSnack(scan func(dest ...any) error) (model.SnackItem, error) {
	var (
		s     model.SnackItem
		price string
	)
	if err := scan(&s.ID, &s.Name, &price, &s.ImageURL); err != nil {
		return model.SnackItem{}, err
	}
	var err error
	if s.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return model.SnackItem{}, fmt.Errorf("snack %d: bad unit price %q: %w", s.ID, price, err)
	}
	return s, nil
}

// List returns the whole snack catalog in name order.
func (r *SnackRepo) List(ctx context.Context) ([]model.SnackItem, error) {
	const q = `SELECT id, name, unit_price, image_url FROM snacks ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SnackItem
	for rows.Next() {
		s, err := scanSnack(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByIDs resolves a set of snack ids to catalog entries.  Any id
// without a matching row yields ErrSnackNotFound: cart contents must
// always price against the live catalog, never against remembered
// prices.  The entries that did resolve are returned alongside the
// error so callers can choose to drop the vanished lines instead.
func (r *SnackRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.SnackItem, error) {
	out := make(map[uint64]model.SnackItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	// Build the IN clause with one placeholder per id.
	q := `SELECT id, name, unit_price, image_url FROM snacks WHERE id IN (`
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			q += ","
		}
		q += "?"
		args = append(args, id)
	}
	q += ")"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSnack(rows.Scan)
		if err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			return out, fmt.Errorf("snack %d: %w", id, ErrSnackNotFound)
		}
	}
	return out, nil
}
