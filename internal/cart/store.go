// Package cart stores the in-progress state of one shopper session in
// Redis: the showtime being shopped, the selected seat ids and the
// add-on quantities.  Each session has its own hash under its own key,
// so carts never interact — this is storage for a single shopper's
// caller-held state, not a cross-shopper seat lock.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldShowtime = "showtime_id"
	fieldSeats    = "seats"
	snackPrefix   = "snack:"
)

// Cart is the decoded shopper state.  A zero Cart means the session
// has nothing in progress.
type Cart struct {
	ShowtimeID uint64
	SeatIDs    []string
	Snacks     map[uint64]int // snack id -> quantity, always > 0
}

// Store reads and writes session carts.  Every write refreshes the
// cart TTL so an active shopper never loses state mid-checkout while
// abandoned carts expire on their own.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore constructs a Store.  The Redis client must be non-nil; the
// storefront cannot run without cart storage.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if rdb == nil {
		panic("nil redis client passed to cart.NewStore")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string {
	return "cart:" + sessionID
}

// Load fetches and decodes the cart of a session.  A missing key
// yields an empty cart, not an error.
func (s *Store) Load(ctx context.Context, sessionID string) (Cart, error) {
	fields, err := s.rdb.HGetAll(ctx, key(sessionID)).Result()
	if err != nil {
		return Cart{}, fmt.Errorf("cart load: %w", err)
	}

	c := Cart{Snacks: make(map[uint64]int)}
	for f, v := range fields {
		switch {
		case f == fieldShowtime:
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return Cart{}, fmt.Errorf("cart load: bad showtime id %q: %w", v, err)
			}
			c.ShowtimeID = id
		case f == fieldSeats:
			if err := json.Unmarshal([]byte(v), &c.SeatIDs); err != nil {
				return Cart{}, fmt.Errorf("cart load: bad seat list: %w", err)
			}
		case strings.HasPrefix(f, snackPrefix):
			id, err := strconv.ParseUint(strings.TrimPrefix(f, snackPrefix), 10, 64)
			if err != nil {
				return Cart{}, fmt.Errorf("cart load: bad snack field %q: %w", f, err)
			}
			qty, err := strconv.Atoi(v)
			if err != nil {
				return Cart{}, fmt.Errorf("cart load: bad snack quantity %q: %w", v, err)
			}
			if qty > 0 {
				c.Snacks[id] = qty
			}
		}
	}
	return c, nil
}

// SetShowtime records which showtime the session is shopping and
// drops any previously selected seats, since a seat selection is only
// meaningful against the layout it was made on.  Snack quantities
// survive the switch.
func (s *Store) SetShowtime(ctx context.Context, sessionID string, showtimeID uint64) error {
	k := key(sessionID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, k, fieldShowtime, strconv.FormatUint(showtimeID, 10))
	pipe.HDel(ctx, k, fieldSeats)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cart set showtime: %w", err)
	}
	return nil
}

// SaveSeats stores the current selected seat ids for the session.
func (s *Store) SaveSeats(ctx context.Context, sessionID string, seatIDs []string) error {
	if seatIDs == nil {
		seatIDs = []string{}
	}
	raw, err := json.Marshal(seatIDs)
	if err != nil {
		return fmt.Errorf("cart save seats: %w", err)
	}
	k := key(sessionID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, k, fieldSeats, string(raw))
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cart save seats: %w", err)
	}
	return nil
}

// SetSnackQty stores the quantity for one snack line.  A quantity of
// zero (or less) removes the line entirely — absent, not present with
// zero value.
func (s *Store) SetSnackQty(ctx context.Context, sessionID string, snackID uint64, qty int) error {
	k := key(sessionID)
	field := snackPrefix + strconv.FormatUint(snackID, 10)
	pipe := s.rdb.TxPipeline()
	if qty <= 0 {
		pipe.HDel(ctx, k, field)
	} else {
		pipe.HSet(ctx, k, field, strconv.Itoa(qty))
	}
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cart set snack: %w", err)
	}
	return nil
}

// Clear removes the whole cart, typically after checkout handoff.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}
