package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movie is a catalog entry currently on the storefront.
//
// Fields:
//
//	ID          – primary key identifier.
//	Title       – display title.
//	Synopsis    – short description shown on the movie page.
//	DurationMin – runtime in minutes.
//	Rating      – certification label (e.g. "PG-13").
//	PosterURL   – poster image location, presentation only.
type Movie struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Synopsis    string `json:"synopsis"`
	DurationMin int    `json:"duration_min"`
	Rating      string `json:"rating"`
	PosterURL   string `json:"poster_url"`
}

// Theater is a venue with one or more screens.
type Theater struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Screen describes one auditorium of a theater.  The geometry fields
// drive seat layout construction; ScreenType is informational (the
// per-class prices already account for it on each showtime).
//
// Fields:
//
//	ID          – primary key identifier.
//	TheaterID   – owning theater.
//	Name        – auditorium name ("Screen 3").
//	ScreenType  – e.g. "2D", "3D", "IMAX".
//	SeatRows    – number of seating rows, ≥ 1.
//	SeatsPerRow – seats per row, ≥ 1.
type Screen struct {
	ID          uint64 `json:"id"`
	TheaterID   uint64 `json:"theater_id"`
	Name        string `json:"name"`
	ScreenType  string `json:"screen_type"`
	SeatRows    int    `json:"seat_rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

// Showtime is one scheduled screening of a movie on a screen.  The
// per-class ticket prices are attached to the showtime itself so that
// the pricing core never reaches for ambient catalog state.
//
// Fields:
//
//	ID       – primary key identifier.
//	MovieID  – movie being screened.
//	ScreenID – screen hosting the showtime.
//	StartsAt – start of the screening (UTC).
//	Prices   – per-class ticket unit prices for this showtime.
type Showtime struct {
	ID       uint64     `json:"id"`
	MovieID  uint64     `json:"movie_id"`
	ScreenID uint64     `json:"screen_id"`
	StartsAt time.Time  `json:"starts_at"`
	Prices   PriceTable `json:"prices"`
}

// SnackItem is one entry of the add-on catalog.
type SnackItem struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
}
