// Package repository contains the MySQL data access layer for the
// storefront catalog: movies, theaters and their screens, showtimes
// with per-class prices, seats already sold for a showtime, and the
// snack (add-on) catalog.  The catalog is read-only from the
// storefront's point of view; orders are never written here.
//
// Sentinel errors defined across the package let handlers distinguish
// "not found" from real database failures without string matching.
package repository

import "errors"

// ErrMovieNotFound indicates that no movie row matched the lookup.
var ErrMovieNotFound = errors.New("movie not found")

// ErrTheaterNotFound indicates that no theater row matched the lookup.
var ErrTheaterNotFound = errors.New("theater not found")

// ErrScreenNotFound indicates that no screen row matched the lookup.
var ErrScreenNotFound = errors.New("screen not found")

// ErrShowtimeNotFound indicates that no showtime row matched the lookup.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrSnackNotFound indicates that a requested snack id does not exist
// in the add-on catalog.
var ErrSnackNotFound = errors.New("snack not found")
