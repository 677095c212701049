package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aframi/cinema-storefront/internal/repository"
)

// BrowseHandler serves the unauthenticated catalog endpoints: movies,
// theaters and screens, showtimes and the snack menu.  These are pure
// reads; nothing here touches shopper state.
type BrowseHandler struct {
	Movies    *repository.MovieRepo
	Theaters  *repository.TheaterRepo
	Showtimes *repository.ShowtimeRepo
	Snacks    *repository.SnackRepo
}

// NewBrowseHandler constructs a BrowseHandler and panics if any
// dependency is nil.
func NewBrowseHandler(movies *repository.MovieRepo, theaters *repository.TheaterRepo, showtimes *repository.ShowtimeRepo, snacks *repository.SnackRepo) *BrowseHandler {
	if movies == nil || theaters == nil || showtimes == nil || snacks == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{Movies: movies, Theaters: theaters, Showtimes: showtimes, Snacks: snacks}
}

// ListMovies handles GET /v1/movies and returns the now-showing list.
func (h *BrowseHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.ListNowShowing(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(movies), "items": movies})
}

// GetMovie handles GET /v1/movies/:id.
func (h *BrowseHandler) GetMovie(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, movie)
}

// ListTheaters handles GET /v1/theaters.
func (h *BrowseHandler) ListTheaters(c echo.Context) error {
	theaters, err := h.Theaters.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(theaters), "items": theaters})
}

// ListScreens handles GET /v1/theaters/:id/screens.
func (h *BrowseHandler) ListScreens(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater id"})
	}
	if _, err := h.Theaters.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	screens, err := h.Theaters.ListScreens(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"theater_id": id, "count": len(screens), "items": screens})
}

// ListShowtimes handles GET /v1/movies/:id/showtimes and returns the
// upcoming showtimes of a movie with their per-class price tables.
func (h *BrowseHandler) ListShowtimes(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if _, err := h.Movies.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	showtimes, err := h.Showtimes.ListForMovie(c.Request().Context(), id, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movie_id": id, "count": len(showtimes), "items": showtimes})
}

// ListSnacks handles GET /v1/snacks and returns the add-on catalog.
func (h *BrowseHandler) ListSnacks(c echo.Context) error {
	snacks, err := h.Snacks.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(snacks), "items": snacks})
}
