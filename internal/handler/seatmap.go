package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aframi/cinema-storefront/internal/cart"
	"github.com/aframi/cinema-storefront/internal/model"
	"github.com/aframi/cinema-storefront/internal/monitoring"
	"github.com/aframi/cinema-storefront/internal/repository"
	"github.com/aframi/cinema-storefront/internal/seatmap"
	"github.com/aframi/cinema-storefront/internal/selection"
)

// StorefrontHandler serves the session-scoped shopping endpoints: seat
// maps, seat toggling, snack quantities and the priced order.  All of
// its routes run behind the session middleware, so a session id is
// always present on the echo context.
type StorefrontHandler struct {
	Movies    *repository.MovieRepo
	Theaters  *repository.TheaterRepo
	Showtimes *repository.ShowtimeRepo
	Snacks    *repository.SnackRepo
	Carts     *cart.Store
	AMQPURL   string
}

// NewStorefrontHandler constructs a StorefrontHandler and panics if a
// required dependency is nil.  AMQPURL may be empty; checkout then
// skips the broker handoff.
func NewStorefrontHandler(movies *repository.MovieRepo, theaters *repository.TheaterRepo, showtimes *repository.ShowtimeRepo, snacks *repository.SnackRepo, carts *cart.Store, amqpURL string) *StorefrontHandler {
	if movies == nil || theaters == nil || showtimes == nil || snacks == nil || carts == nil {
		panic("nil dependency passed to NewStorefrontHandler")
	}
	return &StorefrontHandler{
		Movies:    movies,
		Theaters:  theaters,
		Showtimes: showtimes,
		Snacks:    snacks,
		Carts:     carts,
		AMQPURL:   amqpURL,
	}
}

// loadShowtimeLayout fetches a showtime, its screen and builds the seat
// layout with sold seats already marked booked.  Shared by the seat map
// and toggle endpoints.
func (h *StorefrontHandler) loadShowtimeLayout(ctx context.Context, showtimeID uint64) (*model.Showtime, *model.Screen, model.ScreenLayout, error) {
	st, err := h.Showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, nil, model.ScreenLayout{}, err
	}
	screen, err := h.Theaters.GetScreen(ctx, st.ScreenID)
	if err != nil {
		return nil, nil, model.ScreenLayout{}, err
	}
	sold, err := h.Showtimes.SoldSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, nil, model.ScreenLayout{}, err
	}
	layout, err := seatmap.BuildLayout(screen.SeatRows, screen.SeatsPerRow, sold)
	if err != nil {
		return nil, nil, model.ScreenLayout{}, err
	}
	return st, screen, layout, nil
}

// GetSeatMap handles GET /v1/showtimes/:id/seatmap.  The returned grid
// reflects sold seats as booked and, when the session is already
// shopping this showtime, overlays its current selection.
func (h *StorefrontHandler) GetSeatMap(c echo.Context) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	showtimeID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}

	ctx := c.Request().Context()
	st, screen, layout, err := h.loadShowtimeLayout(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) || errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build seat map"})
	}

	crt, err := h.Carts.Load(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}
	if crt.ShowtimeID == showtimeID {
		sel := selection.FromIDs(crt.SeatIDs, &layout)
		for _, id := range sel.IDs(&layout) {
			if pos, ok := layout.Position(id); ok {
				layout.Seats[pos].Status = model.StatusSelected
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"showtime_id":   st.ID,
		"screen_id":     screen.ID,
		"rows":          layout.ByRow(),
		"row_count":     layout.RowCount,
		"seats_per_row": layout.SeatsPerRow,
		"prices":        st.Prices,
	})
}

type toggleSeatRequest struct {
	SeatID string `json:"seat_id"`
}

// ToggleSeat handles POST /v1/showtimes/:id/seats/toggle.  Toggling a
// seat on a showtime other than the one in the cart restarts the
// selection for the new showtime; snack lines survive the switch.  A
// rejected toggle (booked seat, unknown id, selection already full) is
// a 200 with accepted=false, not an error: the seat map the shopper
// acted on may simply be stale.
func (h *StorefrontHandler) ToggleSeat(c echo.Context) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	showtimeID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	var req toggleSeatRequest
	if err := c.Bind(&req); err != nil || req.SeatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}

	ctx := c.Request().Context()
	_, _, layout, err := h.loadShowtimeLayout(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) || errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build seat map"})
	}

	crt, err := h.Carts.Load(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}
	stored := crt.SeatIDs
	if crt.ShowtimeID != showtimeID {
		if err := h.Carts.SetShowtime(ctx, sessionID, showtimeID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
		}
		stored = nil
	}

	sel := selection.FromIDs(stored, &layout)
	accepted := sel.Toggle(req.SeatID, &layout)
	switch {
	case !accepted:
		monitoring.ObserveSeatToggle(monitoring.ToggleRejected)
	case sel.Contains(req.SeatID):
		monitoring.ObserveSeatToggle(monitoring.ToggleSelected)
	default:
		monitoring.ObserveSeatToggle(monitoring.ToggleDeselected)
	}

	if accepted {
		if err := h.Carts.SaveSeats(ctx, sessionID, sel.IDs(&layout)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accepted": accepted,
		"selected": sel.Seats(&layout),
		"count":    sel.Len(),
	})
}
