package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aframi/cinema-storefront/internal/cart"
	"github.com/aframi/cinema-storefront/internal/model"
	"github.com/aframi/cinema-storefront/internal/monitoring"
	"github.com/aframi/cinema-storefront/internal/pricing"
	"github.com/aframi/cinema-storefront/internal/queue"
	"github.com/aframi/cinema-storefront/internal/repository"
	"github.com/aframi/cinema-storefront/internal/selection"
	order_publisher "github.com/aframi/cinema-storefront/internal/service"
)

type setSnackRequest struct {
	SnackID  uint64 `json:"snack_id"`
	Quantity int    `json:"quantity"`
}

// SetSnackQty handles PUT /v1/cart/snacks.  Quantity zero removes the
// line; negative quantities are rejected.  The snack must exist in the
// catalog before it enters the cart.
func (h *StorefrontHandler) SetSnackQty(c echo.Context) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	var req setSnackRequest
	if err := c.Bind(&req); err != nil || req.SnackID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "snack_id is required"})
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
	}

	ctx := c.Request().Context()
	if req.Quantity > 0 {
		if _, err := h.Snacks.GetByIDs(ctx, []uint64{req.SnackID}); err != nil {
			if errors.Is(err, repository.ErrSnackNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "snack not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	if err := h.Carts.SetSnackQty(ctx, sessionID, req.SnackID, req.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"snack_id": req.SnackID, "quantity": req.Quantity})
}

// pricedCart is the fully materialized and priced view of a session's
// cart, computed fresh from the catalog on every read.
type pricedCart struct {
	Cart     cart.Cart
	Showtime *model.Showtime
	Seats    []model.Seat
	AddOns   []model.AddOnLine
	Order    model.Order
}

// priceCart loads a session's cart and prices it against the current
// catalog.  Stale seat ids (sold since selection) and vanished snacks
// simply drop out of the view; the cart itself is left untouched.
func (h *StorefrontHandler) priceCart(ctx context.Context, sessionID string) (pricedCart, error) {
	crt, err := h.Carts.Load(ctx, sessionID)
	if err != nil {
		return pricedCart{}, err
	}
	view := pricedCart{Cart: crt}

	var table model.PriceTable
	if crt.ShowtimeID != 0 {
		st, _, layout, err := h.loadShowtimeLayout(ctx, crt.ShowtimeID)
		if err != nil {
			return pricedCart{}, err
		}
		sel := selection.FromIDs(crt.SeatIDs, &layout)
		view.Showtime = st
		view.Seats = sel.Seats(&layout)
		table = st.Prices
	}

	if len(crt.Snacks) > 0 {
		ids := make([]uint64, 0, len(crt.Snacks))
		for id := range crt.Snacks {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		items, err := h.Snacks.GetByIDs(ctx, ids)
		if err != nil && !errors.Is(err, repository.ErrSnackNotFound) {
			return pricedCart{}, err
		}
		for _, id := range ids {
			item, ok := items[id]
			if !ok {
				continue // removed from the catalog since it was added
			}
			view.AddOns = append(view.AddOns, model.AddOnLine{
				ID:        item.ID,
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  crt.Snacks[id],
			})
		}
	}

	order, err := pricing.ComputeOrderTotal(view.Seats, table, view.AddOns)
	if err != nil {
		return pricedCart{}, err
	}
	view.Order = order
	return view, nil
}

// GetOrder handles GET /v1/order and returns the live priced order for
// the session.  An empty cart yields an order with all-zero totals.
func (h *StorefrontHandler) GetOrder(c echo.Context) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	view, err := h.priceCart(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not price order"})
	}
	resp := echo.Map{"order": view.Order}
	if view.Showtime != nil {
		resp["showtime_id"] = view.Showtime.ID
	}
	return c.JSON(http.StatusOK, resp)
}

// Checkout handles POST /v1/order/checkout.  It prices the cart one
// final time, hands the order to the downstream checkout collaborator
// over the broker and clears the cart.  An order without seats is
// rejected; tickets anchor every purchase.
func (h *StorefrontHandler) Checkout(c echo.Context) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	ctx := c.Request().Context()

	view, err := h.priceCart(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not price order"})
	}
	if len(view.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no seats selected"})
	}

	event, err := h.buildOrderEvent(ctx, sessionID, view)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not assemble order"})
	}

	// Best effort: the broker being down must not strand the shopper.
	// The consumer side keeps its own durable queue once it reconnects.
	_ = order_publisher.PublishOrderPlaced(ctx, h.AMQPURL, event)

	if err := h.Carts.Clear(ctx, sessionID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}

	total, _ := view.Order.GrandTotal.Float64()
	monitoring.ObserveOrderPlaced(total)

	return c.JSON(http.StatusCreated, echo.Map{"order": view.Order})
}

// buildOrderEvent assembles the broker payload from the priced cart and
// the catalog context of its showtime.
func (h *StorefrontHandler) buildOrderEvent(ctx context.Context, sessionID string, view pricedCart) (queue.OrderPlacedEvent, error) {
	st := view.Showtime
	screen, err := h.Theaters.GetScreen(ctx, st.ScreenID)
	if err != nil {
		return queue.OrderPlacedEvent{}, err
	}
	theater, err := h.Theaters.GetByID(ctx, screen.TheaterID)
	if err != nil {
		return queue.OrderPlacedEvent{}, err
	}
	movie, err := h.Movies.GetByID(ctx, st.MovieID)
	if err != nil {
		return queue.OrderPlacedEvent{}, err
	}

	seats := make([]queue.OrderSeat, 0, len(view.Seats))
	for _, seat := range view.Seats {
		price, err := st.Prices.PriceFor(seat.Class)
		if err != nil {
			return queue.OrderPlacedEvent{}, err
		}
		seats = append(seats, queue.OrderSeat{ID: seat.ID, Class: seat.Class.String(), Price: price.String()})
	}
	addOns := make([]queue.OrderAddOn, 0, len(view.AddOns))
	for _, line := range view.AddOns {
		addOns = append(addOns, queue.OrderAddOn{
			ID:        line.ID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.String(),
			Quantity:  line.Quantity,
		})
	}

	return queue.OrderPlacedEvent{
		SessionID:       sessionID,
		ShowtimeID:      st.ID,
		MovieTitle:      movie.Title,
		TheaterName:     theater.Name,
		ScreenName:      screen.Name,
		StartsAt:        st.StartsAt.UTC().Format(time.RFC3339),
		Seats:           seats,
		AddOns:          addOns,
		TicketsSubtotal: view.Order.TicketsSubtotal.String(),
		AddOnsSubtotal:  view.Order.AddOnsSubtotal.String(),
		Subtotal:        view.Order.Subtotal.String(),
		ServiceFee:      view.Order.ServiceFee.String(),
		GrandTotal:      view.Order.GrandTotal.String(),
		PlacedAt:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}
