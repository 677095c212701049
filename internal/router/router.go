package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aframi/cinema-storefront/internal/handler"
	"github.com/aframi/cinema-storefront/internal/middleware"
)

// RegisterRoutes registers routes that do not require a session on the
// provided Echo instance: the health check and the metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring systems to verify that the
	// service is up.
	e.GET("/healthz", handler.Health)
	// Prometheus scrape endpoint.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterSession registers the session-minting endpoint.  It lives
// outside the protected group since a new shopper has no token yet.
func RegisterSession(e *echo.Echo, s *handler.SessionHandler) {
	e.POST("/v1/session", s.Create)
}

// RegisterPublic registers the unauthenticated catalog browse endpoints.
// These routes apply no session middleware; guests can explore the
// catalog before starting a cart.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler) {
	// Movies currently showing, and detail by id.
	e.GET("/v1/movies", b.ListMovies)
	e.GET("/v1/movies/:id", b.GetMovie)
	// Upcoming showtimes of a movie with their price tables.
	e.GET("/v1/movies/:id/showtimes", b.ListShowtimes)
	// Theaters and the screens of a theater.
	e.GET("/v1/theaters", b.ListTheaters)
	e.GET("/v1/theaters/:id/screens", b.ListScreens)
	// Snack catalog for the add-on picker.
	e.GET("/v1/snacks", b.ListSnacks)
}

// RegisterStorefront registers the session-scoped shopping endpoints.
// Every route in this group runs the session middleware first, so the
// handlers can rely on a session id being present on the context.  The
// optional extra middleware (rate limiting) is applied after session
// auth so limits can key on the session id.
func RegisterStorefront(e *echo.Echo, h *handler.StorefrontHandler, sessionSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.SessionAuth(sessionSecret))
	for _, m := range extra {
		g.Use(m)
	}

	// Seat map of a showtime with the session's selection overlaid.
	g.GET("/showtimes/:id/seatmap", h.GetSeatMap)
	// Toggle one seat in or out of the selection.
	g.POST("/showtimes/:id/seats/toggle", h.ToggleSeat)
	// Set or remove one snack line on the cart.
	g.PUT("/cart/snacks", h.SetSnackQty)
	// Live priced order for the session.
	g.GET("/order", h.GetOrder)
	// Confirm the order and hand it to the checkout collaborator.
	g.POST("/order/checkout", h.Checkout)
}
