package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aframi/cinema-storefront/internal/utils"
)

// SessionHandler mints anonymous shopper sessions.  There is no login:
// a browser calls POST /v1/session once and presents the returned
// token on every cart and order request.
type SessionHandler struct {
	Secret string // signing secret for session tokens
	TTLMin int    // session lifetime in minutes
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(secret string, ttlMin int) *SessionHandler {
	return &SessionHandler{Secret: secret, TTLMin: ttlMin}
}

// Create handles POST /v1/session.  It returns a fresh signed session
// token and its expiry.  Creating a session is idempotent from the
// storefront's point of view — an old cart simply expires with its
// session.
func (h *SessionHandler) Create(c echo.Context) error {
	tok, err := utils.NewSessionToken(h.Secret, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp.Format(time.RFC3339),
	})
}
