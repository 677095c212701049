package middleware // declare the middleware package; contains reusable HTTP middleware

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for middleware

	"github.com/aframi/cinema-storefront/internal/utils"
)

// SessionAuth returns an Echo middleware that validates the Bearer
// session token issued by POST /v1/session and injects the session id
// into the request context.  Handlers behind it read the id via
// c.Get("session_id") to address the shopper's cart.  The storefront
// has no user accounts, so this is the only identity layer.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer <jwt>"; anything else means the
			// client never asked for a session.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sid, err := utils.ParseSessionID(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session token"})
			}

			c.Set("session_id", sid)
			return next(c)
		}
	}
}
