package handler // handler contains the HTTP handlers of the storefront

import (
	"errors"  // sentinel for missing session ids
	"strconv" // parsing path parameters

	"github.com/labstack/echo/v4"
)

// getSessionID extracts the shopper's session id injected by the
// session middleware.  Handlers behind the middleware treat a missing
// id as an unauthorized request.
func getSessionID(c echo.Context) (string, error) {
	if v, ok := c.Get("session_id").(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("no session_id in context")
}

// parseIDParam parses a numeric path parameter, rejecting zero.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
