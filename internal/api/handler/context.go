package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the authenticated user id injected by the SessionGuard
// middleware. Its presence proves the guard ran; a missing id means the route
// was wired without the guard, so fail closed with 401.
func ctxUserID(c echo.Context) (int64, error) {
	id, _ := c.Get("user_id").(int64)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// ctxToken returns the refreshed session token set by the guard.
func ctxToken(c echo.Context) string {
	token, _ := c.Get("token").(string)
	return token
}
