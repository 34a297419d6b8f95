package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-ledger/internal/api/metrics"
	"github.com/spendwise/expense-ledger/internal/core/ports"
)

// HeaderRefreshedToken carries the replacement token issued on every
// successful session check. Clients must store it in place of the one they
// sent; the presented token's window is not extended.
const HeaderRefreshedToken = "X-Refreshed-Token"

// SessionGuard is the authentication-required combinator over protected
// routes: it runs the façade's Check on the bearer token and either injects
// the authenticated identity into the request context or short-circuits with
// 401, never invoking the wrapped handler.
func SessionGuard(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			sess, err := sessions.Check(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			metrics.TokenRefreshesTotal.Inc()
			c.Response().Header().Set(HeaderRefreshedToken, sess.Token)
			c.Set("user_id", sess.UserID)
			c.Set("token", sess.Token)

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
