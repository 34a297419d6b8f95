package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, domain.ErrUserExists.Error()
	case errors.Is(err, domain.ErrDuplicateCategory):
		return http.StatusConflict, domain.ErrDuplicateCategory.Error()
	case errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusConflict, domain.ErrCategoryInUse.Error()
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, domain.ErrCategoryNotFound.Error()
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, domain.ErrInvalidDate.Error()
	case errors.Is(err, domain.ErrNotFoundOrForbidden):
		return http.StatusNotFound, domain.ErrNotFoundOrForbidden.Error()
	case errors.Is(err, domain.ErrStorage):
		// Transient failure that survived the retry budget.
		log.Error().Err(err).Str("path", c.Path()).Msg("storage exhausted retries")
		return http.StatusServiceUnavailable, domain.ErrStorage.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
