package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marketsquare/storefront-api/internal/core/response"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as the uniform envelope. Handlers normally respond with envelopes
// themselves; this catches what escapes them: router 404/405, bind failures,
// middleware rejections, and unexpected errors.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, response.Failure[*struct{}](msg, he.Code))
			return
		}

		// Unexpected error: log the real cause, return a generic message.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError,
			response.Failure[*struct{}]("Internal server error", http.StatusInternalServerError))
	}
}
