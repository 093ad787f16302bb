package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// ctxIdentity extracts the identity injected by the Auth middleware. Its
// presence proves the middleware ran; a handler on a protected route finding
// none is a wiring bug surfaced as 401, not a panic.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := c.Get("identity").(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims")
	}
	return id, nil
}

// ctxOptionalIdentity returns the identity when a valid token was presented,
// nil for anonymous callers.
func ctxOptionalIdentity(c echo.Context) *domain.Identity {
	if id, ok := c.Get("identity").(domain.Identity); ok {
		return &id
	}
	return nil
}

// ctxToken returns the raw bearer token stored by the Auth middleware.
func ctxToken(c echo.Context) string {
	token, _ := c.Get("auth_token").(string)
	return token
}

// respond serializes an envelope with its embedded status code.
func respond[T any](c echo.Context, env response.Envelope[T]) error {
	return c.JSON(env.StatusCode, env)
}

// invalidInput renders the 400 envelope used for bind and validation failures.
func invalidInput(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest,
		response.Failure[*struct{}]("Invalid input: "+err.Error(), http.StatusBadRequest))
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, returning def when the
// parameter is absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
