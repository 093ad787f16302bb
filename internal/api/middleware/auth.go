package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/api/metrics"
	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
)

// Auth validates the bearer token and injects the caller's identity into the
// request context. Checks run in a fixed order, each with its own message so
// clients can tell the rejections apart: missing header, revoked token,
// expired token, invalid token, unknown user. All reject with 401.
func Auth(jwtSecret string, users ports.UserRepository, blacklist ports.TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, httpErr := bearerToken(c)
			if httpErr != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("missing").Inc()
				return httpErr
			}

			ctx := c.Request().Context()

			revoked, err := blacklist.IsBlacklisted(ctx, token)
			if err != nil {
				return err
			}
			if revoked {
				metrics.AuthRejectionsTotal.WithLabelValues("revoked").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Token has been revoked")
			}

			userID, err := parseUserID(token, jwtSecret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					metrics.AuthRejectionsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// The account row is authoritative for the role; a token minted
			// before a role change never grants the old capabilities.
			user, err := users.FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("unknown_user").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
				}
				return err
			}

			c.Set("identity", domain.Identity{UserID: user.ID, Role: user.Role})
			c.Set("auth_token", token)

			return next(c)
		}
	}
}

// OptionalAuth injects the identity when a valid token is presented but never
// rejects: anonymous callers pass through untouched. Used on public catalog
// routes where a token only widens visibility.
func OptionalAuth(jwtSecret string, users ports.UserRepository, blacklist ports.TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, httpErr := bearerToken(c)
			if httpErr != nil {
				return next(c)
			}

			ctx := c.Request().Context()
			if revoked, err := blacklist.IsBlacklisted(ctx, token); err != nil || revoked {
				return next(c)
			}

			userID, err := parseUserID(token, jwtSecret)
			if err != nil {
				return next(c)
			}
			user, err := users.FindByID(ctx, userID)
			if err != nil {
				return next(c)
			}

			c.Set("identity", domain.Identity{UserID: user.ID, Role: user.Role})
			c.Set("auth_token", token)

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, *echo.HTTPError) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
	}
	return parts[1], nil
}

// parseUserID verifies the token signature and expiry and extracts the id
// claim.
func parseUserID(token, jwtSecret string) (int64, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return 0, err
	}
	if !tkn.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	rawID, ok := claims["id"].(float64)
	if !ok || rawID < 1 {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return int64(rawID), nil
}
