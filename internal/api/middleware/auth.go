package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mailforge/template-service/internal/api/metrics"
	"github.com/mailforge/template-service/internal/core/domain"
	"github.com/mailforge/template-service/internal/core/ports"
)

// UserContextKey is where the authenticated *domain.User is stored on the
// echo context after the gate passes.
const UserContextKey = "auth_user"

// errUnauthorized is the single rejection for every gate failure. A missing
// header, a malformed header, a bad signature, an expired token, and a token
// whose user no longer exists must be indistinguishable to the client.
var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "invalid token")

// Auth verifies the bearer token and resolves it to a live user record.
func Auth(tokens ports.TokenService, users ports.AuthRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectedTotal.WithLabelValues("missing_header").Inc()
				return errUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectedTotal.WithLabelValues("malformed_header").Inc()
				return errUnauthorized
			}

			userID, ok := tokens.Verify(parts[1])
			if !ok {
				metrics.AuthRejectedTotal.WithLabelValues("invalid_token").Inc()
				return errUnauthorized
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthRejectedTotal.WithLabelValues("unknown_user").Inc()
					return errUnauthorized
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
