package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mailforge/template-service/internal/api/middleware"
	"github.com/mailforge/template-service/internal/core/domain"
)

// currentUser extracts the caller the Auth middleware resolved. A missing or
// mistyped value means the route was wired without the gate; reject rather
// than proceed without an owner filter.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return user, nil
}
