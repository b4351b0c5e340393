package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/story-platform/internal/api/middleware"
	"github.com/storyweave/story-platform/internal/core/domain"
)

// currentUser returns the principal resolved by the Authenticate middleware
// for the in-flight request. Handlers mounted behind RequireAuth can rely on
// a non-nil result; the 401 here is a fast-fail guard for miswired routes.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.Principal(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}
