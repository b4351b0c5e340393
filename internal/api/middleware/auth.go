package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/story-platform/internal/api/metrics"
	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

// principalKey is the echo.Context key holding the resolved principal.
// The context is created per request, so the principal can never leak
// between concurrent requests.
const principalKey = "principal"

// Authenticate resolves the caller's identity from the Authorization header
// exactly once per request and stores it in the request context. A missing
// or invalid bearer token is the anonymous case, not an error: the request
// continues without a principal and protected routes reject it downstream.
func Authenticate(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header != "" {
				principal, err := auth.ResolveFromHeader(c.Request().Context(), header)
				if err == nil {
					c.Set(principalKey, principal)
					metrics.AuthResolutionsTotal.WithLabelValues("ok").Inc()
				} else {
					metrics.AuthResolutionsTotal.WithLabelValues("rejected").Inc()
				}
			}
			return next(c)
		}
	}
}

// RequireAuth rejects requests that did not resolve a principal. Must be
// registered after Authenticate.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Principal(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated user for the in-flight request, or nil
// for anonymous requests.
func Principal(c echo.Context) *domain.User {
	user, _ := c.Get(principalKey).(*domain.User)
	return user
}
