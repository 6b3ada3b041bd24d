package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/models"
)

// RequireRole allows the request through only when the authenticated user
// carries one of the given roles. ADMIN is always allowed.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles)+1)
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	allowed[models.RoleAdmin] = struct{}{}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := common.GetUserIDFromContext(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			role, ok := common.GetRoleFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Missing role")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
