package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/caching"
	"flowmarine/internal/common"
)

// RateLimit rejects callers that exceed limit requests per window on a
// route, keyed by client IP. Counting lives in Redis so the limit holds
// across instances. A Redis outage fails open.
func RateLimit(cacheSvc caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.RealIP())

			limited, err := cacheSvc.IsRateLimited(c.Request().Context(), key, limit, window)
			if err != nil {
				c.Logger().Warnf("Rate limit check failed for %s: %v", key, err)
				return next(c)
			}
			if limited {
				return c.JSON(http.StatusTooManyRequests,
					common.CreateErrorResponse("RATE_LIMITED", "Too many requests, try again later", nil))
			}

			return next(c)
		}
	}
}
