package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// APIVersion represents API version information
type APIVersion struct {
	Version    string     `json:"version"`
	Status     string     `json:"status"` // "active", "deprecated", "sunset"
	SunsetDate *time.Time `json:"sunset_date,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// VersionMiddleware provides API versioning functionality
type VersionMiddleware struct {
	supportedVersions map[string]APIVersion
	defaultVersion    string
}

// NewVersionMiddleware creates a new version middleware instance
func NewVersionMiddleware() *VersionMiddleware {
	supportedVersions := map[string]APIVersion{
		"v1": {
			Version: "v1",
			Status:  "active",
			Message: "Current stable API version",
		},
	}

	return &VersionMiddleware{
		supportedVersions: supportedVersions,
		defaultVersion:    "v1",
	}
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)

			if ver, exists := vm.supportedVersions[version]; exists {
				if ver.Status == "deprecated" && ver.SunsetDate != nil {
					c.Response().Header().Set("X-API-Deprecated", "true")
					c.Response().Header().Set("X-API-Sunset", ver.SunsetDate.Format(time.RFC3339))
					c.Response().Header().Set("Warning", "299 flowmarine \"This API version is deprecated and will be removed on "+ver.SunsetDate.Format("2006-01-02")+"\"")
				}
				c.Response().Header().Set("X-API-Message", ver.Message)
			}

			return next(c)
		}
	}
}

// VersionRoute creates a version-specific route group
func (vm *VersionMiddleware) VersionRoute(e *echo.Echo, version string) *echo.Group {
	group := e.Group("/" + version)
	group.Use(vm.VersionHeader(version))
	return group
}
