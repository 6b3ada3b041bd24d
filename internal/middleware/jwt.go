package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
)

// JWTCustomClaims mirrors the claims issued at login
type JWTCustomClaims struct {
	UserID   string  `json:"user_id"`
	Role     string  `json:"role"`
	VesselID *string `json:"vessel_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTMiddleware validates the bearer token and stores the caller's user id,
// role and vessel binding in the request context.
func JWTMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(JWTCustomClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*JWTCustomClaims)
			if !ok {
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			if claims.VesselID != nil {
				if vesselID, err := uuid.Parse(*claims.VesselID); err == nil {
					ctx = context.WithValue(ctx, common.VesselIDKey, vesselID)
				}
			}
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}
