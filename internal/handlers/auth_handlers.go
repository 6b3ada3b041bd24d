package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/services"
)

// AuthHandlers handles login and token refresh
type AuthHandlers struct {
	authService services.AuthServiceInterface
}

func NewAuthHandlers(authService services.AuthServiceInterface) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges credentials for a token pair
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return common.SendValidationError(c, "email", err.Error())
	}
	if err := common.ValidateRequiredString(req.Password, "password"); err != nil {
		return common.SendValidationError(c, "password", err.Error())
	}

	tokens, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return common.RespondError(c, err, "LOGIN_FAILED")
	}
	return c.JSON(http.StatusOK, tokens)
}

// RefreshRequest carries the refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh rotates a refresh token into a new token pair
func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.RefreshToken, "refresh_token"); err != nil {
		return common.SendValidationError(c, "refresh_token", err.Error())
	}

	tokens, err := h.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return common.RespondError(c, err, "TOKEN_REFRESH_FAILED")
	}
	return c.JSON(http.StatusOK, tokens)
}
