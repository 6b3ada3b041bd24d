package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	RoleKey     contextKey = "role"
	VesselIDKey contextKey = "vessel_id"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid UUID format", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateOptionalString trims and bounds optional string fields
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil {
		if len(*value) > maxLength {
			return fmt.Errorf("%s cannot exceed %d characters", fieldName, maxLength)
		}
		*value = strings.TrimSpace(*value)
	}
	return nil
}

// ValidatePositiveInteger validates positive integer values with upper bounds
func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return fmt.Errorf("%s cannot exceed %d", fieldName, maxValue)
	}
	return nil
}

// ValidatePositiveFloat validates positive float values with upper bounds
func ValidatePositiveFloat(value float64, fieldName string, maxValue float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return fmt.Errorf("%s cannot exceed %.2f", fieldName, maxValue)
	}
	return nil
}

// ValidateDateFormat validates YYYY-MM-DD date strings
func ValidateDateFormat(dateStr, fieldName string) error {
	if strings.TrimSpace(dateStr) == "" {
		return nil // Empty is allowed, handled elsewhere
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	if date.After(time.Now().AddDate(10, 0, 0)) {
		return fmt.Errorf("%s cannot be more than 10 years in the future", fieldName)
	}
	return nil
}

// ValidateDateRange ensures a sane from/to window
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("start date cannot be after end date")
	}
	if end.Sub(start) > 2*365*24*time.Hour {
		return fmt.Errorf("date range cannot exceed 2 years")
	}
	return nil
}

// ValidatePaginationParams bounds limit/offset to safe values
func ValidatePaginationParams(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		return 0, 0, fmt.Errorf("limit cannot exceed 500")
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset cannot be negative")
	}
	return limit, offset, nil
}

// ValidateRFQStatus validates RFQ status values
func ValidateRFQStatus(status string) error {
	validStatuses := map[string]bool{
		"DRAFT": true, "SENT": true, "CANCELLED": true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("rfq status must be one of: DRAFT, SENT, CANCELLED")
	}
	return nil
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeFloat64 safely handles float64 pointer operations
func SafeFloat64(f *float64) float64 {
	if f == nil {
		return 0.0
	}
	return *f
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext extracts the user role from the request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetVesselIDFromContext extracts the caller's vessel binding, if any
func GetVesselIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	vesselID, ok := ctx.Value(VesselIDKey).(uuid.UUID)
	return vesselID, ok
}
