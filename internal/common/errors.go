package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AppError is a domain error carrying a stable machine-readable code and
// the HTTP status it should render as.
type AppError struct {
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a domain error
func NewAppError(message string, status int, code string) *AppError {
	return &AppError{Message: message, Status: status, Code: code}
}

// Error codes used across the RFQ workflow
const (
	CodeRequisitionNotFound    = "REQUISITION_NOT_FOUND"
	CodeRequisitionNotApproved = "REQUISITION_NOT_APPROVED"
	CodeRFQAlreadyExists       = "RFQ_ALREADY_EXISTS"
	CodeRFQNotFound            = "RFQ_NOT_FOUND"
	CodeInvalidRFQStatus       = "INVALID_RFQ_STATUS"
	CodeInvalidVendors         = "INVALID_VENDORS"
	CodeRFQAlreadyCancelled    = "RFQ_ALREADY_CANCELLED"
	CodeVendorNotFound         = "VENDOR_NOT_FOUND"
	CodeQuoteNotFound          = "QUOTE_NOT_FOUND"
	CodeRFQDeadlinePassed      = "RFQ_DEADLINE_PASSED"

	CodeRFQCreationFailed     = "RFQ_CREATION_FAILED"
	CodeVendorSelectionFailed = "VENDOR_SELECTION_FAILED"
	CodeRFQDistributionFailed = "RFQ_DISTRIBUTION_FAILED"
	CodeRFQFetchFailed        = "RFQ_FETCH_FAILED"
	CodeRFQUpdateFailed       = "RFQ_UPDATE_FAILED"
	CodeRFQCancellationFailed = "RFQ_CANCELLATION_FAILED"
)

// RespondError renders a domain AppError with its own status and code, and
// anything else as the operation's stable 500 fallback code. The original
// error is logged server-side so diagnostic detail is not lost.
func RespondError(c echo.Context, err error, fallbackCode string) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, CreateErrorResponse(appErr.Code, appErr.Message, nil))
	}
	log.Printf("ERROR %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse(fallbackCode, "Internal server error", nil))
}
