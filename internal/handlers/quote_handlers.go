package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/services"
)

// QuoteHandlers handles quote submission and review HTTP requests
type QuoteHandlers struct {
	quoteService services.QuoteServiceInterface
}

func NewQuoteHandlers(quoteService services.QuoteServiceInterface) *QuoteHandlers {
	return &QuoteHandlers{quoteService: quoteService}
}

// SubmitQuoteRequest represents a vendor quote payload
type SubmitQuoteRequest struct {
	RFQID       string     `json:"rfq_id" validate:"required"`
	VendorID    string     `json:"vendor_id" validate:"required"`
	TotalAmount float64    `json:"total_amount" validate:"required"`
	Currency    string     `json:"currency"`
	ValidUntil  *time.Time `json:"valid_until"`
	Notes       *string    `json:"notes"`
}

// SubmitQuote records a vendor's quote against a distributed RFQ
func (h *QuoteHandlers) SubmitQuote(c echo.Context) error {
	ctx := c.Request().Context()

	var req SubmitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	rfqID, err := common.ValidateUUID(req.RFQID, "rfq_id")
	if err != nil {
		return common.SendValidationError(c, "rfq_id", err.Error())
	}
	vendorID, err := common.ValidateUUID(req.VendorID, "vendor_id")
	if err != nil {
		return common.SendValidationError(c, "vendor_id", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.TotalAmount, "total_amount", 1_000_000_000); err != nil {
		return common.SendValidationError(c, "total_amount", err.Error())
	}

	quote, err := h.quoteService.SubmitQuote(ctx, &services.SubmitQuoteInput{
		RFQID:       rfqID,
		VendorID:    vendorID,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
		ValidUntil:  req.ValidUntil,
		Notes:       req.Notes,
	})
	if err != nil {
		return common.RespondError(c, err, "QUOTE_SUBMISSION_FAILED")
	}
	return c.JSON(http.StatusCreated, quote)
}

// GetQuote returns a single quote
func (h *QuoteHandlers) GetQuote(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	quote, err := h.quoteService.GetQuoteByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err, "QUOTE_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, quote)
}

// ListQuotesByRFQ lists all quotes received on an RFQ
func (h *QuoteHandlers) ListQuotesByRFQ(c echo.Context) error {
	ctx := c.Request().Context()
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	quotes, err := h.quoteService.ListQuotesByRFQ(ctx, rfqID)
	if err != nil {
		return common.RespondError(c, err, "QUOTE_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"quotes": quotes})
}

// AcceptQuote marks a submitted quote accepted
func (h *QuoteHandlers) AcceptQuote(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.quoteService.AcceptQuote(ctx, id, actorID); err != nil {
		return common.RespondError(c, err, "QUOTE_UPDATE_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ACCEPTED"})
}

// RejectQuote marks a submitted quote rejected
func (h *QuoteHandlers) RejectQuote(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.quoteService.RejectQuote(ctx, id, actorID); err != nil {
		return common.RespondError(c, err, "QUOTE_UPDATE_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "REJECTED"})
}
