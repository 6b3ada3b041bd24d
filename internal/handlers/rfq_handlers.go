package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/services"
)

// RFQHandlers handles RFQ workflow HTTP requests
type RFQHandlers struct {
	rfqService services.RFQServiceInterface
}

func NewRFQHandlers(rfqService services.RFQServiceInterface) *RFQHandlers {
	return &RFQHandlers{rfqService: rfqService}
}

// CreateRFQRequest represents the RFQ creation payload
type CreateRFQRequest struct {
	RequisitionID    string     `json:"requisition_id" validate:"required"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	Currency         *string    `json:"currency"`
	DeliveryLocation *string    `json:"delivery_location"`
	DeliveryDate     *time.Time `json:"delivery_date"`
	ResponseDeadline *time.Time `json:"response_deadline"`
}

// CreateRFQ converts an approved requisition into a draft RFQ
func (h *RFQHandlers) CreateRFQ(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateRFQRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	requisitionID, err := common.ValidateUUID(req.RequisitionID, "requisition_id")
	if err != nil {
		return common.SendValidationError(c, "requisition_id", err.Error())
	}
	if err := common.ValidateOptionalString(req.Description, "description", 2000); err != nil {
		return common.SendValidationError(c, "description", err.Error())
	}
	if err := common.ValidateOptionalString(req.DeliveryLocation, "delivery_location", 255); err != nil {
		return common.SendValidationError(c, "delivery_location", err.Error())
	}

	rfq, err := h.rfqService.CreateRFQFromRequisition(ctx, &services.CreateRFQInput{
		RequisitionID:    requisitionID,
		Title:            req.Title,
		Description:      req.Description,
		Currency:         req.Currency,
		DeliveryLocation: req.DeliveryLocation,
		DeliveryDate:     req.DeliveryDate,
		ResponseDeadline: req.ResponseDeadline,
	}, actorID)
	if err != nil {
		return common.RespondError(c, err, common.CodeRFQCreationFailed)
	}
	return c.JSON(http.StatusCreated, rfq)
}

// SelectVendorsRequest carries optional selection criteria overrides
type SelectVendorsRequest struct {
	Countries    []string `json:"countries"`
	PortCodes    []string `json:"port_codes"`
	Capabilities []string `json:"capabilities"`
	MinRating    float64  `json:"min_rating"`
	MaxVendors   int      `json:"max_vendors"`
}

// SelectVendors scores the eligible vendor pool for an RFQ
func (h *RFQHandlers) SelectVendors(c echo.Context) error {
	ctx := c.Request().Context()
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var criteria *models.VendorSelectionCriteria
	var req SelectVendorsRequest
	if err := c.Bind(&req); err == nil && !requestIsEmpty(&req) {
		criteria = &models.VendorSelectionCriteria{
			Countries:    req.Countries,
			PortCodes:    req.PortCodes,
			Capabilities: req.Capabilities,
			MinRating:    req.MinRating,
			MaxVendors:   req.MaxVendors,
		}
	}

	result, err := h.rfqService.SelectVendorsForRFQ(ctx, rfqID, criteria)
	if err != nil {
		return common.RespondError(c, err, common.CodeVendorSelectionFailed)
	}
	return c.JSON(http.StatusOK, result)
}

func requestIsEmpty(req *SelectVendorsRequest) bool {
	return len(req.Countries) == 0 && len(req.PortCodes) == 0 && len(req.Capabilities) == 0 &&
		req.MinRating == 0 && req.MaxVendors == 0
}

// DistributeRFQRequest carries the vendor ids to distribute to
type DistributeRFQRequest struct {
	VendorIDs []string `json:"vendor_ids" validate:"required"`
}

// DistributeRFQ sends a draft RFQ to the selected vendors
func (h *RFQHandlers) DistributeRFQ(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req DistributeRFQRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	vendorIDs := make([]uuid.UUID, 0, len(req.VendorIDs))
	for _, raw := range req.VendorIDs {
		id, err := common.ValidateUUID(raw, "vendor_ids")
		if err != nil {
			return common.SendValidationError(c, "vendor_ids", err.Error())
		}
		vendorIDs = append(vendorIDs, id)
	}

	result, err := h.rfqService.DistributeRFQ(ctx, rfqID, vendorIDs, actorID)
	if err != nil {
		return common.RespondError(c, err, common.CodeRFQDistributionFailed)
	}
	return c.JSON(http.StatusOK, result)
}

// GetRFQ returns an RFQ with its nested associations
func (h *RFQHandlers) GetRFQ(c echo.Context) error {
	ctx := c.Request().Context()
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	detail, err := h.rfqService.GetRFQByID(ctx, rfqID)
	if err != nil {
		return common.RespondError(c, err, common.CodeRFQFetchFailed)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListRFQsRequest represents RFQ list query parameters
type ListRFQsRequest struct {
	Status   string `query:"status"`
	VesselID string `query:"vessel_id"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// ListRFQs lists RFQs with optional status/vessel/date filters
func (h *RFQHandlers) ListRFQs(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListRFQsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset, err := common.ValidatePaginationParams(req.Limit, req.Offset)
	if err != nil {
		return common.SendValidationError(c, "pagination", err.Error())
	}

	filter := &models.RFQSearchFilter{Limit: limit, Offset: offset}
	if req.Status != "" {
		if err := common.ValidateRFQStatus(req.Status); err != nil {
			return common.SendValidationError(c, "status", err.Error())
		}
		filter.Status = &req.Status
	}
	if req.VesselID != "" {
		vesselID, err := common.ValidateUUID(req.VesselID, "vessel_id")
		if err != nil {
			return common.SendValidationError(c, "vessel_id", err.Error())
		}
		filter.VesselID = &vesselID
	}
	if err := common.ValidateDateFormat(req.DateFrom, "date_from"); err != nil {
		return common.SendValidationError(c, "date_from", err.Error())
	}
	if err := common.ValidateDateFormat(req.DateTo, "date_to"); err != nil {
		return common.SendValidationError(c, "date_to", err.Error())
	}
	if req.DateFrom != "" {
		from, _ := time.Parse("2006-01-02", req.DateFrom)
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, _ := time.Parse("2006-01-02", req.DateTo)
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil {
		if err := common.ValidateDateRange(*filter.DateFrom, *filter.DateTo); err != nil {
			return common.SendValidationError(c, "date_range", err.Error())
		}
	}

	rfqs, err := h.rfqService.ListRFQs(ctx, filter)
	if err != nil {
		return common.RespondError(c, err, common.CodeRFQFetchFailed)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rfqs":   rfqs,
		"limit":  limit,
		"offset": offset,
	})
}

// UpdateRFQ applies whitelisted field updates
func (h *RFQHandlers) UpdateRFQ(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var update models.RFQUpdate
	if err := c.Bind(&update); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateOptionalString(update.Title, "title", 255); err != nil {
		return common.SendValidationError(c, "title", err.Error())
	}
	if err := common.ValidateOptionalString(update.Description, "description", 2000); err != nil {
		return common.SendValidationError(c, "description", err.Error())
	}

	rfq, err := h.rfqService.UpdateRFQ(ctx, rfqID, &update, actorID)
	if err != nil {
		return common.RespondError(c, err, common.CodeRFQUpdateFailed)
	}
	return c.JSON(http.StatusOK, rfq)
}

// CancelRFQRequest carries the cancellation reason
type CancelRFQRequest struct {
	Reason string `json:"reason"`
}

// CancelRFQ marks an RFQ cancelled
func (h *RFQHandlers) CancelRFQ(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req CancelRFQRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.rfqService.CancelRFQ(ctx, rfqID, req.Reason, actorID); err != nil {
		return common.RespondError(c, err, common.CodeRFQCancellationFailed)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": models.RFQStatusCancelled})
}
