package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/services"
)

// RequisitionHandlers handles requisition HTTP requests
type RequisitionHandlers struct {
	requisitionService services.RequisitionServiceInterface
}

func NewRequisitionHandlers(requisitionService services.RequisitionServiceInterface) *RequisitionHandlers {
	return &RequisitionHandlers{requisitionService: requisitionService}
}

// CreateRequisitionRequest represents the requisition creation payload
type CreateRequisitionRequest struct {
	VesselID         string                       `json:"vessel_id" validate:"required"`
	Number           string                       `json:"number" validate:"required"`
	Currency         string                       `json:"currency"`
	DeliveryLocation string                       `json:"delivery_location"`
	DeliveryDate     *time.Time                   `json:"delivery_date"`
	Notes            *string                      `json:"notes"`
	Items            []CreateRequisitionItemInput `json:"items"`
}

type CreateRequisitionItemInput struct {
	Description   string   `json:"description" validate:"required"`
	ImpaCode      *string  `json:"impa_code"`
	Quantity      int      `json:"quantity" validate:"required"`
	Unit          string   `json:"unit"`
	EstimatedCost *float64 `json:"estimated_cost"`
}

// CreateRequisition creates a draft requisition with its line items
func (h *RequisitionHandlers) CreateRequisition(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateRequisitionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	vesselID, err := common.ValidateUUID(req.VesselID, "vessel_id")
	if err != nil {
		return common.SendValidationError(c, "vessel_id", err.Error())
	}
	if err := common.ValidateRequiredString(req.Number, "number"); err != nil {
		return common.SendValidationError(c, "number", err.Error())
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	// Crew are bound to one vessel and may only raise requisitions for it.
	if callerVessel, bound := common.GetVesselIDFromContext(ctx); bound && callerVessel != vesselID {
		return c.JSON(http.StatusForbidden,
			common.CreateErrorResponse("VESSEL_MISMATCH", "cannot create a requisition for another vessel", nil))
	}

	items := make([]services.CreateRequisitionItem, 0, len(req.Items))
	for _, in := range req.Items {
		if err := common.ValidatePositiveInteger(in.Quantity, "quantity", 1_000_000); err != nil {
			return common.SendValidationError(c, "quantity", err.Error())
		}
		items = append(items, services.CreateRequisitionItem{
			Description:   in.Description,
			ImpaCode:      in.ImpaCode,
			Quantity:      in.Quantity,
			Unit:          in.Unit,
			EstimatedCost: in.EstimatedCost,
		})
	}

	requisition, err := h.requisitionService.CreateRequisition(ctx, &services.CreateRequisitionInput{
		VesselID:         vesselID,
		Number:           req.Number,
		Currency:         req.Currency,
		DeliveryLocation: req.DeliveryLocation,
		DeliveryDate:     req.DeliveryDate,
		Notes:            req.Notes,
		Items:            items,
	}, actorID)
	if err != nil {
		return common.RespondError(c, err, "REQUISITION_CREATION_FAILED")
	}
	return c.JSON(http.StatusCreated, requisition)
}

// GetRequisition returns a requisition with its line items
func (h *RequisitionHandlers) GetRequisition(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	detail, err := h.requisitionService.GetRequisitionByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err, "REQUISITION_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, detail)
}

// ListRequisitionsRequest represents requisition list query parameters
type ListRequisitionsRequest struct {
	Status   string `query:"status"`
	VesselID string `query:"vessel_id"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// ListRequisitions lists requisitions with optional filters
func (h *RequisitionHandlers) ListRequisitions(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListRequisitionsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset, err := common.ValidatePaginationParams(req.Limit, req.Offset)
	if err != nil {
		return common.SendValidationError(c, "pagination", err.Error())
	}

	filter := &models.RequisitionSearchFilter{Limit: limit, Offset: offset}
	if req.Status != "" {
		filter.Status = &req.Status
	}
	if req.VesselID != "" {
		vesselID, err := common.ValidateUUID(req.VesselID, "vessel_id")
		if err != nil {
			return common.SendValidationError(c, "vessel_id", err.Error())
		}
		filter.VesselID = &vesselID
	}

	requisitions, err := h.requisitionService.ListRequisitions(ctx, filter)
	if err != nil {
		return common.RespondError(c, err, "REQUISITION_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"requisitions": requisitions,
		"limit":        limit,
		"offset":       offset,
	})
}

// SubmitRequisition moves a draft requisition to SUBMITTED
func (h *RequisitionHandlers) SubmitRequisition(c echo.Context) error {
	return h.statusTransition(c, h.requisitionService.SubmitRequisition, models.RequisitionStatusSubmitted)
}

// ApproveRequisition moves a submitted requisition to APPROVED
func (h *RequisitionHandlers) ApproveRequisition(c echo.Context) error {
	return h.statusTransition(c, h.requisitionService.ApproveRequisition, models.RequisitionStatusApproved)
}

// RejectRequisitionRequest carries the rejection reason
type RejectRequisitionRequest struct {
	Reason string `json:"reason"`
}

// RejectRequisition moves a submitted requisition to REJECTED
func (h *RequisitionHandlers) RejectRequisition(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req RejectRequisitionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.requisitionService.RejectRequisition(ctx, id, req.Reason, actorID); err != nil {
		return common.RespondError(c, err, "REQUISITION_UPDATE_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": models.RequisitionStatusRejected})
}

func (h *RequisitionHandlers) statusTransition(c echo.Context, fn func(ctx context.Context, id, actorID uuid.UUID) error, resulting string) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	if err := fn(ctx, id, actorID); err != nil {
		return common.RespondError(c, err, "REQUISITION_UPDATE_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": resulting})
}
