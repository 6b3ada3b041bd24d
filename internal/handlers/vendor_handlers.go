package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/services"
)

// VendorHandlers handles vendor management HTTP requests
type VendorHandlers struct {
	vendorService services.VendorServiceInterface
}

func NewVendorHandlers(vendorService services.VendorServiceInterface) *VendorHandlers {
	return &VendorHandlers{vendorService: vendorService}
}

// VendorRequest represents the vendor create/update payload
type VendorRequest struct {
	Name             string   `json:"name" validate:"required"`
	ContactEmail     *string  `json:"contact_email"`
	Email            *string  `json:"email"`
	Phone            *string  `json:"phone"`
	IsActive         bool     `json:"is_active"`
	IsApproved       bool     `json:"is_approved"`
	OverallScore     *float64 `json:"overall_score"`
	ServiceCountries []string `json:"service_countries"`
	ServicePorts     []string `json:"service_ports"`
	PortCapabilities []string `json:"port_capabilities"`
}

func (r *VendorRequest) toModel() *models.Vendor {
	return &models.Vendor{
		Name:             r.Name,
		ContactEmail:     r.ContactEmail,
		Email:            r.Email,
		Phone:            r.Phone,
		IsActive:         r.IsActive,
		IsApproved:       r.IsApproved,
		OverallScore:     r.OverallScore,
		ServiceCountries: r.ServiceCountries,
		ServicePorts:     r.ServicePorts,
		PortCapabilities: r.PortCapabilities,
	}
}

// CreateVendor registers a vendor in the pool
func (h *VendorHandlers) CreateVendor(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.OverallScore != nil {
		if err := common.ValidatePositiveFloat(*req.OverallScore, "overall_score", 10); err != nil {
			return common.SendValidationError(c, "overall_score", err.Error())
		}
	}

	vendor, err := h.vendorService.CreateVendor(ctx, req.toModel(), actorID)
	if err != nil {
		return common.RespondError(c, err, "VENDOR_CREATION_FAILED")
	}
	return c.JSON(http.StatusCreated, vendor)
}

// GetVendor returns a single vendor
func (h *VendorHandlers) GetVendor(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	vendor, err := h.vendorService.GetVendorByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err, "VENDOR_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, vendor)
}

// UpdateVendor replaces the vendor's mutable fields
func (h *VendorHandlers) UpdateVendor(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	vendor := req.toModel()
	vendor.ID = id

	updated, err := h.vendorService.UpdateVendor(ctx, vendor, actorID)
	if err != nil {
		return common.RespondError(c, err, "VENDOR_UPDATE_FAILED")
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteVendor removes a vendor from the pool
func (h *VendorHandlers) DeleteVendor(c echo.Context) error {
	ctx := c.Request().Context()
	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.vendorService.DeleteVendor(ctx, id, actorID); err != nil {
		return common.RespondError(c, err, "VENDOR_DELETION_FAILED")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListVendorsRequest represents vendor list query parameters
type ListVendorsRequest struct {
	Query      string   `query:"q"`
	IsActive   *bool    `query:"is_active"`
	IsApproved *bool    `query:"is_approved"`
	MinScore   *float64 `query:"min_score"`
	Country    string   `query:"country"`
	Limit      int      `query:"limit"`
	Offset     int      `query:"offset"`
}

// ListVendors lists vendors with optional filters
func (h *VendorHandlers) ListVendors(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListVendorsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset, err := common.ValidatePaginationParams(req.Limit, req.Offset)
	if err != nil {
		return common.SendValidationError(c, "pagination", err.Error())
	}

	filter := &models.VendorSearchFilter{
		Query:      req.Query,
		IsActive:   req.IsActive,
		IsApproved: req.IsApproved,
		MinScore:   req.MinScore,
		Limit:      limit,
		Offset:     offset,
	}
	if req.Country != "" {
		filter.Country = &req.Country
	}

	vendors, err := h.vendorService.ListVendors(ctx, filter)
	if err != nil {
		return common.RespondError(c, err, "VENDOR_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"vendors": vendors,
		"limit":   limit,
		"offset":  offset,
	})
}
