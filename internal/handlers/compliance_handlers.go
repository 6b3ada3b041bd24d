package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/services"
)

// ComplianceHandlers handles vessel compliance HTTP requests
type ComplianceHandlers struct {
	complianceService services.ComplianceServiceInterface
}

func NewComplianceHandlers(complianceService services.ComplianceServiceInterface) *ComplianceHandlers {
	return &ComplianceHandlers{complianceService: complianceService}
}

// GetVesselReport returns the compliance snapshot for a vessel
func (h *ComplianceHandlers) GetVesselReport(c echo.Context) error {
	ctx := c.Request().Context()
	vesselID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	report, err := h.complianceService.GenerateVesselReport(ctx, vesselID)
	if err != nil {
		return common.RespondError(c, err, "COMPLIANCE_REPORT_FAILED")
	}
	return c.JSON(http.StatusOK, report)
}

// ListExpiringCertificatesRequest represents the expiry scan query
type ListExpiringCertificatesRequest struct {
	Days  int `query:"days"`
	Limit int `query:"limit"`
}

// ListExpiringCertificates returns expiry alerts without queuing any
// notifications; alerting is the scheduler's job.
func (h *ComplianceHandlers) ListExpiringCertificates(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListExpiringCertificatesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	window := time.Duration(req.Days) * 24 * time.Hour

	alerts, err := h.complianceService.ListExpiringCertificates(ctx, window, req.Limit)
	if err != nil {
		return common.RespondError(c, err, "COMPLIANCE_SCAN_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"alerts": alerts})
}
