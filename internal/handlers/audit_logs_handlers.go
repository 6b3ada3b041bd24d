package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/services"
)

// AuditLogsHandlers handles audit trail query HTTP requests
type AuditLogsHandlers struct {
	auditService services.AuditLogsService
}

func NewAuditLogsHandlers(auditService services.AuditLogsService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditService: auditService}
}

// ListAuditLogsRequest represents audit log query parameters
type ListAuditLogsRequest struct {
	Resource   string `query:"resource"`
	ResourceID string `query:"resource_id"`
	Action     string `query:"action"`
	UserID     string `query:"user_id"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// ListAuditLogs queries the audit trail with optional filters
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListAuditLogsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filters := &models.AuditLogFilters{Limit: req.Limit, Offset: req.Offset}
	if req.Resource != "" {
		filters.Resource = &req.Resource
	}
	if req.ResourceID != "" {
		filters.ResourceID = &req.ResourceID
	}
	if req.Action != "" {
		filters.Action = &req.Action
	}
	if req.UserID != "" {
		userID, err := common.ValidateUUID(req.UserID, "user_id")
		if err != nil {
			return common.SendValidationError(c, "user_id", err.Error())
		}
		filters.UserID = &userID
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return common.SendValidationError(c, "start_date", "must be YYYY-MM-DD")
		}
		filters.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return common.SendValidationError(c, "end_date", "must be YYYY-MM-DD")
		}
		filters.EndDate = &end
	}

	logs, err := h.auditService.ListAuditLogs(ctx, filters)
	if err != nil {
		return common.RespondError(c, err, "AUDIT_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"audit_logs": logs})
}

// GetResourceHistory returns the audit trail of one resource, newest first
func (h *AuditLogsHandlers) GetResourceHistory(c echo.Context) error {
	ctx := c.Request().Context()
	resource := c.Param("resource")
	if err := common.ValidateRequiredString(resource, "resource"); err != nil {
		return common.SendValidationError(c, "resource", err.Error())
	}
	resourceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	limit, offset, err := common.ValidatePaginationParams(0, 0)
	if err != nil {
		return common.SendValidationError(c, "pagination", err.Error())
	}

	logs, err := h.auditService.GetResourceHistory(ctx, resource, resourceID.String(), limit, offset)
	if err != nil {
		return common.RespondError(c, err, "AUDIT_FETCH_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"history": logs})
}
