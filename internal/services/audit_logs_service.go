package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

type AuditLogsService interface {
	LogActivity(ctx context.Context, resource, resourceID, action string, userID *uuid.UUID, oldValues, newValues, metadata models.JSONB) error
	ListAuditLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error)
	GetResourceHistory(ctx context.Context, resource, resourceID string, limit, offset int) ([]*models.AuditLog, error)
}

type auditLogsService struct {
	auditRepo repositories.AuditLogsRepository
}

func NewAuditLogsService(auditRepo repositories.AuditLogsRepository) AuditLogsService {
	return &auditLogsService{auditRepo: auditRepo}
}

func (s *auditLogsService) LogActivity(ctx context.Context, resource, resourceID, action string, userID *uuid.UUID, oldValues, newValues, metadata models.JSONB) error {
	entry := &models.AuditLog{
		Resource:   resource,
		ResourceID: resourceID,
		Action:     action,
		UserID:     userID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Metadata:   metadata,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit log for %s %s: %w", resource, resourceID, err)
	}
	return nil
}

func (s *auditLogsService) ListAuditLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{}
	}
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Limit > 500 {
		filters.Limit = 500
	}
	return s.auditRepo.List(ctx, filters)
}

func (s *auditLogsService) GetResourceHistory(ctx context.Context, resource, resourceID string, limit, offset int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.GetByResource(ctx, resource, resourceID, limit, offset)
}
