package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
)

type AuditLogsRepository interface {
	Create(ctx context.Context, auditLog *models.AuditLog) error
	List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error)
	GetByResource(ctx context.Context, resource, resourceID string, limit, offset int) ([]*models.AuditLog, error)
}

type auditLogsRepo struct {
	db Database
}

func NewAuditLogsRepo(db Database) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) Create(ctx context.Context, auditLog *models.AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}
	auditLog.CreatedAt = time.Now()

	oldValues, err := marshalJSONB(auditLog.OldValues)
	if err != nil {
		return fmt.Errorf("marshal old_values: %w", err)
	}
	newValues, err := marshalJSONB(auditLog.NewValues)
	if err != nil {
		return fmt.Errorf("marshal new_values: %w", err)
	}
	metadata, err := marshalJSONB(auditLog.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, resource, resource_id, action, old_values, new_values, metadata, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.Exec(ctx, query, auditLog.ID, auditLog.Resource, auditLog.ResourceID, auditLog.Action, oldValues, newValues, metadata, auditLog.UserID, auditLog.CreatedAt)
	return err
}

func (r *auditLogsRepo) List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	queryBase := `
		SELECT id, resource, resource_id, action, old_values, new_values, metadata, user_id, created_at
		FROM audit_logs
		WHERE 1=1
	`
	args := []any{}
	conditionCount := 0

	if filters.Resource != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND resource = $%d`, conditionCount)
		args = append(args, *filters.Resource)
	}
	if filters.ResourceID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND resource_id = $%d`, conditionCount)
		args = append(args, *filters.ResourceID)
	}
	if filters.Action != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND action = $%d`, conditionCount)
		args = append(args, *filters.Action)
	}
	if filters.UserID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND user_id = $%d`, conditionCount)
		args = append(args, *filters.UserID)
	}
	if filters.StartDate != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND created_at >= $%d`, conditionCount)
		args = append(args, *filters.StartDate)
	}
	if filters.EndDate != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND created_at <= $%d`, conditionCount)
		args = append(args, *filters.EndDate)
	}

	queryBase += ` ORDER BY created_at DESC`

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, limit)
	if filters.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (r *auditLogsRepo) GetByResource(ctx context.Context, resource, resourceID string, limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, resource, resource_id, action, old_values, new_values, metadata, user_id, created_at
		FROM audit_logs
		WHERE resource = $1 AND resource_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, resource, resourceID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func marshalJSONB(values models.JSONB) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuditLog(row rowScanner) (*models.AuditLog, error) {
	entry := &models.AuditLog{}
	var oldValues, newValues, metadata []byte
	if err := row.Scan(&entry.ID, &entry.Resource, &entry.ResourceID, &entry.Action, &oldValues, &newValues, &metadata, &entry.UserID, &entry.CreatedAt); err != nil {
		return nil, err
	}
	if len(oldValues) > 0 {
		if err := json.Unmarshal(oldValues, &entry.OldValues); err != nil {
			return nil, fmt.Errorf("unmarshal old_values: %w", err)
		}
	}
	if len(newValues) > 0 {
		if err := json.Unmarshal(newValues, &entry.NewValues); err != nil {
			return nil, fmt.Errorf("unmarshal new_values: %w", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return entry, nil
}
