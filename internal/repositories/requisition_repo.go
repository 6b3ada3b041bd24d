package repositories

import (
	"context"
	"errors"
	"fmt"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RequisitionRepository interface {
	Create(ctx context.Context, requisition *models.Requisition, items []*models.RequisitionItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error)
	GetItems(ctx context.Context, requisitionID uuid.UUID) ([]*models.RequisitionItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, filter *models.RequisitionSearchFilter) ([]*models.Requisition, error)
}

type requisitionRepo struct {
	db Database
}

func NewRequisitionRepo(db Database) RequisitionRepository {
	return &requisitionRepo{db: db}
}

func (r *requisitionRepo) Create(ctx context.Context, requisition *models.Requisition, items []*models.RequisitionItem) error {
	query := `
		INSERT INTO requisitions (id, vessel_id, number, status, currency, delivery_location, delivery_date, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, requisition.ID, requisition.VesselID, requisition.Number, requisition.Status, requisition.Currency, requisition.DeliveryLocation, requisition.DeliveryDate, requisition.Notes, requisition.CreatedBy)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO requisition_items (id, requisition_id, description, impa_code, quantity, unit, estimated_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.RequisitionID = requisition.ID
		if _, err := r.db.Exec(ctx, itemQuery, item.ID, item.RequisitionID, item.Description, item.ImpaCode, item.Quantity, item.Unit, item.EstimatedCost); err != nil {
			return err
		}
	}
	return nil
}

func (r *requisitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error) {
	requisition := &models.Requisition{}
	query := `
		SELECT id, vessel_id, number, status, currency, delivery_location, delivery_date, notes, created_by, created_at, updated_at
		FROM requisitions
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&requisition.ID, &requisition.VesselID, &requisition.Number, &requisition.Status, &requisition.Currency, &requisition.DeliveryLocation, &requisition.DeliveryDate, &requisition.Notes, &requisition.CreatedBy, &requisition.CreatedAt, &requisition.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return requisition, nil
}

func (r *requisitionRepo) GetItems(ctx context.Context, requisitionID uuid.UUID) ([]*models.RequisitionItem, error) {
	query := `
		SELECT id, requisition_id, description, impa_code, quantity, unit, estimated_cost, created_at
		FROM requisition_items
		WHERE requisition_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, requisitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.RequisitionItem
	for rows.Next() {
		item := &models.RequisitionItem{}
		if err := rows.Scan(&item.ID, &item.RequisitionID, &item.Description, &item.ImpaCode, &item.Quantity, &item.Unit, &item.EstimatedCost, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *requisitionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE requisitions SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("requisition %s not found", id)
	}
	return nil
}

func (r *requisitionRepo) List(ctx context.Context, filter *models.RequisitionSearchFilter) ([]*models.Requisition, error) {
	queryBase := `
		SELECT id, vessel_id, number, status, currency, delivery_location, delivery_date, notes, created_by, created_at, updated_at
		FROM requisitions
		WHERE 1=1
	`
	args := []any{}
	conditionCount := 0

	if filter.Status != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND status = $%d`, conditionCount)
		args = append(args, *filter.Status)
	}
	if filter.VesselID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND vessel_id = $%d`, conditionCount)
		args = append(args, *filter.VesselID)
	}
	if filter.DateFrom != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND created_at >= $%d`, conditionCount)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND created_at <= $%d`, conditionCount)
		args = append(args, *filter.DateTo)
	}

	queryBase += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requisitions []*models.Requisition
	for rows.Next() {
		requisition := &models.Requisition{}
		if err := rows.Scan(&requisition.ID, &requisition.VesselID, &requisition.Number, &requisition.Status, &requisition.Currency, &requisition.DeliveryLocation, &requisition.DeliveryDate, &requisition.Notes, &requisition.CreatedBy, &requisition.CreatedAt, &requisition.UpdatedAt); err != nil {
			return nil, err
		}
		requisitions = append(requisitions, requisition)
	}
	return requisitions, rows.Err()
}
