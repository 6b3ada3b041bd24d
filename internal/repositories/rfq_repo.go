package repositories

import (
	"context"
	"errors"
	"fmt"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RFQRepository interface {
	Create(ctx context.Context, rfq *models.RFQ) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error)
	ExistsForRequisition(ctx context.Context, requisitionID uuid.UUID) (bool, error)
	Update(ctx context.Context, rfq *models.RFQ) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, filter *models.RFQSearchFilter) ([]*models.RFQ, error)
	NextRFQNumber(ctx context.Context, year int) (string, error)
	ListPastDeadline(ctx context.Context, limit int) ([]*models.RFQ, error)
}

type rfqRepo struct {
	db Database
}

func NewRFQRepo(db Database) RFQRepository {
	return &rfqRepo{db: db}
}

func (r *rfqRepo) Create(ctx context.Context, rfq *models.RFQ) error {
	query := `
		INSERT INTO rfqs (id, rfq_number, requisition_id, title, description, status, currency, delivery_location, delivery_date, response_deadline, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, rfq.ID, rfq.RFQNumber, rfq.RequisitionID, rfq.Title, rfq.Description, rfq.Status, rfq.Currency, rfq.DeliveryLocation, rfq.DeliveryDate, rfq.ResponseDeadline, rfq.CreatedBy)
	return err
}

func (r *rfqRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	rfq := &models.RFQ{}
	query := `
		SELECT id, rfq_number, requisition_id, title, description, status, currency, delivery_location, delivery_date, response_deadline, created_by, created_at, updated_at
		FROM rfqs
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&rfq.ID, &rfq.RFQNumber, &rfq.RequisitionID, &rfq.Title, &rfq.Description, &rfq.Status, &rfq.Currency, &rfq.DeliveryLocation, &rfq.DeliveryDate, &rfq.ResponseDeadline, &rfq.CreatedBy, &rfq.CreatedAt, &rfq.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rfq, nil
}

func (r *rfqRepo) ExistsForRequisition(ctx context.Context, requisitionID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rfqs WHERE requisition_id = $1)`
	if err := r.db.QueryRow(ctx, query, requisitionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *rfqRepo) Update(ctx context.Context, rfq *models.RFQ) error {
	query := `
		UPDATE rfqs
		SET title = $1, description = $2, delivery_location = $3, delivery_date = $4, response_deadline = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query, rfq.Title, rfq.Description, rfq.DeliveryLocation, rfq.DeliveryDate, rfq.ResponseDeadline, rfq.Status, rfq.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rfq %s not found", rfq.ID)
	}
	return nil
}

func (r *rfqRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE rfqs SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rfq %s not found", id)
	}
	return nil
}

func (r *rfqRepo) List(ctx context.Context, filter *models.RFQSearchFilter) ([]*models.RFQ, error) {
	queryBase := `
		SELECT r.id, r.rfq_number, r.requisition_id, r.title, r.description, r.status, r.currency, r.delivery_location, r.delivery_date, r.response_deadline, r.created_by, r.created_at, r.updated_at
		FROM rfqs r
		WHERE 1=1
	`
	args := []any{}
	conditionCount := 0

	if filter.Status != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND r.status = $%d`, conditionCount)
		args = append(args, *filter.Status)
	}
	if filter.VesselID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM requisitions q WHERE q.id = r.requisition_id AND q.vessel_id = $%d
		)`, conditionCount)
		args = append(args, *filter.VesselID)
	}
	if filter.DateFrom != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND r.created_at >= $%d`, conditionCount)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND r.created_at <= $%d`, conditionCount)
		args = append(args, *filter.DateTo)
	}

	queryBase += ` ORDER BY r.created_at DESC`

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

	var rfqs []*models.RFQ
	for rows.Next() {
		rfq := &models.RFQ{}
		if err := rows.Scan(&rfq.ID, &rfq.RFQNumber, &rfq.RequisitionID, &rfq.Title, &rfq.Description, &rfq.Status, &rfq.Currency, &rfq.DeliveryLocation, &rfq.DeliveryDate, &rfq.ResponseDeadline, &rfq.CreatedBy, &rfq.CreatedAt, &rfq.UpdatedAt); err != nil {
			return nil, err
		}
		rfqs = append(rfqs, rfq)
	}
	return rfqs, rows.Err()
}

// NextRFQNumber allocates the next sequential RFQ number for a year via an
// atomic UPSERT on rfq_sequences, so concurrent creations can never collide.
func (r *rfqRepo) NextRFQNumber(ctx context.Context, year int) (string, error) {
	query := `
		WITH upsert AS (
			INSERT INTO rfq_sequences (year, last_number)
			VALUES ($1, 1)
			ON CONFLICT (year)
			DO UPDATE SET
				last_number = rfq_sequences.last_number + 1,
				updated_at = NOW()
			RETURNING last_number
		)
		SELECT last_number FROM upsert;
	`
	var seq int
	if err := r.db.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("allocate rfq number: %w", err)
	}
	return fmt.Sprintf("RFQ-%d-%04d", year, seq), nil
}

// ListPastDeadline returns SENT RFQs whose response deadline has passed.
func (r *rfqRepo) ListPastDeadline(ctx context.Context, limit int) ([]*models.RFQ, error) {
	query := `
		SELECT id, rfq_number, requisition_id, title, description, status, currency, delivery_location, delivery_date, response_deadline, created_by, created_at, updated_at
		FROM rfqs
		WHERE status = 'SENT' AND response_deadline < NOW()
		ORDER BY response_deadline
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rfqs []*models.RFQ
	for rows.Next() {
		rfq := &models.RFQ{}
		if err := rows.Scan(&rfq.ID, &rfq.RFQNumber, &rfq.RequisitionID, &rfq.Title, &rfq.Description, &rfq.Status, &rfq.Currency, &rfq.DeliveryLocation, &rfq.DeliveryDate, &rfq.ResponseDeadline, &rfq.CreatedBy, &rfq.CreatedAt, &rfq.UpdatedAt); err != nil {
			return nil, err
		}
		rfqs = append(rfqs, rfq)
	}
	return rfqs, rows.Err()
}
