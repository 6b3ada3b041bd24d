package repositories

import (
	"context"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
)

type RFQVendorRepository interface {
	CreateBatch(ctx context.Context, rfqID uuid.UUID, vendorIDs []uuid.UUID, sentAt time.Time) error
	ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.RFQVendor, error)
	MarkResponded(ctx context.Context, rfqID, vendorID uuid.UUID, respondedAt time.Time) error
}

type rfqVendorRepo struct {
	db Database
}

func NewRFQVendorRepo(db Database) RFQVendorRepository {
	return &rfqVendorRepo{db: db}
}

func (r *rfqVendorRepo) CreateBatch(ctx context.Context, rfqID uuid.UUID, vendorIDs []uuid.UUID, sentAt time.Time) error {
	query := `
		INSERT INTO rfq_vendors (id, rfq_id, vendor_id, sent_at)
		VALUES ($1, $2, $3, $4)
	`
	for _, vendorID := range vendorIDs {
		if _, err := r.db.Exec(ctx, query, uuid.New(), rfqID, vendorID, sentAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *rfqVendorRepo) ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.RFQVendor, error) {
	query := `
		SELECT id, rfq_id, vendor_id, sent_at, responded_at
		FROM rfq_vendors
		WHERE rfq_id = $1
		ORDER BY sent_at
	`
	rows, err := r.db.Query(ctx, query, rfqID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rfqVendors []*models.RFQVendor
	for rows.Next() {
		rv := &models.RFQVendor{}
		if err := rows.Scan(&rv.ID, &rv.RFQID, &rv.VendorID, &rv.SentAt, &rv.RespondedAt); err != nil {
			return nil, err
		}
		rfqVendors = append(rfqVendors, rv)
	}
	return rfqVendors, rows.Err()
}

func (r *rfqVendorRepo) MarkResponded(ctx context.Context, rfqID, vendorID uuid.UUID, respondedAt time.Time) error {
	query := `UPDATE rfq_vendors SET responded_at = $1 WHERE rfq_id = $2 AND vendor_id = $3`
	_, err := r.db.Exec(ctx, query, respondedAt, rfqID, vendorID)
	return err
}
