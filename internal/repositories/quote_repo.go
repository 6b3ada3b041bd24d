package repositories

import (
	"context"
	"errors"
	"fmt"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.Quote, error)
	ExistsForRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type quoteRepo struct {
	db Database
}

func NewQuoteRepo(db Database) QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, quote *models.Quote) error {
	query := `
		INSERT INTO quotes (id, rfq_id, vendor_id, total_amount, currency, status, valid_until, notes, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err := r.db.Exec(ctx, query, quote.ID, quote.RFQID, quote.VendorID, quote.TotalAmount, quote.Currency, quote.Status, quote.ValidUntil, quote.Notes, quote.SubmittedAt)
	return err
}

func (r *quoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote := &models.Quote{}
	query := `
		SELECT id, rfq_id, vendor_id, total_amount, currency, status, valid_until, notes, submitted_at, updated_at
		FROM quotes
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&quote.ID, &quote.RFQID, &quote.VendorID, &quote.TotalAmount, &quote.Currency, &quote.Status, &quote.ValidUntil, &quote.Notes, &quote.SubmittedAt, &quote.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return quote, nil
}

func (r *quoteRepo) ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.Quote, error) {
	query := `
		SELECT id, rfq_id, vendor_id, total_amount, currency, status, valid_until, notes, submitted_at, updated_at
		FROM quotes
		WHERE rfq_id = $1
		ORDER BY submitted_at
	`
	rows, err := r.db.Query(ctx, query, rfqID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*models.Quote
	for rows.Next() {
		quote := &models.Quote{}
		if err := rows.Scan(&quote.ID, &quote.RFQID, &quote.VendorID, &quote.TotalAmount, &quote.Currency, &quote.Status, &quote.ValidUntil, &quote.Notes, &quote.SubmittedAt, &quote.UpdatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}

func (r *quoteRepo) ExistsForRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM quotes WHERE rfq_id = $1 AND vendor_id = $2)`
	if err := r.db.QueryRow(ctx, query, rfqID, vendorID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *quoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE quotes SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %s not found", id)
	}
	return nil
}
