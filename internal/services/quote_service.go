package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

// SubmitQuoteInput is a vendor's quotation against a distributed RFQ.
type SubmitQuoteInput struct {
	RFQID       uuid.UUID  `json:"rfq_id"`
	VendorID    uuid.UUID  `json:"vendor_id"`
	TotalAmount float64    `json:"total_amount"`
	Currency    string     `json:"currency"`
	ValidUntil  *time.Time `json:"valid_until"`
	Notes       *string    `json:"notes"`
}

type QuoteServiceInterface interface {
	SubmitQuote(ctx context.Context, input *SubmitQuoteInput) (*models.Quote, error)
	GetQuoteByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListQuotesByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.Quote, error)
	AcceptQuote(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	RejectQuote(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type quoteService struct {
	quoteRepo     repositories.QuoteRepository
	rfqRepo       repositories.RFQRepository
	rfqVendorRepo repositories.RFQVendorRepository
	auditSvc      AuditLogsService
}

func NewQuoteService(quoteRepo repositories.QuoteRepository, rfqRepo repositories.RFQRepository, rfqVendorRepo repositories.RFQVendorRepository, auditSvc AuditLogsService) QuoteServiceInterface {
	return &quoteService{
		quoteRepo:     quoteRepo,
		rfqRepo:       rfqRepo,
		rfqVendorRepo: rfqVendorRepo,
		auditSvc:      auditSvc,
	}
}

// SubmitQuote records a vendor's quote. Only vendors the RFQ was distributed
// to may quote, only once, and only before the response deadline.
func (s *quoteService) SubmitQuote(ctx context.Context, input *SubmitQuoteInput) (*models.Quote, error) {
	rfq, err := s.rfqRepo.GetByID(ctx, input.RFQID)
	if err != nil {
		return nil, fmt.Errorf("fetch rfq %s: %w", input.RFQID, err)
	}
	if rfq == nil {
		return nil, common.NewAppError("RFQ not found", http.StatusNotFound, common.CodeRFQNotFound)
	}
	if rfq.Status != models.RFQStatusSent {
		return nil, common.NewAppError(
			fmt.Sprintf("RFQ %s is %s, quotes are only accepted on SENT RFQs", rfq.RFQNumber, rfq.Status),
			http.StatusBadRequest, common.CodeInvalidRFQStatus)
	}
	now := time.Now()
	if now.After(rfq.ResponseDeadline) {
		return nil, common.NewAppError("the response deadline for this RFQ has passed", http.StatusBadRequest, common.CodeRFQDeadlinePassed)
	}

	invited, err := s.wasInvited(ctx, rfq.ID, input.VendorID)
	if err != nil {
		return nil, err
	}
	if !invited {
		return nil, common.NewAppError("vendor was not invited to this RFQ", http.StatusBadRequest, common.CodeInvalidVendors)
	}

	exists, err := s.quoteRepo.ExistsForRFQAndVendor(ctx, rfq.ID, input.VendorID)
	if err != nil {
		return nil, fmt.Errorf("check existing quote: %w", err)
	}
	if exists {
		return nil, common.NewAppError("vendor has already quoted on this RFQ", http.StatusBadRequest, "QUOTE_ALREADY_EXISTS")
	}
	if input.TotalAmount <= 0 {
		return nil, common.NewAppError("quote total must be positive", http.StatusBadRequest, "INVALID_QUOTE")
	}

	currency := input.Currency
	if currency == "" {
		currency = rfq.Currency
	}
	quote := &models.Quote{
		ID:          uuid.New(),
		RFQID:       rfq.ID,
		VendorID:    input.VendorID,
		TotalAmount: input.TotalAmount,
		Currency:    currency,
		Status:      models.QuoteStatusSubmitted,
		ValidUntil:  input.ValidUntil,
		Notes:       input.Notes,
		SubmittedAt: now,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	if err := s.rfqVendorRepo.MarkResponded(ctx, rfq.ID, input.VendorID, now); err != nil {
		log.Printf("mark vendor %s responded on rfq %s: %v", input.VendorID, rfq.ID, err)
	}

	s.auditQuote(ctx, quote.ID, models.ActionCreate, nil, models.JSONB{
		"rfq_id":       rfq.ID.String(),
		"vendor_id":    input.VendorID.String(),
		"total_amount": quote.TotalAmount,
		"currency":     quote.Currency,
	})
	return quote, nil
}

func (s *quoteService) wasInvited(ctx context.Context, rfqID, vendorID uuid.UUID) (bool, error) {
	rfqVendors, err := s.rfqVendorRepo.ListByRFQ(ctx, rfqID)
	if err != nil {
		return false, fmt.Errorf("list rfq vendors: %w", err)
	}
	for _, rv := range rfqVendors {
		if rv.VendorID == vendorID {
			return true, nil
		}
	}
	return false, nil
}

func (s *quoteService) GetQuoteByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", id, err)
	}
	if quote == nil {
		return nil, common.NewAppError("quote not found", http.StatusNotFound, common.CodeQuoteNotFound)
	}
	return quote, nil
}

func (s *quoteService) ListQuotesByRFQ(ctx context.Context, rfqID uuid.UUID) ([]*models.Quote, error) {
	return s.quoteRepo.ListByRFQ(ctx, rfqID)
}

func (s *quoteService) AcceptQuote(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	return s.transition(ctx, id, actorID, models.QuoteStatusAccepted)
}

func (s *quoteService) RejectQuote(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	return s.transition(ctx, id, actorID, models.QuoteStatusRejected)
}

func (s *quoteService) transition(ctx context.Context, id, actorID uuid.UUID, to string) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch quote %s: %w", id, err)
	}
	if quote == nil {
		return common.NewAppError("quote not found", http.StatusNotFound, common.CodeQuoteNotFound)
	}
	if quote.Status != models.QuoteStatusSubmitted {
		return common.NewAppError(
			fmt.Sprintf("quote is %s, only SUBMITTED quotes can transition", quote.Status),
			http.StatusBadRequest, "INVALID_QUOTE_STATUS")
	}
	if err := s.quoteRepo.UpdateStatus(ctx, id, to); err != nil {
		return fmt.Errorf("update quote %s status: %w", id, err)
	}
	s.auditQuote(ctx, id, models.ActionUpdate, &actorID, models.JSONB{
		"old_status": models.QuoteStatusSubmitted,
		"new_status": to,
	})
	return nil
}

func (s *quoteService) auditQuote(ctx context.Context, id uuid.UUID, action string, userID *uuid.UUID, newValues models.JSONB) {
	if err := s.auditSvc.LogActivity(ctx, "quote", id.String(), action, userID, nil, newValues, nil); err != nil {
		log.Printf("audit %s on quote %s: %v", action, id, err)
	}
}
