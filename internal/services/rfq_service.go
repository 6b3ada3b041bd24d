package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"flowmarine/internal/caching"
	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

const (
	rfqCacheTTL        = 10 * time.Minute
	defaultMaxVendors  = 5
	defaultMinRating   = 6.0
	defaultDeadlineGap = 7 * 24 * time.Hour
)

// RFQTxRunner abstracts the transactional boundary so tests can run the
// callback against mocked repositories.
type RFQTxRunner interface {
	RunRFQ(ctx context.Context, fn func(
		rfqRepo repositories.RFQRepository,
		requisitionRepo repositories.RequisitionRepository,
		rfqVendorRepo repositories.RFQVendorRepository,
	) error) error
}

// CreateRFQInput carries the caller-supplied RFQ fields. Anything left nil
// is inherited from the source requisition.
type CreateRFQInput struct {
	RequisitionID    uuid.UUID  `json:"requisition_id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	Currency         *string    `json:"currency"`
	DeliveryLocation *string    `json:"delivery_location"`
	DeliveryDate     *time.Time `json:"delivery_date"`
	ResponseDeadline *time.Time `json:"response_deadline"`
}

type RFQServiceInterface interface {
	CreateRFQFromRequisition(ctx context.Context, input *CreateRFQInput, actorID uuid.UUID) (*models.RFQ, error)
	SelectVendorsForRFQ(ctx context.Context, rfqID uuid.UUID, criteria *models.VendorSelectionCriteria) (*models.VendorSelectionResult, error)
	DistributeRFQ(ctx context.Context, rfqID uuid.UUID, vendorIDs []uuid.UUID, actorID uuid.UUID) (*models.DistributionResult, error)
	GetRFQByID(ctx context.Context, rfqID uuid.UUID) (*models.RFQDetail, error)
	UpdateRFQ(ctx context.Context, rfqID uuid.UUID, update *models.RFQUpdate, actorID uuid.UUID) (*models.RFQ, error)
	ListRFQs(ctx context.Context, filter *models.RFQSearchFilter) ([]*models.RFQ, error)
	CancelRFQ(ctx context.Context, rfqID uuid.UUID, reason string, actorID uuid.UUID) error
}

type rfqService struct {
	txRunner        RFQTxRunner
	rfqRepo         repositories.RFQRepository
	requisitionRepo repositories.RequisitionRepository
	rfqVendorRepo   repositories.RFQVendorRepository
	vendorRepo      repositories.VendorRepository
	vesselRepo      repositories.VesselRepository
	quoteRepo       repositories.QuoteRepository
	auditSvc        AuditLogsService
	notificationSvc NotificationService
	cacheSvc        caching.CacheService
}

func NewRFQService(
	txRunner RFQTxRunner,
	rfqRepo repositories.RFQRepository,
	requisitionRepo repositories.RequisitionRepository,
	rfqVendorRepo repositories.RFQVendorRepository,
	vendorRepo repositories.VendorRepository,
	vesselRepo repositories.VesselRepository,
	quoteRepo repositories.QuoteRepository,
	auditSvc AuditLogsService,
	notificationSvc NotificationService,
	cacheSvc caching.CacheService,
) RFQServiceInterface {
	return &rfqService{
		txRunner:        txRunner,
		rfqRepo:         rfqRepo,
		requisitionRepo: requisitionRepo,
		rfqVendorRepo:   rfqVendorRepo,
		vendorRepo:      vendorRepo,
		vesselRepo:      vesselRepo,
		quoteRepo:       quoteRepo,
		auditSvc:        auditSvc,
		notificationSvc: notificationSvc,
		cacheSvc:        cacheSvc,
	}
}

// CreateRFQFromRequisition converts an approved requisition into a draft RFQ.
// The RFQ number, the RFQ row and the requisition status flip happen inside
// one transaction, so the number sequence cannot race with a concurrent call.
func (s *rfqService) CreateRFQFromRequisition(ctx context.Context, input *CreateRFQInput, actorID uuid.UUID) (*models.RFQ, error) {
	requisition, err := s.requisitionRepo.GetByID(ctx, input.RequisitionID)
	if err != nil {
		return nil, fmt.Errorf("fetch requisition %s: %w", input.RequisitionID, err)
	}
	if requisition == nil {
		return nil, common.NewAppError("requisition not found", http.StatusNotFound, common.CodeRequisitionNotFound)
	}
	if requisition.Status != models.RequisitionStatusApproved {
		return nil, common.NewAppError(
			fmt.Sprintf("requisition %s is %s, only APPROVED requisitions can be converted", requisition.Number, requisition.Status),
			http.StatusBadRequest, common.CodeRequisitionNotApproved)
	}

	exists, err := s.rfqRepo.ExistsForRequisition(ctx, requisition.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing rfq for requisition %s: %w", requisition.ID, err)
	}
	if exists {
		return nil, common.NewAppError("an RFQ already exists for this requisition", http.StatusBadRequest, common.CodeRFQAlreadyExists)
	}

	now := time.Now()
	rfq := &models.RFQ{
		ID:               uuid.New(),
		RequisitionID:    requisition.ID,
		Title:            input.Title,
		Description:      input.Description,
		Status:           models.RFQStatusDraft,
		Currency:         requisition.Currency,
		DeliveryLocation: requisition.DeliveryLocation,
		DeliveryDate:     requisition.DeliveryDate,
		ResponseDeadline: now.Add(defaultDeadlineGap),
		CreatedBy:        actorID,
	}
	if input.Currency != nil && *input.Currency != "" {
		rfq.Currency = *input.Currency
	}
	if input.DeliveryLocation != nil && *input.DeliveryLocation != "" {
		rfq.DeliveryLocation = *input.DeliveryLocation
	}
	if input.DeliveryDate != nil {
		rfq.DeliveryDate = input.DeliveryDate
	}
	if input.ResponseDeadline != nil {
		rfq.ResponseDeadline = *input.ResponseDeadline
	}
	if rfq.Title == "" {
		rfq.Title = fmt.Sprintf("RFQ for requisition %s", requisition.Number)
	}

	err = s.txRunner.RunRFQ(ctx, func(rfqRepo repositories.RFQRepository, requisitionRepo repositories.RequisitionRepository, _ repositories.RFQVendorRepository) error {
		number, err := rfqRepo.NextRFQNumber(ctx, now.Year())
		if err != nil {
			return fmt.Errorf("allocate rfq number: %w", err)
		}
		rfq.RFQNumber = number
		if err := rfqRepo.Create(ctx, rfq); err != nil {
			return fmt.Errorf("insert rfq: %w", err)
		}
		return requisitionRepo.UpdateStatus(ctx, requisition.ID, models.RequisitionStatusConvertedToRFQ)
	})
	if err != nil {
		return nil, err
	}

	newValues := models.JSONB{
		"rfq_number":        rfq.RFQNumber,
		"requisition_id":    requisition.ID.String(),
		"status":            rfq.Status,
		"title":             rfq.Title,
		"currency":          rfq.Currency,
		"delivery_location": rfq.DeliveryLocation,
		"response_deadline": rfq.ResponseDeadline.Format(time.RFC3339),
	}
	if rfq.Description != nil {
		newValues["description"] = *rfq.Description
	}
	if rfq.DeliveryDate != nil {
		newValues["delivery_date"] = rfq.DeliveryDate.Format(time.RFC3339)
	}
	s.audit(ctx, rfq.ID, models.ActionCreate, &actorID, nil, newValues, nil)
	return rfq, nil
}

// SelectVendorsForRFQ scores the eligible vendor pool against the given
// criteria. When criteria is nil, defaults are derived from the RFQ's
// delivery location.
func (s *rfqService) SelectVendorsForRFQ(ctx context.Context, rfqID uuid.UUID, criteria *models.VendorSelectionCriteria) (*models.VendorSelectionResult, error) {
	rfq, err := s.getRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}

	if criteria == nil {
		criteria = DeriveSelectionCriteria(rfq.DeliveryLocation)
	}
	if criteria.MaxVendors <= 0 {
		criteria.MaxVendors = defaultMaxVendors
	}

	eligible, err := s.vendorRepo.FindEligible(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("find eligible vendors: %w", err)
	}

	scored := make([]*models.ScoredVendor, 0, len(eligible))
	for _, vendor := range eligible {
		scored = append(scored, ScoreVendor(vendor, criteria))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	total := len(scored)
	if len(scored) > criteria.MaxVendors {
		scored = scored[:criteria.MaxVendors]
	}

	return &models.VendorSelectionResult{
		Vendors:              scored,
		CriteriaUsed:         criteria,
		TotalEligibleVendors: total,
	}, nil
}

// DistributeRFQ sends a draft RFQ to the given vendors. Vendor validation is
// all-or-nothing: one unknown, inactive or unapproved vendor rejects the
// whole call before anything is written. Notification failures after commit
// do not undo the distribution.
func (s *rfqService) DistributeRFQ(ctx context.Context, rfqID uuid.UUID, vendorIDs []uuid.UUID, actorID uuid.UUID) (*models.DistributionResult, error) {
	rfq, err := s.getRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	if rfq.Status != models.RFQStatusDraft {
		return nil, common.NewAppError(
			fmt.Sprintf("RFQ %s is %s, only DRAFT RFQs can be distributed", rfq.RFQNumber, rfq.Status),
			http.StatusBadRequest, common.CodeInvalidRFQStatus)
	}
	if len(vendorIDs) == 0 {
		return nil, common.NewAppError("at least one vendor is required", http.StatusBadRequest, common.CodeInvalidVendors)
	}

	vendorIDs = dedupeUUIDs(vendorIDs)
	vendors, err := s.vendorRepo.GetActiveApprovedByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, fmt.Errorf("validate vendors: %w", err)
	}
	if invalid := missingVendorIDs(vendorIDs, vendors); len(invalid) > 0 {
		return nil, common.NewAppError(
			fmt.Sprintf("invalid vendors: %s", joinUUIDs(invalid)),
			http.StatusBadRequest, common.CodeInvalidVendors)
	}

	sentAt := time.Now()
	err = s.txRunner.RunRFQ(ctx, func(rfqRepo repositories.RFQRepository, _ repositories.RequisitionRepository, rfqVendorRepo repositories.RFQVendorRepository) error {
		if err := rfqVendorRepo.CreateBatch(ctx, rfq.ID, vendorIDs, sentAt); err != nil {
			return fmt.Errorf("record rfq vendors: %w", err)
		}
		return rfqRepo.UpdateStatus(ctx, rfq.ID, models.RFQStatusSent)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateRFQCache(ctx, rfq.ID)

	result := &models.DistributionResult{RFQID: rfq.ID}
	for _, vendor := range vendors {
		if err := s.notifyVendor(ctx, rfq, vendor); err != nil {
			log.Printf("rfq %s: notification to vendor %s failed: %v", rfq.RFQNumber, vendor.ID, err)
			result.FailedVendors = append(result.FailedVendors, vendor.ID)
			continue
		}
		result.SentToVendors = append(result.SentToVendors, vendor.ID)
	}
	result.SuccessCount = len(result.SentToVendors)

	s.audit(ctx, rfq.ID, models.ActionDistribute, &actorID,
		models.JSONB{"status": models.RFQStatusDraft},
		models.JSONB{"status": models.RFQStatusSent},
		models.JSONB{
			"vendor_count":   len(vendorIDs),
			"notified_count": result.SuccessCount,
		})
	return result, nil
}

func (s *rfqService) notifyVendor(ctx context.Context, rfq *models.RFQ, vendor *models.Vendor) error {
	subject := fmt.Sprintf("Request for Quotation %s", rfq.RFQNumber)
	deadline := rfq.ResponseDeadline.Format("2006-01-02 15:04 MST")
	body := fmt.Sprintf(
		"Dear %s,\n\nYou are invited to quote on %s (%s).\nDelivery location: %s\nResponse deadline: %s\n\nRegards,\nFlowMarine Procurement",
		vendor.Name, rfq.RFQNumber, rfq.Title, rfq.DeliveryLocation, deadline)

	return s.notificationSvc.Notify(ctx, &models.Notification{
		Type:      models.NotificationTypeEmail,
		EventType: models.EventRFQDistributed,
		EventID:   rfq.ID.String(),
		Recipient: vendor.NotificationAddress(),
		Subject:   &subject,
		Body:      body,
	})
}

// GetRFQByID returns the RFQ with its requisition, vessel, line items,
// distribution records and quotes.
func (s *rfqService) GetRFQByID(ctx context.Context, rfqID uuid.UUID) (*models.RFQDetail, error) {
	rfq, err := s.getRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}

	requisition, err := s.requisitionRepo.GetByID(ctx, rfq.RequisitionID)
	if err != nil {
		return nil, fmt.Errorf("fetch requisition %s: %w", rfq.RequisitionID, err)
	}
	detail := &models.RFQDetail{RFQ: rfq, Requisition: requisition}

	if requisition != nil {
		vessel, err := s.vesselRepo.GetByID(ctx, requisition.VesselID)
		if err != nil {
			return nil, fmt.Errorf("fetch vessel %s: %w", requisition.VesselID, err)
		}
		detail.Vessel = vessel

		items, err := s.requisitionRepo.GetItems(ctx, requisition.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch requisition items: %w", err)
		}
		detail.Items = items
	}

	rfqVendors, err := s.rfqVendorRepo.ListByRFQ(ctx, rfq.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch rfq vendors: %w", err)
	}
	detail.Vendors = rfqVendors

	quotes, err := s.quoteRepo.ListByRFQ(ctx, rfq.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}
	detail.Quotes = quotes

	return detail, nil
}

// UpdateRFQ applies the whitelisted field changes and audits old vs new.
func (s *rfqService) UpdateRFQ(ctx context.Context, rfqID uuid.UUID, update *models.RFQUpdate, actorID uuid.UUID) (*models.RFQ, error) {
	rfq, err := s.getRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}

	oldValues := models.JSONB{
		"title":             rfq.Title,
		"description":       common.SafeString(rfq.Description),
		"delivery_location": rfq.DeliveryLocation,
		"response_deadline": rfq.ResponseDeadline,
		"status":            rfq.Status,
	}

	if update.Title != nil {
		rfq.Title = *update.Title
	}
	if update.Description != nil {
		rfq.Description = update.Description
	}
	if update.DeliveryLocation != nil {
		rfq.DeliveryLocation = *update.DeliveryLocation
	}
	if update.DeliveryDate != nil {
		rfq.DeliveryDate = update.DeliveryDate
	}
	if update.ResponseDeadline != nil {
		rfq.ResponseDeadline = *update.ResponseDeadline
	}
	if update.Status != nil {
		if err := common.ValidateRFQStatus(*update.Status); err != nil {
			return nil, common.NewAppError(err.Error(), http.StatusBadRequest, common.CodeInvalidRFQStatus)
		}
		rfq.Status = *update.Status
	}

	if err := s.rfqRepo.Update(ctx, rfq); err != nil {
		return nil, fmt.Errorf("update rfq %s: %w", rfq.ID, err)
	}
	s.invalidateRFQCache(ctx, rfq.ID)

	s.audit(ctx, rfq.ID, models.ActionUpdate, &actorID, oldValues, models.JSONB{
		"title":             rfq.Title,
		"description":       common.SafeString(rfq.Description),
		"delivery_location": rfq.DeliveryLocation,
		"response_deadline": rfq.ResponseDeadline,
		"status":            rfq.Status,
	}, nil)
	return rfq, nil
}

func (s *rfqService) ListRFQs(ctx context.Context, filter *models.RFQSearchFilter) ([]*models.RFQ, error) {
	if filter == nil {
		filter = &models.RFQSearchFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.rfqRepo.List(ctx, filter)
}

// CancelRFQ marks the RFQ cancelled. Cancelling an already-cancelled RFQ is
// rejected so the audit trail carries exactly one CANCEL entry per RFQ.
func (s *rfqService) CancelRFQ(ctx context.Context, rfqID uuid.UUID, reason string, actorID uuid.UUID) error {
	rfq, err := s.getRFQ(ctx, rfqID)
	if err != nil {
		return err
	}
	if rfq.Status == models.RFQStatusCancelled {
		return common.NewAppError("RFQ is already cancelled", http.StatusBadRequest, common.CodeRFQAlreadyCancelled)
	}

	previousStatus := rfq.Status
	if err := s.rfqRepo.UpdateStatus(ctx, rfq.ID, models.RFQStatusCancelled); err != nil {
		return fmt.Errorf("cancel rfq %s: %w", rfq.ID, err)
	}
	s.invalidateRFQCache(ctx, rfq.ID)

	s.audit(ctx, rfq.ID, models.ActionCancel, &actorID,
		models.JSONB{"status": previousStatus},
		models.JSONB{"status": models.RFQStatusCancelled},
		models.JSONB{"reason": reason})

	// Vendors that already received the RFQ get a cancellation notice.
	if previousStatus == models.RFQStatusSent {
		s.notifyCancellation(ctx, rfq, reason)
	}
	return nil
}

func (s *rfqService) notifyCancellation(ctx context.Context, rfq *models.RFQ, reason string) {
	rfqVendors, err := s.rfqVendorRepo.ListByRFQ(ctx, rfq.ID)
	if err != nil {
		log.Printf("rfq %s: could not list vendors for cancellation notice: %v", rfq.RFQNumber, err)
		return
	}
	for _, rv := range rfqVendors {
		vendor, err := s.vendorRepo.GetByID(ctx, rv.VendorID)
		if err != nil || vendor == nil {
			log.Printf("rfq %s: skip cancellation notice for vendor %s: %v", rfq.RFQNumber, rv.VendorID, err)
			continue
		}
		subject := fmt.Sprintf("RFQ %s cancelled", rfq.RFQNumber)
		body := fmt.Sprintf("Dear %s,\n\nRFQ %s (%s) has been cancelled.\nReason: %s\n\nRegards,\nFlowMarine Procurement",
			vendor.Name, rfq.RFQNumber, rfq.Title, reason)
		if err := s.notificationSvc.Notify(ctx, &models.Notification{
			Type:      models.NotificationTypeEmail,
			EventType: models.EventRFQCancelled,
			EventID:   rfq.ID.String(),
			Recipient: vendor.NotificationAddress(),
			Subject:   &subject,
			Body:      body,
		}); err != nil {
			log.Printf("rfq %s: cancellation notice to vendor %s failed: %v", rfq.RFQNumber, vendor.ID, err)
		}
	}
}

// getRFQ loads an RFQ through the cache, translating absence into the
// workflow's not-found error.
func (s *rfqService) getRFQ(ctx context.Context, rfqID uuid.UUID) (*models.RFQ, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetRFQ(ctx, rfqID); err == nil && cached != nil {
			return cached, nil
		}
	}
	rfq, err := s.rfqRepo.GetByID(ctx, rfqID)
	if err != nil {
		return nil, fmt.Errorf("fetch rfq %s: %w", rfqID, err)
	}
	if rfq == nil {
		return nil, common.NewAppError("RFQ not found", http.StatusNotFound, common.CodeRFQNotFound)
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetRFQ(ctx, rfq, rfqCacheTTL); err != nil {
			log.Printf("cache rfq %s: %v", rfqID, err)
		}
	}
	return rfq, nil
}

func (s *rfqService) invalidateRFQCache(ctx context.Context, rfqID uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteRFQ(ctx, rfqID); err != nil {
		log.Printf("invalidate rfq cache %s: %v", rfqID, err)
	}
}

// audit records workflow history. Audit failures are logged, never surfaced:
// a missing history row must not undo a committed workflow change.
func (s *rfqService) audit(ctx context.Context, rfqID uuid.UUID, action string, userID *uuid.UUID, oldValues, newValues, metadata models.JSONB) {
	if err := s.auditSvc.LogActivity(ctx, "rfq", rfqID.String(), action, userID, oldValues, newValues, metadata); err != nil {
		log.Printf("audit %s on rfq %s: %v", action, rfqID, err)
	}
}

var portCodePattern = regexp.MustCompile(`\b[A-Z]{5}\b`)

// DeriveSelectionCriteria builds default vendor criteria from a delivery
// location string. The last comma-separated token is treated as the country
// and any embedded five-letter uppercase run as a UN/LOCODE port code.
func DeriveSelectionCriteria(deliveryLocation string) *models.VendorSelectionCriteria {
	criteria := &models.VendorSelectionCriteria{
		Capabilities: []string{"delivery"},
		MinRating:    defaultMinRating,
		MaxVendors:   defaultMaxVendors,
	}

	parts := strings.Split(deliveryLocation, ",")
	if country := strings.TrimSpace(parts[len(parts)-1]); country != "" {
		criteria.Countries = []string{country}
	}
	if port := portCodePattern.FindString(deliveryLocation); port != "" {
		criteria.PortCodes = []string{port}
	}
	return criteria
}

// ScoreVendor computes the weighted selection score:
// 40% past performance, 30% location match, 20% capability match,
// 10% order history.
func ScoreVendor(vendor *models.Vendor, criteria *models.VendorSelectionCriteria) *models.ScoredVendor {
	scored := &models.ScoredVendor{
		Vendor:           vendor,
		PerformanceScore: common.SafeFloat64(vendor.OverallScore),
		LocationScore:    locationScore(vendor, criteria),
		CapabilityScore:  capabilityScore(vendor, criteria),
		// Flat placeholder until per-vendor order history is aggregated.
		HistoryScore: 5,
	}
	scored.TotalScore = 0.4*scored.PerformanceScore +
		0.3*scored.LocationScore +
		0.2*scored.CapabilityScore +
		0.1*scored.HistoryScore
	return scored
}

func locationScore(vendor *models.Vendor, criteria *models.VendorSelectionCriteria) float64 {
	score := 0.0
	if overlaps(vendor.ServiceCountries, criteria.Countries) {
		score += 5
	}
	if overlaps(vendor.ServicePorts, criteria.PortCodes) {
		score += 5
	}
	if score > 10 {
		score = 10
	}
	return score
}

func capabilityScore(vendor *models.Vendor, criteria *models.VendorSelectionCriteria) float64 {
	if len(criteria.Capabilities) == 0 {
		return 10
	}
	matched := 0
	for _, want := range criteria.Capabilities {
		for _, have := range vendor.PortCapabilities {
			if strings.EqualFold(want, have) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(criteria.Capabilities)) * 10
}

func overlaps(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(w, h) {
				return true
			}
		}
	}
	return false
}

func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingVendorIDs(requested []uuid.UUID, found []*models.Vendor) []uuid.UUID {
	valid := make(map[uuid.UUID]struct{}, len(found))
	for _, vendor := range found {
		valid[vendor.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := valid[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinUUIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
