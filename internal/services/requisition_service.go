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

// CreateRequisitionInput carries a new requisition with its line items.
type CreateRequisitionInput struct {
	VesselID         uuid.UUID                `json:"vessel_id"`
	Number           string                   `json:"number"`
	Currency         string                   `json:"currency"`
	DeliveryLocation string                   `json:"delivery_location"`
	DeliveryDate     *time.Time               `json:"delivery_date"`
	Notes            *string                  `json:"notes"`
	Items            []CreateRequisitionItem  `json:"items"`
}

type CreateRequisitionItem struct {
	Description   string   `json:"description"`
	ImpaCode      *string  `json:"impa_code"`
	Quantity      int      `json:"quantity"`
	Unit          string   `json:"unit"`
	EstimatedCost *float64 `json:"estimated_cost"`
}

// RequisitionDetail is a requisition with its line items.
type RequisitionDetail struct {
	Requisition *models.Requisition       `json:"requisition"`
	Items       []*models.RequisitionItem `json:"items"`
}

type RequisitionServiceInterface interface {
	CreateRequisition(ctx context.Context, input *CreateRequisitionInput, actorID uuid.UUID) (*models.Requisition, error)
	GetRequisitionByID(ctx context.Context, id uuid.UUID) (*RequisitionDetail, error)
	ListRequisitions(ctx context.Context, filter *models.RequisitionSearchFilter) ([]*models.Requisition, error)
	SubmitRequisition(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	ApproveRequisition(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	RejectRequisition(ctx context.Context, id uuid.UUID, reason string, actorID uuid.UUID) error
}

type requisitionService struct {
	requisitionRepo repositories.RequisitionRepository
	vesselRepo      repositories.VesselRepository
	auditSvc        AuditLogsService
}

func NewRequisitionService(requisitionRepo repositories.RequisitionRepository, vesselRepo repositories.VesselRepository, auditSvc AuditLogsService) RequisitionServiceInterface {
	return &requisitionService{
		requisitionRepo: requisitionRepo,
		vesselRepo:      vesselRepo,
		auditSvc:        auditSvc,
	}
}

func (s *requisitionService) CreateRequisition(ctx context.Context, input *CreateRequisitionInput, actorID uuid.UUID) (*models.Requisition, error) {
	vessel, err := s.vesselRepo.GetByID(ctx, input.VesselID)
	if err != nil {
		return nil, fmt.Errorf("fetch vessel %s: %w", input.VesselID, err)
	}
	if vessel == nil {
		return nil, common.NewAppError("vessel not found", http.StatusNotFound, "VESSEL_NOT_FOUND")
	}
	if len(input.Items) == 0 {
		return nil, common.NewAppError("requisition requires at least one item", http.StatusBadRequest, "INVALID_REQUISITION")
	}

	requisition := &models.Requisition{
		ID:               uuid.New(),
		VesselID:         input.VesselID,
		Number:           input.Number,
		Status:           models.RequisitionStatusDraft,
		Currency:         input.Currency,
		DeliveryLocation: input.DeliveryLocation,
		DeliveryDate:     input.DeliveryDate,
		Notes:            input.Notes,
		CreatedBy:        actorID,
	}
	items := make([]*models.RequisitionItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, common.NewAppError(
				fmt.Sprintf("item %q quantity must be positive", in.Description),
				http.StatusBadRequest, "INVALID_REQUISITION")
		}
		items = append(items, &models.RequisitionItem{
			ID:            uuid.New(),
			RequisitionID: requisition.ID,
			Description:   in.Description,
			ImpaCode:      in.ImpaCode,
			Quantity:      in.Quantity,
			Unit:          in.Unit,
			EstimatedCost: in.EstimatedCost,
		})
	}

	if err := s.requisitionRepo.Create(ctx, requisition, items); err != nil {
		return nil, fmt.Errorf("create requisition: %w", err)
	}

	s.auditRequisition(ctx, requisition.ID, models.ActionCreate, &actorID, nil, models.JSONB{
		"number":     requisition.Number,
		"vessel_id":  requisition.VesselID.String(),
		"status":     requisition.Status,
		"item_count": len(items),
	})
	return requisition, nil
}

func (s *requisitionService) GetRequisitionByID(ctx context.Context, id uuid.UUID) (*RequisitionDetail, error) {
	requisition, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch requisition %s: %w", id, err)
	}
	if requisition == nil {
		return nil, common.NewAppError("requisition not found", http.StatusNotFound, common.CodeRequisitionNotFound)
	}
	items, err := s.requisitionRepo.GetItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch requisition items: %w", err)
	}
	return &RequisitionDetail{Requisition: requisition, Items: items}, nil
}

func (s *requisitionService) ListRequisitions(ctx context.Context, filter *models.RequisitionSearchFilter) ([]*models.Requisition, error) {
	if filter == nil {
		filter = &models.RequisitionSearchFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.requisitionRepo.List(ctx, filter)
}

func (s *requisitionService) SubmitRequisition(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	return s.transition(ctx, id, actorID, models.RequisitionStatusDraft, models.RequisitionStatusSubmitted, nil)
}

func (s *requisitionService) ApproveRequisition(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	return s.transition(ctx, id, actorID, models.RequisitionStatusSubmitted, models.RequisitionStatusApproved, nil)
}

func (s *requisitionService) RejectRequisition(ctx context.Context, id uuid.UUID, reason string, actorID uuid.UUID) error {
	return s.transition(ctx, id, actorID, models.RequisitionStatusSubmitted, models.RequisitionStatusRejected, models.JSONB{"reason": reason})
}

func (s *requisitionService) transition(ctx context.Context, id, actorID uuid.UUID, from, to string, metadata models.JSONB) error {
	requisition, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch requisition %s: %w", id, err)
	}
	if requisition == nil {
		return common.NewAppError("requisition not found", http.StatusNotFound, common.CodeRequisitionNotFound)
	}
	if requisition.Status != from {
		return common.NewAppError(
			fmt.Sprintf("requisition %s is %s, expected %s", requisition.Number, requisition.Status, from),
			http.StatusBadRequest, "INVALID_REQUISITION_STATUS")
	}
	if err := s.requisitionRepo.UpdateStatus(ctx, id, to); err != nil {
		return fmt.Errorf("update requisition %s status: %w", id, err)
	}
	s.auditRequisition(ctx, id, models.ActionUpdate, &actorID, models.JSONB{"status": from}, models.JSONB{"status": to}, metadata)
	return nil
}

func (s *requisitionService) auditRequisition(ctx context.Context, id uuid.UUID, action string, userID *uuid.UUID, oldValues, newValues models.JSONB, metadata ...models.JSONB) {
	var meta models.JSONB
	if len(metadata) > 0 {
		meta = metadata[0]
	}
	if err := s.auditSvc.LogActivity(ctx, "requisition", id.String(), action, userID, oldValues, newValues, meta); err != nil {
		log.Printf("audit %s on requisition %s: %v", action, id, err)
	}
}
