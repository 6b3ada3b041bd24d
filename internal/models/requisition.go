package models

import (
	"time"

	"github.com/google/uuid"
)

// Requisition statuses
const (
	RequisitionStatusDraft          = "DRAFT"
	RequisitionStatusSubmitted      = "SUBMITTED"
	RequisitionStatusApproved       = "APPROVED"
	RequisitionStatusRejected       = "REJECTED"
	RequisitionStatusConvertedToRFQ = "CONVERTED_TO_RFQ"
)

// Requisition represents a vessel's purchase request
type Requisition struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	VesselID         uuid.UUID  `json:"vessel_id" db:"vessel_id"`
	Number           string     `json:"number" db:"number"`
	Status           string     `json:"status" db:"status"`
	Currency         string     `json:"currency" db:"currency"`
	DeliveryLocation string     `json:"delivery_location" db:"delivery_location"`
	DeliveryDate     *time.Time `json:"delivery_date" db:"delivery_date"`
	Notes            *string    `json:"notes" db:"notes"`
	CreatedBy        uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// RequisitionItem is a single line on a requisition
type RequisitionItem struct {
	ID            uuid.UUID `json:"id" db:"id"`
	RequisitionID uuid.UUID `json:"requisition_id" db:"requisition_id"`
	Description   string    `json:"description" db:"description"`
	ImpaCode      *string   `json:"impa_code" db:"impa_code"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Unit          string    `json:"unit" db:"unit"`
	EstimatedCost *float64  `json:"estimated_cost" db:"estimated_cost"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// RequisitionSearchFilter holds filter criteria for requisition listing
type RequisitionSearchFilter struct {
	Status   *string    `json:"status,omitempty"`
	VesselID *uuid.UUID `json:"vessel_id,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Limit    int        `json:"limit,omitempty"`
	Offset   int        `json:"offset,omitempty"`
}
