package models

import (
	"time"

	"github.com/google/uuid"
)

// RFQ statuses
const (
	RFQStatusDraft     = "DRAFT"
	RFQStatusSent      = "SENT"
	RFQStatusCancelled = "CANCELLED"
)

// RFQ is a request for quotation generated from an approved requisition
type RFQ struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	RFQNumber        string     `json:"rfq_number" db:"rfq_number"`
	RequisitionID    uuid.UUID  `json:"requisition_id" db:"requisition_id"`
	Title            string     `json:"title" db:"title"`
	Description      *string    `json:"description" db:"description"`
	Status           string     `json:"status" db:"status"`
	Currency         string     `json:"currency" db:"currency"`
	DeliveryLocation string     `json:"delivery_location" db:"delivery_location"`
	DeliveryDate     *time.Time `json:"delivery_date" db:"delivery_date"`
	ResponseDeadline time.Time  `json:"response_deadline" db:"response_deadline"`
	CreatedBy        uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// RFQVendor records the distribution of an RFQ to a vendor
type RFQVendor struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	RFQID       uuid.UUID  `json:"rfq_id" db:"rfq_id"`
	VendorID    uuid.UUID  `json:"vendor_id" db:"vendor_id"`
	SentAt      time.Time  `json:"sent_at" db:"sent_at"`
	RespondedAt *time.Time `json:"responded_at" db:"responded_at"`
}

// RFQDetail is an RFQ with its nested associations, returned by GetRFQByID
type RFQDetail struct {
	RFQ         *RFQ               `json:"rfq"`
	Requisition *Requisition       `json:"requisition"`
	Vessel      *Vessel            `json:"vessel"`
	Items       []*RequisitionItem `json:"items"`
	Vendors     []*RFQVendor       `json:"vendors"`
	Quotes      []*Quote           `json:"quotes"`
}

// VendorSelectionCriteria narrows the eligible vendor pool for an RFQ.
// Empty slices/zero values mean the corresponding filter is skipped.
type VendorSelectionCriteria struct {
	Countries    []string `json:"countries,omitempty"`
	PortCodes    []string `json:"port_codes,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	MinRating    float64  `json:"min_rating,omitempty"`
	MaxVendors   int      `json:"max_vendors,omitempty"`
}

// ScoredVendor pairs a vendor with its selection score breakdown
type ScoredVendor struct {
	Vendor          *Vendor `json:"vendor"`
	TotalScore      float64 `json:"total_score"`
	PerformanceScore float64 `json:"performance_score"`
	LocationScore   float64 `json:"location_score"`
	CapabilityScore float64 `json:"capability_score"`
	HistoryScore    float64 `json:"history_score"`
}

// VendorSelectionResult is the outcome of scoring the eligible vendor pool
type VendorSelectionResult struct {
	Vendors              []*ScoredVendor          `json:"vendors"`
	CriteriaUsed         *VendorSelectionCriteria `json:"criteria_used"`
	TotalEligibleVendors int                      `json:"total_eligible_vendors"`
}

// DistributionResult summarizes a distribution call, including per-vendor
// notification outcomes. Partial notification failure is data, not an error.
type DistributionResult struct {
	RFQID         uuid.UUID   `json:"rfq_id"`
	SentToVendors []uuid.UUID `json:"sent_to_vendors"`
	FailedVendors []uuid.UUID `json:"failed_vendors"`
	SuccessCount  int         `json:"success_count"`
}

// RFQSearchFilter holds filter criteria for RFQ listing
type RFQSearchFilter struct {
	Status   *string    `json:"status,omitempty"`
	VesselID *uuid.UUID `json:"vessel_id,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Limit    int        `json:"limit,omitempty"`
	Offset   int        `json:"offset,omitempty"`
}

// RFQUpdate carries the whitelisted updatable RFQ fields
type RFQUpdate struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	DeliveryLocation *string    `json:"delivery_location,omitempty"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`
	ResponseDeadline *time.Time `json:"response_deadline,omitempty"`
	Status           *string    `json:"status,omitempty"`
}
