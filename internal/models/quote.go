package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote statuses
const (
	QuoteStatusSubmitted = "SUBMITTED"
	QuoteStatusAccepted  = "ACCEPTED"
	QuoteStatusRejected  = "REJECTED"
)

// Quote is a vendor's response to a distributed RFQ
type Quote struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	RFQID       uuid.UUID  `json:"rfq_id" db:"rfq_id"`
	VendorID    uuid.UUID  `json:"vendor_id" db:"vendor_id"`
	TotalAmount float64    `json:"total_amount" db:"total_amount"`
	Currency    string     `json:"currency" db:"currency"`
	Status      string     `json:"status" db:"status"`
	ValidUntil  *time.Time `json:"valid_until" db:"valid_until"`
	Notes       *string    `json:"notes" db:"notes"`
	SubmittedAt time.Time  `json:"submitted_at" db:"submitted_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
