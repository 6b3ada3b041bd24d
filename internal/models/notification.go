package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType represents the delivery channel
type NotificationType string

const (
	NotificationTypeEmail   NotificationType = "email"
	NotificationTypeWebhook NotificationType = "webhook"
)

// Notification delivery statuses. Rows are written before dispatch and
// updated afterwards, so the table doubles as an outbox.
const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// Notification event types
const (
	EventRFQDistributed    = "rfq.distributed"
	EventRFQCancelled      = "rfq.cancelled"
	EventRFQDeadlinePassed = "rfq.deadline_passed"
	EventQuoteSubmitted    = "quote.submitted"
	EventCertificateExpiry = "certificate.expiry"
)

// Notification is a queued or sent outbound message
type Notification struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	Type       NotificationType `json:"type" db:"type"`
	EventType  string           `json:"event_type" db:"event_type"`
	EventID    string           `json:"event_id" db:"event_id"`
	Recipient  string           `json:"recipient" db:"recipient"`
	Subject    *string          `json:"subject" db:"subject"`
	Body       string           `json:"body" db:"body"`
	Status     string           `json:"status" db:"status"`
	Error      *string          `json:"error" db:"error"`
	SentAt     *time.Time       `json:"sent_at" db:"sent_at"`
	RetryCount int              `json:"retry_count" db:"retry_count"`
	MaxRetries int              `json:"max_retries" db:"max_retries"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}
