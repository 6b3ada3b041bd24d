package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents an append-only audit entry for workflow changes
type AuditLog struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Resource   string     `json:"resource" db:"resource"`
	ResourceID string     `json:"resource_id" db:"resource_id"`
	Action     string     `json:"action" db:"action"`
	OldValues  JSONB      `json:"old_values" db:"old_values"`
	NewValues  JSONB      `json:"new_values" db:"new_values"`
	Metadata   JSONB      `json:"metadata" db:"metadata"`
	UserID     *uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Action constants for audit logs
const (
	ActionCreate     = "CREATE"
	ActionUpdate     = "UPDATE"
	ActionDelete     = "DELETE"
	ActionDistribute = "DISTRIBUTE"
	ActionCancel     = "CANCEL"
)

// JSONB represents a PostgreSQL JSONB column
type JSONB map[string]interface{}

// AuditLogFilters represents filters for querying audit logs
type AuditLogFilters struct {
	Resource   *string    `json:"resource"`
	ResourceID *string    `json:"resource_id"`
	Action     *string    `json:"action"`
	UserID     *uuid.UUID `json:"user_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}
