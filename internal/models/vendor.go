package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a supplier in the vendor pool
type Vendor struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	ContactEmail     *string   `json:"contact_email" db:"contact_email"`
	Email            *string   `json:"email" db:"email"`
	Phone            *string   `json:"phone" db:"phone"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	IsApproved       bool      `json:"is_approved" db:"is_approved"`
	OverallScore     *float64  `json:"overall_score" db:"overall_score"`
	ServiceCountries []string  `json:"service_countries" db:"service_countries"`
	ServicePorts     []string  `json:"service_ports" db:"service_ports"`
	PortCapabilities []string  `json:"port_capabilities" db:"port_capabilities"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// NotificationAddress returns the address a vendor should be notified at,
// preferring the dedicated contact email over the general one.
func (v *Vendor) NotificationAddress() string {
	if v.ContactEmail != nil && *v.ContactEmail != "" {
		return *v.ContactEmail
	}
	if v.Email != nil && *v.Email != "" {
		return *v.Email
	}
	return ""
}

// VendorSearchFilter holds filter criteria for vendor listing
type VendorSearchFilter struct {
	Query      string   `json:"query,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
	IsApproved *bool    `json:"is_approved,omitempty"`
	MinScore   *float64 `json:"min_score,omitempty"`
	Country    *string  `json:"country,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}
