package models

import (
	"time"

	"github.com/google/uuid"
)

// Compliance conventions tracked per vessel certificate
const (
	ConventionSOLAS  = "SOLAS"
	ConventionMARPOL = "MARPOL"
	ConventionISM    = "ISM"
)

// Certificate is a vessel compliance certificate
type Certificate struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VesselID   uuid.UUID `json:"vessel_id" db:"vessel_id"`
	Convention string    `json:"convention" db:"convention"`
	Name       string    `json:"name" db:"name"`
	IssuedAt   time.Time `json:"issued_at" db:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Expired reports whether the certificate has lapsed at the given instant.
func (c *Certificate) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// ExpiringWithin reports whether the certificate lapses inside the window.
func (c *Certificate) ExpiringWithin(now time.Time, window time.Duration) bool {
	return !c.Expired(now) && c.ExpiresAt.Before(now.Add(window))
}

// ComplianceAlert flags a certificate problem on a vessel
type ComplianceAlert struct {
	VesselID      uuid.UUID `json:"vessel_id"`
	CertificateID uuid.UUID `json:"certificate_id"`
	Convention    string    `json:"convention"`
	Severity      string    `json:"severity"` // warning, critical
	Message       string    `json:"message"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ComplianceReport is a per-vessel compliance snapshot
type ComplianceReport struct {
	VesselID         uuid.UUID          `json:"vessel_id"`
	GeneratedAt      time.Time          `json:"generated_at"`
	OverallScore     float64            `json:"overall_score"`
	ConventionScores map[string]float64 `json:"convention_scores"`
	Alerts           []*ComplianceAlert `json:"alerts"`
	TotalCertificates int               `json:"total_certificates"`
	ValidCertificates int               `json:"valid_certificates"`
}
