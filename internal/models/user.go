package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles within the procurement workflow
const (
	RoleCrew               = "CREW"
	RoleProcurementOfficer = "PROCUREMENT_OFFICER"
	RoleSuperintendent     = "SUPERINTENDENT"
	RoleAdmin              = "ADMIN"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never serialize in JSON
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Role         string     `json:"role" db:"role"`
	VesselID     *uuid.UUID `json:"vessel_id" db:"vessel_id"` // nil for shore staff
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
