package models

import (
	"time"

	"github.com/google/uuid"
)

// Vessel represents a ship that raises requisitions
type Vessel struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	IMONumber  string    `json:"imo_number" db:"imo_number"`
	Flag       string    `json:"flag" db:"flag"`
	VesselType string    `json:"vessel_type" db:"vessel_type"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
