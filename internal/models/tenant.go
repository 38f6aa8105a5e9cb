package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a renter occupying (or applying for) a unit. Distinct sense
// from the multi-tenant "landlord" notion.
type Tenant struct {
	ID         uuid.UUID  `json:"id"`
	LandlordID uuid.UUID  `json:"landlord_id"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Versioned
}

func (t *Tenant) GetID() string { return t.ID.String() }
