package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit represents a rentable space inside a property.
type Unit struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"property_id"`
	UnitNumber   string    `json:"unit_number"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	MonthlyRentCents int64 `json:"monthly_rent_cents"`
	Vacant       bool      `json:"vacant"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Versioned
}

func (u *Unit) GetID() string { return u.ID.String() }
