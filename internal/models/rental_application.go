package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusDeclined = "declined"
)

// RentalApplication is submitted by a visitor on a landlord's branded
// portal for a specific vacant unit.
type RentalApplication struct {
	ID         uuid.UUID  `json:"id"`
	LandlordID uuid.UUID  `json:"landlord_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`

	ApplicantName      string    `json:"applicant_name"`
	ApplicantEmail     string    `json:"applicant_email"`
	ApplicantPhone     string    `json:"applicant_phone"`
	MonthlyIncomeCents int64     `json:"monthly_income_cents"`
	MoveInDate         time.Time `json:"move_in_date"`

	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	Versioned
}

func (a *RentalApplication) GetID() string { return a.ID.String() }
