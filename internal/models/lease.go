package models

import (
	"time"

	"github.com/google/uuid"
)

// Lease status values.
const (
	LeaseStatusDraft             = "draft"
	LeaseStatusPendingSignatures = "pending_signatures"
	LeaseStatusActive            = "active"
	LeaseStatusEnded             = "ended"
)

// Lease is a tenancy agreement between a landlord and a tenant for a unit.
//
// TenantSignedAt / LandlordSignedAt are derived convenience timestamps:
// the authoritative signing state lives on the DocumentSignatureRequest
// rows, and these fields are stamped in the same transaction that marks
// a request signed. They are never written from anywhere else.
type Lease struct {
	ID         uuid.UUID `json:"id"`
	LandlordID uuid.UUID `json:"landlord_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	TenantID   uuid.UUID `json:"tenant_id"`

	MonthlyRentCents     int64      `json:"monthly_rent_cents"`
	SecurityDepositCents int64      `json:"security_deposit_cents"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              *time.Time `json:"end_date,omitempty"` // nil = month-to-month

	Status           string     `json:"status"`
	TenantSignedAt   *time.Time `json:"tenant_signed_at,omitempty"`
	LandlordSignedAt *time.Time `json:"landlord_signed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Versioned
}

func (l *Lease) GetID() string { return l.ID.String() }

// MonthToMonth reports whether the lease has no fixed end date.
func (l *Lease) MonthToMonth() bool { return l.EndDate == nil }

// FullyExecuted reports whether both parties have signed.
func (l *Lease) FullyExecuted() bool {
	return l.TenantSignedAt != nil && l.LandlordSignedAt != nil
}
