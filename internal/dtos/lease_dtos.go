package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type CreateLeaseRequest struct {
	UnitID               uuid.UUID  `json:"unit_id" validate:"required"`
	TenantID             uuid.UUID  `json:"tenant_id" validate:"required"`
	MonthlyRentCents     int64      `json:"monthly_rent_cents" validate:"required,gt=0"`
	SecurityDepositCents int64      `json:"security_deposit_cents" validate:"gte=0"`
	StartDate            time.Time  `json:"start_date" validate:"required"`
	EndDate              *time.Time `json:"end_date"` // omit for month-to-month
}

type UpdateLeaseRequest struct {
	LeaseID              uuid.UUID  `json:"lease_id" validate:"required"`
	MonthlyRentCents     int64      `json:"monthly_rent_cents" validate:"required,gt=0"`
	SecurityDepositCents int64      `json:"security_deposit_cents" validate:"gte=0"`
	StartDate            time.Time  `json:"start_date" validate:"required"`
	EndDate              *time.Time `json:"end_date"`
}

// Lease combines the lease row with its signature-request history so the
// dashboard detail page renders from one response.
type Lease struct {
	*models.Lease
	SignatureRequests []*models.DocumentSignatureRequest `json:"signature_requests,omitempty"`
}

func NewLeaseFromModel(l *models.Lease, reqs []*models.DocumentSignatureRequest) Lease {
	return Lease{Lease: l, SignatureRequests: reqs}
}

type RecordPaymentRequest struct {
	LeaseID     uuid.UUID `json:"lease_id" validate:"required"`
	AmountCents int64     `json:"amount_cents" validate:"required,gt=0"`
	PaidAt      time.Time `json:"paid_at" validate:"required"`
	Method      string    `json:"method" validate:"required,oneof=ach card check cash other"`
	Reference   *string   `json:"reference"`
	Note        *string   `json:"note"`
}
