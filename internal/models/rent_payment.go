package models

import (
	"time"

	"github.com/google/uuid"
)

type RentPayment struct {
	ID          uuid.UUID `json:"id"`
	LeaseID     uuid.UUID `json:"lease_id"`
	AmountCents int64     `json:"amount_cents"`
	PaidAt      time.Time `json:"paid_at"`
	Method      string    `json:"method"`
	Reference   *string   `json:"reference,omitempty"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
