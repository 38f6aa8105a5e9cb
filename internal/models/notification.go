package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds surfaced on the landlord dashboard.
const (
	NotificationKindApplicationReceived = "application_received"
	NotificationKindApplicationDecided  = "application_decided"
	NotificationKindLeaseSigned         = "lease_signed"
	NotificationKindLeaseExecuted       = "lease_executed"
	NotificationKindPaymentRecorded     = "payment_recorded"
)

type Notification struct {
	ID         uuid.UUID `json:"id"`
	LandlordID uuid.UUID `json:"landlord_id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
