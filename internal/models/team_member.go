package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TeamRoleOwner   = "owner"
	TeamRoleManager = "manager"
	TeamRoleViewer  = "viewer"
)

// TeamMember is an additional user invited to a landlord account.
type TeamMember struct {
	ID         uuid.UUID  `json:"id"`
	LandlordID uuid.UUID  `json:"landlord_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	InvitedAt  time.Time  `json:"invited_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}
