package models

import (
	"time"

	"github.com/google/uuid"
)

// Signer roles and request statuses. A request is single-role and
// single-use: `sent → signed` with no other transitions.
const (
	SignerRoleTenant   = "tenant"
	SignerRoleLandlord = "landlord"

	SignatureStatusSent   = "sent"
	SignatureStatusSigned = "signed"
)

// DocumentSignatureRequest is one expiring invitation to sign a specific
// lease document. One row per (lease, role). Rows are immutable once
// Status is "signed"; a second signing attempt on the same token is
// rejected rather than replayed.
type DocumentSignatureRequest struct {
	ID      uuid.UUID `json:"id"`
	LeaseID uuid.UUID `json:"lease_id"`
	Token   string    `json:"-"`

	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	Role           string `json:"role"`
	Status         string `json:"status"`

	ExpiresAt time.Time `json:"expires_at"`

	// Populated only once the request is signed.
	SignerName      *string    `json:"signer_name,omitempty"`
	SignerEmail     *string    `json:"signer_email,omitempty"`
	SignerIP        *string    `json:"signer_ip,omitempty"`
	SignerUserAgent *string    `json:"signer_user_agent,omitempty"`
	SignedAt        *time.Time `json:"signed_at,omitempty"`
	SignedPdfURL    *string    `json:"signed_pdf_url,omitempty"`
	AuditLogURL     *string    `json:"audit_log_url,omitempty"`
	DocumentHash    *string    `json:"document_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the signing link is past its expiry.
func (r *DocumentSignatureRequest) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}
