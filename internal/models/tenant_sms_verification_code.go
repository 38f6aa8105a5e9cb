package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantSMSVerificationCode for tenant_sms_verification_codes table.
// One-time codes texted to tenants to unlock the self-service portal.
type TenantSMSVerificationCode struct {
	ID               uuid.UUID
	TenantID         *uuid.UUID
	TenantPhone      string
	VerificationCode string
	ExpiresAt        time.Time
	Attempts         int
	Verified         bool
	VerifiedAt       *time.Time
	CreatedAt        time.Time
}
