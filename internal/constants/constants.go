package constants

import "time"

const (
	OrganizationName = "RentLedger"

	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// Signing-link lifetime (both the initial tenant link and the
	// lazily minted landlord link).
	SignatureRequestTTL = 24 * time.Hour

	// Tenant-portal OTP codes
	OTPCodeLength = 6
	OTPCodeTTL    = 5 * time.Minute
	OTPMaxPerHour = 5

	// Tenant-portal access tokens issued after OTP verification.
	PortalTokenTTL = 30 * time.Minute

	// Object-store buckets
	SignedDocsBucket = "signed-documents"
	AuditLogsBucket  = "signing-audit-logs"
)

// Subscription tiers. Price IDs are resolved from config at boot.
const (
	TierStarter      = "starter"
	TierProfessional = "professional"
	TierPortfolio    = "portfolio"
)
