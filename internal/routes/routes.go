package routes

const (
	// Health
	Health = "/health"

	// ───────────────────────────────
	// Public signing (token is the credential)
	// ───────────────────────────────
	SignByToken = "/api/sign/{token}"

	// ───────────────────────────────
	// Landlord dashboard
	// ───────────────────────────────
	DashboardProperties   = "/api/v1/dashboard/properties"
	DashboardPropertyByID = "/api/v1/dashboard/properties/{id}"
	DashboardUnits        = "/api/v1/dashboard/units"
	DashboardUnitVacancy  = "/api/v1/dashboard/units/{id}/vacancy"

	DashboardLeases        = "/api/v1/dashboard/leases"
	DashboardLeaseByID     = "/api/v1/dashboard/leases/{id}"
	DashboardLeaseSend     = "/api/v1/dashboard/leases/{id}/send"
	DashboardLeaseEnd      = "/api/v1/dashboard/leases/{id}/end"
	DashboardLeasePayments = "/api/v1/dashboard/leases/{id}/payments"
	DashboardPayments      = "/api/v1/dashboard/payments"

	DashboardApplications       = "/api/v1/dashboard/applications"
	DashboardApplicationsDecide = "/api/v1/dashboard/applications/decide"

	DashboardNotifications        = "/api/v1/dashboard/notifications"
	DashboardNotificationsRead    = "/api/v1/dashboard/notifications/read"
	DashboardNotificationsReadAll = "/api/v1/dashboard/notifications/read-all"

	DashboardTeam         = "/api/v1/dashboard/team"
	DashboardTeamMemberID = "/api/v1/dashboard/team/{id}"

	DashboardBillingSubscription = "/api/v1/dashboard/billing/subscription"
	DashboardBillingCheckout     = "/api/v1/dashboard/billing/checkout"
	DashboardBillingTier         = "/api/v1/dashboard/billing/tier"
	DashboardBillingCancel       = "/api/v1/dashboard/billing/cancel"

	// ───────────────────────────────
	// Tenant portal (host-scoped)
	// ───────────────────────────────
	PortalSite         = "/api/v1/portal/site"
	PortalApplications = "/api/v1/portal/applications"
	PortalAuthOTP      = "/api/v1/portal/auth/otp"
	PortalAuthVerify   = "/api/v1/portal/auth/verify"
	PortalMyLease      = "/api/v1/portal/me/lease"
	PortalMyPayments   = "/api/v1/portal/me/payments"
)
