package dtos

import (
	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

// SiteResponse is the branded landing payload for a landlord's portal.
type SiteResponse struct {
	DisplayName string         `json:"display_name"`
	LogoURL     *string        `json:"logo_url,omitempty"`
	AccentColor string         `json:"accent_color"`
	Vacancies   []*models.Unit `json:"vacancies"`
}

type SubmitApplicationRequest struct {
	PropertyID         uuid.UUID  `json:"property_id" validate:"required"`
	UnitID             *uuid.UUID `json:"unit_id"`
	ApplicantName      string     `json:"applicant_name" validate:"required"`
	ApplicantEmail     string     `json:"applicant_email" validate:"required,email"`
	ApplicantPhone     string     `json:"applicant_phone" validate:"required"`
	MonthlyIncomeCents int64      `json:"monthly_income_cents" validate:"required,gt=0"`
	MoveInDate         string     `json:"move_in_date" validate:"required,datetime=2006-01-02"`
}

type SubmitApplicationResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
}

type DecideApplicationRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	Approve       bool      `json:"approve"`
}

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type VerifyOTPResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// PortalLease is the tenant-facing view of their current lease.
type PortalLease struct {
	*models.Lease
	PropertyAddress string `json:"property_address"`
	UnitNumber      string `json:"unit_number"`
}
