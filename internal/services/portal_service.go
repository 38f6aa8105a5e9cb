package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	"github.com/vegaswarrior/Property-Management-sub001/internal/constants"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/middleware"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// PortalService backs the tenant-facing portal: branded site info,
// SMS-code login, and the tenant's own lease and payment history.
type PortalService struct {
	cfg *config.Config

	landlordRepo repositories.LandlordRepository
	tenantRepo   repositories.TenantRepository
	leaseRepo    repositories.LeaseRepository
	unitRepo     repositories.UnitRepository
	propRepo     repositories.PropertyRepository
	paymentRepo  repositories.RentPaymentRepository
	smsRepo      repositories.TenantSMSVerificationRepository

	tw *twilio.RestClient
}

func NewPortalService(
	cfg *config.Config,
	landlordRepo repositories.LandlordRepository,
	tenantRepo repositories.TenantRepository,
	leaseRepo repositories.LeaseRepository,
	unitRepo repositories.UnitRepository,
	propRepo repositories.PropertyRepository,
	paymentRepo repositories.RentPaymentRepository,
	smsRepo repositories.TenantSMSVerificationRepository,
	tw *twilio.RestClient,
) *PortalService {
	return &PortalService{
		cfg:          cfg,
		landlordRepo: landlordRepo,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		unitRepo:     unitRepo,
		propRepo:     propRepo,
		paymentRepo:  paymentRepo,
		smsRepo:      smsRepo,
		tw:           tw,
	}
}

// Site returns the landlord's branding plus currently vacant units.
func (s *PortalService) Site(ctx context.Context, landlordID uuid.UUID) (*internal_dtos.SiteResponse, error) {
	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, utils.ErrNotFound
	}
	vacancies, err := s.unitRepo.ListVacantByLandlordID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	return &internal_dtos.SiteResponse{
		DisplayName: landlord.DisplayName,
		LogoURL:     landlord.LogoURL,
		AccentColor: landlord.AccentColor,
		Vacancies:   vacancies,
	}, nil
}

// RequestOTP sends a login code to a tenant's phone. The phone must
// belong to a tenant of this landlord; requests are rate-limited per
// phone per hour.
func (s *PortalService) RequestOTP(ctx context.Context, landlordID uuid.UUID, phone string) error {
	tenant, err := s.tenantRepo.GetByPhone(ctx, landlordID, phone)
	if err != nil {
		return err
	}
	if tenant == nil {
		return utils.ErrNotFound
	}

	recent, err := s.smsRepo.CountRecentByPhone(ctx, phone, time.Now().Add(-time.Hour))
	if err != nil {
		return err
	}
	if recent >= constants.OTPMaxPerHour {
		return utils.ErrRateLimitExceeded
	}

	existing, _ := s.smsRepo.GetCode(ctx, phone)
	if existing != nil {
		_ = s.smsRepo.DeleteCode(ctx, existing.ID)
	}

	code := utils.RandomNumericString(constants.OTPCodeLength)
	expiresAt := time.Now().Add(constants.OTPCodeTTL)
	if err := s.smsRepo.CreateCode(ctx, &tenant.ID, phone, code, expiresAt); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(fmt.Sprintf("Your %s login code is %s", constants.OrganizationName, code))

	if _, sendErr := s.tw.Api.CreateMessage(params); sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send login SMS to %s via Twilio", phone)
		return fmt.Errorf("%w: failed to send sms via twilio: %v", utils.ErrExternalServiceFailure, sendErr)
	}
	return nil
}

// VerifyOTP checks a login code and, on success, issues a short-lived
// portal access token for the tenant.
func (s *PortalService) VerifyOTP(ctx context.Context, landlordID uuid.UUID, phone, code string) (*internal_dtos.VerifyOTPResponse, error) {
	tenant, err := s.tenantRepo.GetByPhone(ctx, landlordID, phone)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.ErrNotFound
	}

	rec, err := s.smsRepo.GetCode(ctx, phone)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Verified {
		return nil, utils.ErrInvalidOTP
	}
	if rec.VerificationCode != code || time.Now().After(rec.ExpiresAt) {
		_ = s.smsRepo.IncrementAttempts(ctx, rec.ID)
		return nil, utils.ErrInvalidOTP
	}

	if err := s.smsRepo.MarkVerified(ctx, rec.ID); err != nil {
		return nil, err
	}

	token, err := middleware.GenerateAccessToken(s.cfg.RSAPrivateKey, tenant.ID.String(), middleware.ScopePortal, constants.PortalTokenTTL)
	if err != nil {
		return nil, err
	}
	return &internal_dtos.VerifyOTPResponse{
		AccessToken: token,
		ExpiresIn:   int64(constants.PortalTokenTTL.Seconds()),
	}, nil
}

// MyLease returns the authenticated tenant's current lease with its
// property context.
func (s *PortalService) MyLease(ctx context.Context, landlordID, tenantID uuid.UUID) (*internal_dtos.PortalLease, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}

	lease, err := s.leaseRepo.GetCurrentByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrNotFound
	}

	unit, err := s.unitRepo.GetByID(ctx, lease.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.ErrNotFound
	}
	prop, err := s.propRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}

	return &internal_dtos.PortalLease{
		Lease:           lease,
		PropertyAddress: fmt.Sprintf("%s, %s, %s %s", prop.Address, prop.City, prop.State, prop.ZipCode),
		UnitNumber:      unit.UnitNumber,
	}, nil
}

// MyPayments lists the tenant's payment history for their current lease.
func (s *PortalService) MyPayments(ctx context.Context, landlordID, tenantID uuid.UUID) ([]*models.RentPayment, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}

	lease, err := s.leaseRepo.GetCurrentByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrNotFound
	}
	return s.paymentRepo.ListByLeaseID(ctx, lease.ID)
}
