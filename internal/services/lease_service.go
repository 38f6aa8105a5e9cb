package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// LeaseService covers dashboard lease management and rent-payment records.
type LeaseService struct {
	leaseRepo   repositories.LeaseRepository
	sigRepo     repositories.SignatureRequestRepository
	tenantRepo  repositories.TenantRepository
	unitRepo    repositories.UnitRepository
	propRepo    repositories.PropertyRepository
	paymentRepo repositories.RentPaymentRepository
	notifRepo   repositories.NotificationRepository
}

func NewLeaseService(
	leaseRepo repositories.LeaseRepository,
	sigRepo repositories.SignatureRequestRepository,
	tenantRepo repositories.TenantRepository,
	unitRepo repositories.UnitRepository,
	propRepo repositories.PropertyRepository,
	paymentRepo repositories.RentPaymentRepository,
	notifRepo repositories.NotificationRepository,
) *LeaseService {
	return &LeaseService{
		leaseRepo:   leaseRepo,
		sigRepo:     sigRepo,
		tenantRepo:  tenantRepo,
		unitRepo:    unitRepo,
		propRepo:    propRepo,
		paymentRepo: paymentRepo,
		notifRepo:   notifRepo,
	}
}

// CreateDraft creates a new draft lease after checking the unit and
// tenant belong to the landlord.
func (s *LeaseService) CreateDraft(ctx context.Context, landlordID uuid.UUID, req internal_dtos.CreateLeaseRequest) (*models.Lease, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}
	unit, err := s.unitRepo.GetByID(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.ErrNotFound
	}
	// Units carry no landlord column; ownership runs through the property.
	prop, err := s.propRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}

	lease := &models.Lease{
		ID:                   uuid.New(),
		LandlordID:           landlordID,
		UnitID:               req.UnitID,
		TenantID:             req.TenantID,
		MonthlyRentCents:     req.MonthlyRentCents,
		SecurityDepositCents: req.SecurityDepositCents,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Status:               models.LeaseStatusDraft,
	}
	if err := s.leaseRepo.Create(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

// UpdateDraft edits lease terms. Only draft leases are editable: once a
// signature has been requested the document is frozen.
func (s *LeaseService) UpdateDraft(ctx context.Context, landlordID uuid.UUID, req internal_dtos.UpdateLeaseRequest) (*models.Lease, error) {
	var final *models.Lease
	err := s.leaseRepo.UpdateWithRetry(ctx, req.LeaseID, func(stored *models.Lease) error {
		if stored.LandlordID != landlordID {
			return utils.ErrNotFound
		}
		if stored.Status != models.LeaseStatusDraft {
			return utils.ErrLeaseNotDraft
		}
		stored.MonthlyRentCents = req.MonthlyRentCents
		stored.SecurityDepositCents = req.SecurityDepositCents
		stored.StartDate = req.StartDate
		stored.EndDate = req.EndDate
		final = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return final, nil
}

// Get returns a lease with its signature-request history.
func (s *LeaseService) Get(ctx context.Context, landlordID, leaseID uuid.UUID) (*internal_dtos.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}
	reqs, err := s.sigRepo.ListByLeaseID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	out := internal_dtos.NewLeaseFromModel(lease, reqs)
	return &out, nil
}

func (s *LeaseService) List(ctx context.Context, landlordID uuid.UUID) ([]*models.Lease, error) {
	return s.leaseRepo.ListByLandlordID(ctx, landlordID)
}

// End marks an active lease ended.
func (s *LeaseService) End(ctx context.Context, landlordID, leaseID uuid.UUID) (*models.Lease, error) {
	var final *models.Lease
	err := s.leaseRepo.UpdateWithRetry(ctx, leaseID, func(stored *models.Lease) error {
		if stored.LandlordID != landlordID {
			return utils.ErrNotFound
		}
		stored.Status = models.LeaseStatusEnded
		final = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return final, nil
}

// RecordPayment stores a manually recorded rent payment against a lease
// and surfaces it as a dashboard notification.
func (s *LeaseService) RecordPayment(ctx context.Context, landlordID uuid.UUID, req internal_dtos.RecordPaymentRequest) (*models.RentPayment, error) {
	lease, err := s.leaseRepo.GetByID(ctx, req.LeaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}

	payment := &models.RentPayment{
		ID:          uuid.New(),
		LeaseID:     req.LeaseID,
		AmountCents: req.AmountCents,
		PaidAt:      req.PaidAt,
		Method:      req.Method,
		Reference:   req.Reference,
		Note:        req.Note,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	n := &models.Notification{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Kind:       models.NotificationKindPaymentRecorded,
		Title:      "Payment recorded",
		Body:       fmt.Sprintf("A rent payment of $%d.%02d was recorded.", req.AmountCents/100, req.AmountCents%100),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		utils.Logger.WithError(err).Error("Failed to record payment notification")
	}

	return payment, nil
}

func (s *LeaseService) ListPayments(ctx context.Context, landlordID, leaseID uuid.UUID) ([]*models.RentPayment, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}
	return s.paymentRepo.ListByLeaseID(ctx, leaseID)
}
