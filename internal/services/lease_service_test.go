package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

func (f *fakeLeaseRepo) Create(_ context.Context, l *models.Lease) error {
	f.leases[l.ID] = l
	return nil
}

func (f *fakeLeaseRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Lease) error) error {
	l := f.leases[id]
	if l == nil {
		return utils.ErrNotFound
	}
	return mutate(l)
}

type fakePaymentRepo struct {
	payments []*models.RentPayment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *models.RentPayment) error {
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentRepo) ListByLeaseID(_ context.Context, leaseID uuid.UUID) ([]*models.RentPayment, error) {
	var out []*models.RentPayment
	for _, p := range f.payments {
		if p.LeaseID == leaseID {
			out = append(out, p)
		}
	}
	return out, nil
}

type leaseFixture struct {
	svc       *LeaseService
	leaseRepo *fakeLeaseRepo
	payments  *fakePaymentRepo
	notifs    *fakeNotifRepo

	landlordID uuid.UUID
	tenant     *models.Tenant
	unit       *models.Unit
	prop       *models.Property
}

func newLeaseFixture(t *testing.T) *leaseFixture {
	t.Helper()

	landlordID := uuid.New()
	tenant := &models.Tenant{ID: uuid.New(), LandlordID: landlordID, FullName: "Jordan Reyes"}
	prop := &models.Property{ID: uuid.New(), LandlordID: landlordID, Address: "412 Maple Ct"}
	unit := &models.Unit{ID: uuid.New(), PropertyID: prop.ID, UnitNumber: "1A"}

	fx := &leaseFixture{
		leaseRepo: &fakeLeaseRepo{
			leases:   map[uuid.UUID]*models.Lease{},
			statuses: map[uuid.UUID]string{},
		},
		payments:   &fakePaymentRepo{},
		notifs:     &fakeNotifRepo{},
		landlordID: landlordID,
		tenant:     tenant,
		unit:       unit,
		prop:       prop,
	}
	fx.svc = NewLeaseService(
		fx.leaseRepo,
		&fakeSigRepo{byToken: map[string]*models.DocumentSignatureRequest{}, pending: map[string]*models.DocumentSignatureRequest{}},
		&fakeTenantRepo{tenant: tenant},
		&fakeUnitRepo{unit: unit},
		&fakePropRepo{prop: prop},
		fx.payments,
		fx.notifs,
	)
	return fx
}

func (fx *leaseFixture) addLease(status string) *models.Lease {
	l := &models.Lease{
		ID:               uuid.New(),
		LandlordID:       fx.landlordID,
		UnitID:           fx.unit.ID,
		TenantID:         fx.tenant.ID,
		MonthlyRentCents: 135000,
		StartDate:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:           status,
	}
	fx.leaseRepo.leases[l.ID] = l
	return l
}

func TestCreateDraft(t *testing.T) {
	fx := newLeaseFixture(t)

	lease, err := fx.svc.CreateDraft(context.Background(), fx.landlordID, dtos.CreateLeaseRequest{
		UnitID:           fx.unit.ID,
		TenantID:         fx.tenant.ID,
		MonthlyRentCents: 135000,
		StartDate:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, models.LeaseStatusDraft, lease.Status)
	assert.Nil(t, lease.EndDate)
	assert.Contains(t, fx.leaseRepo.leases, lease.ID)
}

func TestCreateDraftRejectsForeignTenant(t *testing.T) {
	fx := newLeaseFixture(t)

	_, err := fx.svc.CreateDraft(context.Background(), uuid.New(), dtos.CreateLeaseRequest{
		UnitID:           fx.unit.ID,
		TenantID:         fx.tenant.ID,
		MonthlyRentCents: 135000,
		StartDate:        time.Now(),
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCreateDraftRejectsForeignUnit(t *testing.T) {
	fx := newLeaseFixture(t)
	// The unit's property belongs to a different landlord; the tenant
	// check alone must not let the draft through.
	fx.prop.LandlordID = uuid.New()

	_, err := fx.svc.CreateDraft(context.Background(), fx.landlordID, dtos.CreateLeaseRequest{
		UnitID:           fx.unit.ID,
		TenantID:         fx.tenant.ID,
		MonthlyRentCents: 135000,
		StartDate:        time.Now(),
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Empty(t, fx.leaseRepo.leases)
}

func TestUpdateDraftEditsTerms(t *testing.T) {
	fx := newLeaseFixture(t)
	lease := fx.addLease(models.LeaseStatusDraft)

	updated, err := fx.svc.UpdateDraft(context.Background(), fx.landlordID, dtos.UpdateLeaseRequest{
		LeaseID:          lease.ID,
		MonthlyRentCents: 142500,
		StartDate:        lease.StartDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(142500), updated.MonthlyRentCents)
}

func TestUpdateDraftFrozenAfterSend(t *testing.T) {
	fx := newLeaseFixture(t)
	lease := fx.addLease(models.LeaseStatusPendingSignatures)

	_, err := fx.svc.UpdateDraft(context.Background(), fx.landlordID, dtos.UpdateLeaseRequest{
		LeaseID:          lease.ID,
		MonthlyRentCents: 142500,
		StartDate:        lease.StartDate,
	})
	assert.ErrorIs(t, err, utils.ErrLeaseNotDraft)
	assert.Equal(t, int64(135000), lease.MonthlyRentCents)
}

func TestEndLease(t *testing.T) {
	fx := newLeaseFixture(t)
	lease := fx.addLease(models.LeaseStatusActive)

	ended, err := fx.svc.End(context.Background(), fx.landlordID, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaseStatusEnded, ended.Status)
}

func TestRecordPaymentNotifies(t *testing.T) {
	fx := newLeaseFixture(t)
	lease := fx.addLease(models.LeaseStatusActive)

	payment, err := fx.svc.RecordPayment(context.Background(), fx.landlordID, dtos.RecordPaymentRequest{
		LeaseID:     lease.ID,
		AmountCents: 135000,
		PaidAt:      time.Now(),
		Method:      "ach",
	})
	require.NoError(t, err)

	assert.Len(t, fx.payments.payments, 1)
	require.Len(t, fx.notifs.notifications, 1)
	assert.Equal(t, models.NotificationKindPaymentRecorded, fx.notifs.notifications[0].Kind)
	assert.Contains(t, fx.notifs.notifications[0].Body, "$1350.00")
	assert.Equal(t, lease.ID, payment.LeaseID)
}

func TestRecordPaymentScopedToOwner(t *testing.T) {
	fx := newLeaseFixture(t)
	lease := fx.addLease(models.LeaseStatusActive)

	_, err := fx.svc.RecordPayment(context.Background(), uuid.New(), dtos.RecordPaymentRequest{
		LeaseID:     lease.ID,
		AmountCents: 135000,
		PaidAt:      time.Now(),
		Method:      "ach",
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Empty(t, fx.payments.payments)
}
