package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	"github.com/vegaswarrior/Property-Management-sub001/internal/middleware"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

type fakePhoneTenantRepo struct {
	repositories.TenantRepository
	tenant *models.Tenant
}

func (f *fakePhoneTenantRepo) GetByPhone(_ context.Context, landlordID uuid.UUID, phone string) (*models.Tenant, error) {
	if f.tenant != nil && f.tenant.LandlordID == landlordID && f.tenant.Phone == phone {
		return f.tenant, nil
	}
	return nil, nil
}

func (f *fakePhoneTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	if f.tenant != nil && f.tenant.ID == id {
		return f.tenant, nil
	}
	return nil, nil
}

type fakeSMSRepo struct {
	repositories.TenantSMSVerificationRepository

	code        *models.TenantSMSVerificationCode
	recentCount int
	attempts    int
	verified    bool
	deleted     bool
}

func (f *fakeSMSRepo) GetCode(_ context.Context, _ string) (*models.TenantSMSVerificationCode, error) {
	return f.code, nil
}

func (f *fakeSMSRepo) DeleteCode(_ context.Context, _ uuid.UUID) error {
	f.deleted = true
	return nil
}

func (f *fakeSMSRepo) IncrementAttempts(_ context.Context, _ uuid.UUID) error {
	f.attempts++
	return nil
}

func (f *fakeSMSRepo) MarkVerified(_ context.Context, _ uuid.UUID) error {
	f.verified = true
	return nil
}

func (f *fakeSMSRepo) CountRecentByPhone(_ context.Context, _ string, _ time.Time) (int, error) {
	return f.recentCount, nil
}

func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv
}

func newPortalFixture(t *testing.T) (*PortalService, *models.Tenant, *fakeSMSRepo, *rsa.PrivateKey) {
	t.Helper()

	tenant := &models.Tenant{
		ID:         uuid.New(),
		LandlordID: uuid.New(),
		FullName:   "Jordan Reyes",
		Phone:      "+12565550123",
	}
	smsRepo := &fakeSMSRepo{}
	priv := testRSAKey(t)
	cfg := &config.Config{
		TwilioFromNumber: "+15005550006",
		RSAPrivateKey:    priv,
		RSAPublicKey:     &priv.PublicKey,
	}

	svc := NewPortalService(
		cfg,
		&fakeLandlordRepo{},
		&fakePhoneTenantRepo{tenant: tenant},
		&fakeLeaseRepo{leases: map[uuid.UUID]*models.Lease{}, statuses: map[uuid.UUID]string{}},
		&fakeUnitRepo{},
		&fakePropRepo{},
		nil,
		smsRepo,
		nil,
	)
	return svc, tenant, smsRepo, priv
}

func activeCode(tenant *models.Tenant, code string) *models.TenantSMSVerificationCode {
	return &models.TenantSMSVerificationCode{
		ID:               uuid.New(),
		TenantID:         &tenant.ID,
		TenantPhone:      tenant.Phone,
		VerificationCode: code,
		ExpiresAt:        time.Now().Add(5 * time.Minute),
	}
}

func TestRequestOTPUnknownPhone(t *testing.T) {
	svc, tenant, _, _ := newPortalFixture(t)

	err := svc.RequestOTP(context.Background(), tenant.LandlordID, "+19995550000")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRequestOTPScopedToLandlord(t *testing.T) {
	svc, tenant, _, _ := newPortalFixture(t)

	// Right phone, wrong landlord: the tenant must not be visible.
	err := svc.RequestOTP(context.Background(), uuid.New(), tenant.Phone)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRequestOTPRateLimited(t *testing.T) {
	svc, tenant, smsRepo, _ := newPortalFixture(t)
	smsRepo.recentCount = 5

	err := svc.RequestOTP(context.Background(), tenant.LandlordID, tenant.Phone)
	assert.ErrorIs(t, err, utils.ErrRateLimitExceeded)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, tenant, smsRepo, _ := newPortalFixture(t)
	smsRepo.code = activeCode(tenant, "123456")

	_, err := svc.VerifyOTP(context.Background(), tenant.LandlordID, tenant.Phone, "654321")
	assert.ErrorIs(t, err, utils.ErrInvalidOTP)
	assert.Equal(t, 1, smsRepo.attempts)
	assert.False(t, smsRepo.verified)
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	svc, tenant, smsRepo, _ := newPortalFixture(t)
	smsRepo.code = activeCode(tenant, "123456")
	smsRepo.code.ExpiresAt = time.Now().Add(-time.Minute)

	_, err := svc.VerifyOTP(context.Background(), tenant.LandlordID, tenant.Phone, "123456")
	assert.ErrorIs(t, err, utils.ErrInvalidOTP)
	assert.Equal(t, 1, smsRepo.attempts)
}

func TestVerifyOTPRejectsReuse(t *testing.T) {
	svc, tenant, smsRepo, _ := newPortalFixture(t)
	smsRepo.code = activeCode(tenant, "123456")
	smsRepo.code.Verified = true

	_, err := svc.VerifyOTP(context.Background(), tenant.LandlordID, tenant.Phone, "123456")
	assert.ErrorIs(t, err, utils.ErrInvalidOTP)
}

func TestVerifyOTPNoCodeRequested(t *testing.T) {
	svc, tenant, _, _ := newPortalFixture(t)

	_, err := svc.VerifyOTP(context.Background(), tenant.LandlordID, tenant.Phone, "123456")
	assert.ErrorIs(t, err, utils.ErrInvalidOTP)
}

func TestVerifyOTPIssuesPortalToken(t *testing.T) {
	svc, tenant, smsRepo, priv := newPortalFixture(t)
	smsRepo.code = activeCode(tenant, "123456")

	resp, err := svc.VerifyOTP(context.Background(), tenant.LandlordID, tenant.Phone, "123456")
	require.NoError(t, err)

	assert.True(t, smsRepo.verified)
	assert.Equal(t, int64(30*60), resp.ExpiresIn)

	tok, err := middleware.ValidateToken(resp.AccessToken, &priv.PublicKey, middleware.ScopePortal)
	require.NoError(t, err)
	assert.True(t, tok.Valid)

	// The token must not pass as a dashboard credential.
	_, err = middleware.ValidateToken(resp.AccessToken, &priv.PublicKey, middleware.ScopeDashboard)
	assert.Error(t, err)
}
