package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	"github.com/vegaswarrior/Property-Management-sub001/internal/constants"
	"github.com/vegaswarrior/Property-Management-sub001/internal/documents"
	"github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/events"
	"github.com/vegaswarrior/Property-Management-sub001/internal/mailer"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/storage"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

/* ------------------------------------------------------------------
   In-memory fakes
------------------------------------------------------------------- */

type fakeSigRepo struct {
	repositories.SignatureRequestRepository

	byToken     map[string]*models.DocumentSignatureRequest
	pending     map[string]*models.DocumentSignatureRequest // keyed by role
	created     []*models.DocumentSignatureRequest
	completed   []repositories.CompletedSignature
	createErr   error
	completeErr error
	ops         *[]string
}

func (f *fakeSigRepo) Create(_ context.Context, req *models.DocumentSignatureRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, req)
	f.byToken[req.Token] = req
	return nil
}

func (f *fakeSigRepo) GetByToken(_ context.Context, token string) (*models.DocumentSignatureRequest, error) {
	return f.byToken[token], nil
}

func (f *fakeSigRepo) GetPendingByLeaseAndRole(_ context.Context, _ uuid.UUID, role string) (*models.DocumentSignatureRequest, error) {
	return f.pending[role], nil
}

func (f *fakeSigRepo) CompleteSigning(_ context.Context, c repositories.CompletedSignature) error {
	if f.ops != nil {
		*f.ops = append(*f.ops, "complete")
	}
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed = append(f.completed, c)
	return nil
}

type fakeLeaseRepo struct {
	repositories.LeaseRepository

	leases   map[uuid.UUID]*models.Lease
	statuses map[uuid.UUID]string
}

func (f *fakeLeaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Lease, error) {
	return f.leases[id], nil
}

func (f *fakeLeaseRepo) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	f.statuses[id] = status
	return nil
}

type fakeLandlordRepo struct {
	repositories.LandlordRepository
	landlord *models.Landlord
	calls    int
	failFrom int // when set, lookups beyond this many calls fail
}

func (f *fakeLandlordRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Landlord, error) {
	f.calls++
	if f.failFrom > 0 && f.calls > f.failFrom {
		return nil, errors.New("landlord lookup unavailable")
	}
	if f.landlord != nil && f.landlord.ID == id {
		return f.landlord, nil
	}
	return nil, nil
}

type fakeTenantRepo struct {
	repositories.TenantRepository
	tenant *models.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	if f.tenant != nil && f.tenant.ID == id {
		return f.tenant, nil
	}
	return nil, nil
}

type fakeUnitRepo struct {
	repositories.UnitRepository
	unit *models.Unit
}

func (f *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	if f.unit != nil && f.unit.ID == id {
		return f.unit, nil
	}
	return nil, nil
}

type fakePropRepo struct {
	repositories.PropertyRepository
	prop *models.Property
}

func (f *fakePropRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	if f.prop != nil && f.prop.ID == id {
		return f.prop, nil
	}
	return nil, nil
}

type fakeNotifRepo struct {
	repositories.NotificationRepository
	notifications []*models.Notification
}

func (f *fakeNotifRepo) Create(_ context.Context, n *models.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

type upload struct {
	bucket, key, contentType string
	size                     int
}

type fakeStore struct {
	uploads []upload
	failErr error
	ops     *[]string
}

func (f *fakeStore) Upload(_ context.Context, bucket, key string, data []byte, contentType string) (*storage.UploadResult, error) {
	if f.ops != nil {
		*f.ops = append(*f.ops, "upload:"+key)
	}
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.uploads = append(f.uploads, upload{bucket, key, contentType, len(data)})
	return &storage.UploadResult{URL: fmt.Sprintf("https://files.test/%s/%s", bucket, key), Key: key}, nil
}

type sentMail struct {
	to      mailer.Address
	subject string
}

type fakeMailer struct {
	sent    []sentMail
	failErr error
}

func (f *fakeMailer) Send(_ context.Context, to mailer.Address, subject, _, _ string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject})
	return nil
}

/* ------------------------------------------------------------------
   Fixture
------------------------------------------------------------------- */

type signingFixture struct {
	svc *SigningService

	sigRepo      *fakeSigRepo
	leaseRepo    *fakeLeaseRepo
	landlordRepo *fakeLandlordRepo
	store        *fakeStore
	mail         *fakeMailer
	notifs       *fakeNotifRepo
	ops          []string

	landlord *models.Landlord
	tenant   *models.Tenant
	lease    *models.Lease
}

func newSigningFixture(t *testing.T) *signingFixture {
	t.Helper()

	landlord := &models.Landlord{
		ID:          uuid.New(),
		Name:        "Dana Whitfield",
		Email:       "dana@example.com",
		DisplayName: "Whitfield Properties",
	}
	prop := &models.Property{
		ID:         uuid.New(),
		LandlordID: landlord.ID,
		Address:    "412 Maple Ct",
		City:       "Huntsville",
		State:      "AL",
		ZipCode:    "35801",
	}
	unit := &models.Unit{ID: uuid.New(), PropertyID: prop.ID, UnitNumber: "1A"}
	tenant := &models.Tenant{
		ID:         uuid.New(),
		LandlordID: landlord.ID,
		FullName:   "Jordan Reyes",
		Email:      "jordan@example.com",
	}
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	lease := &models.Lease{
		ID:                   uuid.New(),
		LandlordID:           landlord.ID,
		UnitID:               unit.ID,
		TenantID:             tenant.ID,
		MonthlyRentCents:     135000,
		SecurityDepositCents: 135000,
		StartDate:            start,
		Status:               models.LeaseStatusPendingSignatures,
	}

	fx := &signingFixture{
		sigRepo: &fakeSigRepo{
			byToken: map[string]*models.DocumentSignatureRequest{},
			pending: map[string]*models.DocumentSignatureRequest{},
		},
		leaseRepo: &fakeLeaseRepo{
			leases:   map[uuid.UUID]*models.Lease{lease.ID: lease},
			statuses: map[uuid.UUID]string{},
		},
		landlordRepo: &fakeLandlordRepo{landlord: landlord},
		store:        &fakeStore{},
		mail:         &fakeMailer{},
		notifs:       &fakeNotifRepo{},
		landlord:     landlord,
		tenant:       tenant,
		lease:        lease,
	}
	fx.sigRepo.ops = &fx.ops
	fx.store.ops = &fx.ops

	cfg := &config.Config{AppUrl: "https://app.rentledger.test"}
	fx.svc = NewSigningService(
		cfg,
		fx.sigRepo,
		fx.leaseRepo,
		fx.landlordRepo,
		&fakeTenantRepo{tenant: tenant},
		&fakeUnitRepo{unit: unit},
		&fakePropRepo{prop: prop},
		fx.notifs,
		documents.NewGenerator(),
		fx.store,
		fx.mail,
		events.NopEmitter{},
	)
	return fx
}

func (fx *signingFixture) addRequest(role string, status string, expiresIn time.Duration) *models.DocumentSignatureRequest {
	req := &models.DocumentSignatureRequest{
		ID:             uuid.New(),
		LeaseID:        fx.lease.ID,
		Token:          "tok-" + role + "-" + uuid.NewString(),
		RecipientName:  fx.tenant.FullName,
		RecipientEmail: fx.tenant.Email,
		Role:           role,
		Status:         status,
		ExpiresAt:      time.Now().Add(expiresIn),
	}
	if role == models.SignerRoleLandlord {
		req.RecipientName = fx.landlord.Name
		req.RecipientEmail = fx.landlord.Email
	}
	fx.sigRepo.byToken[req.Token] = req
	return req
}

func signatureDataURL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func submitPayload(t *testing.T) dtos.SubmitSignatureRequest {
	return dtos.SubmitSignatureRequest{
		SignatureDataURL: signatureDataURL(t),
		SignerName:       "Jordan Reyes",
		SignerEmail:      "jordan@example.com",
		Consent:          true,
	}
}

/* ------------------------------------------------------------------
   GetSession
------------------------------------------------------------------- */

func TestGetSessionUnknownToken(t *testing.T) {
	fx := newSigningFixture(t)

	_, err := fx.svc.GetSession(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestGetSessionExpiredLink(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, -time.Hour)

	_, err := fx.svc.GetSession(context.Background(), req.Token)
	assert.ErrorIs(t, err, utils.ErrLinkExpired)
}

func TestGetSessionExpiryBeatsSignedStatus(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSigned, -time.Hour)

	_, err := fx.svc.GetSession(context.Background(), req.Token)
	assert.ErrorIs(t, err, utils.ErrLinkExpired)
}

func TestGetSessionAlreadySigned(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSigned, time.Hour)

	_, err := fx.svc.GetSession(context.Background(), req.Token)
	assert.ErrorIs(t, err, utils.ErrAlreadySigned)
}

func TestGetSessionRendersLease(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)

	session, err := fx.svc.GetSession(context.Background(), req.Token)
	require.NoError(t, err)

	assert.Equal(t, fx.lease.ID.String(), session.LeaseID)
	assert.Equal(t, models.SignerRoleTenant, session.Role)
	assert.Equal(t, fx.tenant.FullName, session.RecipientName)
	assert.Contains(t, session.LeaseHTML, "Jordan Reyes")
	assert.Contains(t, session.LeaseHTML, "Dana Whitfield")
	assert.Contains(t, session.LeaseHTML, "$1350.00")
	assert.Contains(t, session.LeaseHTML, "412 Maple Ct, Huntsville, AL 35801")
	assert.Contains(t, session.LeaseHTML, "Unit 1A")
}

/* ------------------------------------------------------------------
   Submit
------------------------------------------------------------------- */

func TestSubmitTenantSignatureFansOutToLandlord(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)

	resp, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	// Completed signature carries what we sent in.
	require.Len(t, fx.sigRepo.completed, 1)
	done := fx.sigRepo.completed[0]
	assert.Equal(t, req.ID, done.RequestID)
	assert.Equal(t, "203.0.113.9", done.SignerIP)
	assert.Equal(t, resp.DocumentHash, done.DocumentHash)
	assert.NotEmpty(t, done.DocumentHash)

	// Both artifacts uploaded to their buckets.
	require.Len(t, fx.store.uploads, 2)
	assert.Equal(t, constants.SignedDocsBucket, fx.store.uploads[0].bucket)
	assert.Equal(t, "application/pdf", fx.store.uploads[0].contentType)
	assert.Equal(t, constants.AuditLogsBucket, fx.store.uploads[1].bucket)
	assert.Equal(t, resp.SignedPdfURL, fmt.Sprintf("https://files.test/%s/%s", fx.store.uploads[0].bucket, fx.store.uploads[0].key))

	// The landlord's counter-signature request was minted and mailed.
	require.Len(t, fx.sigRepo.created, 1)
	counter := fx.sigRepo.created[0]
	assert.Equal(t, models.SignerRoleLandlord, counter.Role)
	assert.Equal(t, models.SignatureStatusSent, counter.Status)
	assert.Equal(t, fx.landlord.Email, counter.RecipientEmail)
	assert.Len(t, counter.Token, utils.SigningTokenLength)
	assert.WithinDuration(t, time.Now().Add(constants.SignatureRequestTTL), counter.ExpiresAt, time.Minute)

	require.Len(t, fx.mail.sent, 1)
	assert.Equal(t, fx.landlord.Email, fx.mail.sent[0].to.Email)
}

func TestSubmitUploadsBeforeDatabaseWrite(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)

	_, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	require.Len(t, fx.ops, 3)
	assert.True(t, strings.HasPrefix(fx.ops[0], "upload:"))
	assert.True(t, strings.HasPrefix(fx.ops[1], "upload:"))
	assert.Equal(t, "complete", fx.ops[2])
}

func TestSubmitDoesNotDuplicatePendingLandlordRequest(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)
	fx.sigRepo.pending[models.SignerRoleLandlord] = fx.addRequest(models.SignerRoleLandlord, models.SignatureStatusSent, time.Hour)

	_, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	assert.Empty(t, fx.sigRepo.created)
	assert.Empty(t, fx.mail.sent)
}

func TestSubmitLandlordSignatureCompletesLease(t *testing.T) {
	fx := newSigningFixture(t)
	signedAt := time.Now().Add(-time.Hour)
	fx.lease.TenantSignedAt = &signedAt
	req := fx.addRequest(models.SignerRoleLandlord, models.SignatureStatusSent, time.Hour)

	payload := submitPayload(t)
	payload.SignerName = fx.landlord.Name
	payload.SignerEmail = fx.landlord.Email

	_, err := fx.svc.Submit(context.Background(), req.Token, payload, "198.51.100.4", "Mozilla/5.0")
	require.NoError(t, err)

	// No further fan-out after the landlord counter-signs.
	assert.Empty(t, fx.sigRepo.created)

	kinds := make([]string, 0, len(fx.notifs.notifications))
	for _, n := range fx.notifs.notifications {
		kinds = append(kinds, n.Kind)
	}
	assert.Contains(t, kinds, models.NotificationKindLeaseSigned)
	assert.Contains(t, kinds, models.NotificationKindLeaseExecuted)
}

func TestSubmitTenantSigningAloneIsNotExecuted(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)

	_, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	for _, n := range fx.notifs.notifications {
		assert.NotEqual(t, models.NotificationKindLeaseExecuted, n.Kind)
	}
}

func TestSubmitRejectsBadSignatureImage(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)

	payload := submitPayload(t)
	payload.SignatureDataURL = "data:text/plain;base64,aGVsbG8="

	_, err := fx.svc.Submit(context.Background(), req.Token, payload, "203.0.113.9", "Mozilla/5.0")
	assert.ErrorIs(t, err, documents.ErrBadSignatureImage)
	assert.Empty(t, fx.sigRepo.completed)
	assert.Empty(t, fx.store.uploads)
}

func TestSubmitStorageFailureAbortsSigning(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)
	fx.store.failErr = errors.New("bucket unavailable")

	_, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.Error(t, err)

	assert.Empty(t, fx.sigRepo.completed)
	assert.Empty(t, fx.sigRepo.created)
}

func TestSubmitConcurrentSigningSurfacesAlreadySigned(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)
	fx.sigRepo.completeErr = utils.ErrAlreadySigned

	_, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	assert.ErrorIs(t, err, utils.ErrAlreadySigned)
	assert.Empty(t, fx.sigRepo.created)
}

func TestSubmitEmailFailureDoesNotFailSigning(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)
	fx.mail.failErr = errors.New("sendgrid down")

	resp, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.DocumentHash)
	require.Len(t, fx.sigRepo.completed, 1)
	// The landlord request row still exists even though its email failed.
	require.Len(t, fx.sigRepo.created, 1)
}

func TestSubmitLandlordLookupFailureAfterCommitStillSucceeds(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)
	// First lookup builds the lease document; the post-commit one fails.
	fx.landlordRepo.failFrom = 1

	resp, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SignedPdfURL)
	assert.NotEmpty(t, resp.DocumentHash)
	require.Len(t, fx.sigRepo.completed, 1)
}

func TestSubmitFanOutMintFailureStillSucceeds(t *testing.T) {
	fx := newSigningFixture(t)
	req := fx.addRequest(models.SignerRoleTenant, models.SignatureStatusSent, time.Hour)
	fx.sigRepo.createErr = errors.New("insert failed")

	resp, err := fx.svc.Submit(context.Background(), req.Token, submitPayload(t), "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.DocumentHash)
	require.Len(t, fx.sigRepo.completed, 1)
	assert.Empty(t, fx.sigRepo.created)
}

/* ------------------------------------------------------------------
   SendForSignature
------------------------------------------------------------------- */

func TestSendForSignatureMintsTenantRequest(t *testing.T) {
	fx := newSigningFixture(t)
	fx.lease.Status = models.LeaseStatusDraft

	req, err := fx.svc.SendForSignature(context.Background(), fx.landlord.ID, fx.lease.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SignerRoleTenant, req.Role)
	assert.Equal(t, fx.tenant.Email, req.RecipientEmail)
	assert.Len(t, req.Token, utils.SigningTokenLength)
	assert.Equal(t, models.LeaseStatusPendingSignatures, fx.leaseRepo.statuses[fx.lease.ID])

	require.Len(t, fx.mail.sent, 1)
	assert.Equal(t, fx.tenant.Email, fx.mail.sent[0].to.Email)
}

func TestSendForSignatureRejectsNonDraft(t *testing.T) {
	fx := newSigningFixture(t)
	fx.lease.Status = models.LeaseStatusPendingSignatures

	_, err := fx.svc.SendForSignature(context.Background(), fx.landlord.ID, fx.lease.ID)
	assert.ErrorIs(t, err, utils.ErrLeaseNotDraft)
}

func TestSendForSignatureScopedToOwner(t *testing.T) {
	fx := newSigningFixture(t)
	fx.lease.Status = models.LeaseStatusDraft

	_, err := fx.svc.SendForSignature(context.Background(), uuid.New(), fx.lease.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
