package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	"github.com/vegaswarrior/Property-Management-sub001/internal/constants"
	"github.com/vegaswarrior/Property-Management-sub001/internal/documents"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/events"
	"github.com/vegaswarrior/Property-Management-sub001/internal/mailer"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/storage"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// SigningService owns the lease e-signature workflow: minting signature
// requests, serving signing sessions, and completing submissions.
type SigningService struct {
	cfg *config.Config

	sigRepo      repositories.SignatureRequestRepository
	leaseRepo    repositories.LeaseRepository
	landlordRepo repositories.LandlordRepository
	tenantRepo   repositories.TenantRepository
	unitRepo     repositories.UnitRepository
	propRepo     repositories.PropertyRepository
	notifRepo    repositories.NotificationRepository

	generator *documents.Generator
	store     storage.ObjectStore
	mail      mailer.Mailer
	emitter   events.Emitter
}

func NewSigningService(
	cfg *config.Config,
	sigRepo repositories.SignatureRequestRepository,
	leaseRepo repositories.LeaseRepository,
	landlordRepo repositories.LandlordRepository,
	tenantRepo repositories.TenantRepository,
	unitRepo repositories.UnitRepository,
	propRepo repositories.PropertyRepository,
	notifRepo repositories.NotificationRepository,
	generator *documents.Generator,
	store storage.ObjectStore,
	mail mailer.Mailer,
	emitter events.Emitter,
) *SigningService {
	return &SigningService{
		cfg:          cfg,
		sigRepo:      sigRepo,
		leaseRepo:    leaseRepo,
		landlordRepo: landlordRepo,
		tenantRepo:   tenantRepo,
		unitRepo:     unitRepo,
		propRepo:     propRepo,
		notifRepo:    notifRepo,
		generator:    generator,
		store:        store,
		mail:         mail,
		emitter:      emitter,
	}
}

// GetSession resolves a signing token into the lease preview shown on the
// public signing page. Returns utils.ErrNotFound for unknown tokens,
// utils.ErrLinkExpired for expired ones and utils.ErrAlreadySigned for
// requests that have already been completed.
func (s *SigningService) GetSession(ctx context.Context, token string) (*internal_dtos.SigningSessionResponse, error) {
	req, err := s.sigRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, utils.ErrNotFound
	}
	if req.Expired(time.Now()) {
		return nil, utils.ErrLinkExpired
	}
	if req.Status == models.SignatureStatusSigned {
		return nil, utils.ErrAlreadySigned
	}

	data, _, err := s.leaseData(ctx, req.LeaseID)
	if err != nil {
		return nil, err
	}

	html, err := documents.RenderLeaseHTML(*data)
	if err != nil {
		return nil, err
	}

	return &internal_dtos.SigningSessionResponse{
		LeaseID:        req.LeaseID.String(),
		Role:           req.Role,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		LeaseHTML:      html,
	}, nil
}

// Submit completes a signature request. The signed PDF and its audit log
// are generated and uploaded before any database write, so a storage
// failure leaves the request untouched and retryable. The database flip
// itself is a single transaction guarded against double signing.
//
// When the tenant signs and the landlord has not yet, a landlord
// signature request is minted and mailed here. Everything after the
// database flip is best-effort: the recorded signature is returned
// even when notification or fan-out steps fail.
func (s *SigningService) Submit(
	ctx context.Context,
	token string,
	payload internal_dtos.SubmitSignatureRequest,
	signerIP, userAgent string,
) (*internal_dtos.SubmitSignatureResponse, error) {

	req, err := s.sigRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, utils.ErrNotFound
	}
	if req.Expired(time.Now()) {
		return nil, utils.ErrLinkExpired
	}
	if req.Status == models.SignatureStatusSigned {
		return nil, utils.ErrAlreadySigned
	}

	sigImg, imgType, err := documents.ParseSignatureDataURL(payload.SignatureDataURL)
	if err != nil {
		return nil, err
	}

	data, lease, err := s.leaseData(ctx, req.LeaseID)
	if err != nil {
		return nil, err
	}

	signedAt := time.Now().UTC()
	meta := documents.AuditMetadata{
		LeaseID:         req.LeaseID.String(),
		Role:            req.Role,
		SignerName:      payload.SignerName,
		SignerEmail:     payload.SignerEmail,
		SignerIP:        signerIP,
		SignerUserAgent: userAgent,
		SignedAt:        signedAt,
	}

	doc, err := s.generator.Generate(*data, sigImg, imgType, meta)
	if err != nil {
		return nil, fmt.Errorf("generating signed document: %w", err)
	}

	keyBase := fmt.Sprintf("%s/%s", req.LeaseID, req.ID)
	pdfRes, err := s.store.Upload(ctx, constants.SignedDocsBucket, keyBase+".pdf", doc.PDF, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("uploading signed pdf: %w", err)
	}
	auditRes, err := s.store.Upload(ctx, constants.AuditLogsBucket, keyBase+".json", doc.AuditLog, "application/json")
	if err != nil {
		return nil, fmt.Errorf("uploading audit log: %w", err)
	}

	err = s.sigRepo.CompleteSigning(ctx, repositories.CompletedSignature{
		RequestID:       req.ID,
		LeaseID:         req.LeaseID,
		Role:            req.Role,
		SignerName:      payload.SignerName,
		SignerEmail:     payload.SignerEmail,
		SignerIP:        signerIP,
		SignerUserAgent: userAgent,
		SignedAt:        signedAt,
		SignedPdfURL:    pdfRes.URL,
		AuditLogURL:     auditRes.URL,
		DocumentHash:    doc.Hash,
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, events.Event{
		Location: "SigningService.Submit",
		Message:  "signature request completed",
		Data: map[string]any{
			"lease_id":      req.LeaseID.String(),
			"request_id":    req.ID.String(),
			"role":          req.Role,
			"document_hash": doc.Hash,
		},
	})

	resp := &internal_dtos.SubmitSignatureResponse{
		SignedPdfURL: pdfRes.URL,
		AuditLogURL:  auditRes.URL,
		DocumentHash: doc.Hash,
	}

	// The signature is durably recorded at this point. A failure below
	// must not surface as an error: the caller's retry would hit the
	// already-signed guard and never see the document URLs.
	landlord, err := s.landlordRepo.GetByID(ctx, lease.LandlordID)
	if err != nil || landlord == nil {
		utils.Logger.WithError(err).Errorf("Failed to load landlord %s after signing request %s", lease.LandlordID, req.ID)
		return resp, nil
	}

	s.notifyLeaseSigned(ctx, landlord, lease, req.Role, payload.SignerName)

	if req.Role == models.SignerRoleTenant && lease.LandlordSignedAt == nil {
		if err := s.requestLandlordSignature(ctx, landlord, lease); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to mint landlord counter-signature for lease %s", lease.ID)
		}
	}

	return resp, nil
}

// SendForSignature mints the initial tenant signature request for a draft
// lease and emails the signing link. The lease moves to
// pending_signatures. Only draft leases can be sent.
func (s *SigningService) SendForSignature(ctx context.Context, landlordID, leaseID uuid.UUID) (*models.DocumentSignatureRequest, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}
	if lease.Status != models.LeaseStatusDraft {
		return nil, utils.ErrLeaseNotDraft
	}

	tenant, err := s.tenantRepo.GetByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.ErrNotFound
	}
	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, utils.ErrNotFound
	}

	req, err := s.createRequest(ctx, lease.ID, models.SignerRoleTenant, tenant.FullName, tenant.Email)
	if err != nil {
		return nil, err
	}

	if err := s.leaseRepo.SetStatus(ctx, lease.ID, models.LeaseStatusPendingSignatures); err != nil {
		return nil, err
	}

	s.sendSigningEmail(ctx, landlord, req)

	s.emitter.Emit(ctx, events.Event{
		Location: "SigningService.SendForSignature",
		Message:  "tenant signature requested",
		Data: map[string]any{
			"lease_id":   lease.ID.String(),
			"request_id": req.ID.String(),
		},
	})
	return req, nil
}

// requestLandlordSignature lazily creates the landlord's counter-signature
// request the first time the tenant signs. A still-pending landlord
// request means a previous submission already did this; nothing is minted
// twice.
func (s *SigningService) requestLandlordSignature(ctx context.Context, landlord *models.Landlord, lease *models.Lease) error {
	pending, err := s.sigRepo.GetPendingByLeaseAndRole(ctx, lease.ID, models.SignerRoleLandlord)
	if err != nil {
		return err
	}
	if pending != nil {
		return nil
	}

	req, err := s.createRequest(ctx, lease.ID, models.SignerRoleLandlord, landlord.Name, landlord.Email)
	if err != nil {
		return err
	}

	s.sendSigningEmail(ctx, landlord, req)

	s.emitter.Emit(ctx, events.Event{
		Location: "SigningService.requestLandlordSignature",
		Message:  "landlord counter-signature requested",
		Data: map[string]any{
			"lease_id":   lease.ID.String(),
			"request_id": req.ID.String(),
		},
	})
	return nil
}

func (s *SigningService) createRequest(ctx context.Context, leaseID uuid.UUID, role, name, email string) (*models.DocumentSignatureRequest, error) {
	token, err := utils.NewSigningToken()
	if err != nil {
		return nil, err
	}
	req := &models.DocumentSignatureRequest{
		ID:             uuid.New(),
		LeaseID:        leaseID,
		Token:          token,
		RecipientName:  name,
		RecipientEmail: email,
		Role:           role,
		Status:         models.SignatureStatusSent,
		ExpiresAt:      time.Now().Add(constants.SignatureRequestTTL),
	}
	if err := s.sigRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// sendSigningEmail delivers the signing link. Failures are logged and
// swallowed; the request row already exists and the link can be re-sent.
func (s *SigningService) sendSigningEmail(ctx context.Context, landlord *models.Landlord, req *models.DocumentSignatureRequest) {
	link := fmt.Sprintf("%s/sign/%s", s.cfg.AppUrl, req.Token)
	subject := fmt.Sprintf("%s: your lease is ready to sign", landlord.DisplayName)
	plain := fmt.Sprintf(
		"Hello %s,\n\n%s has requested your signature on a lease agreement.\n\nSign here: %s\n\nThis link expires in 24 hours.",
		req.RecipientName, landlord.DisplayName, link,
	)
	html := fmt.Sprintf(
		`<p>Hello %s,</p><p><strong>%s</strong> has requested your signature on a lease agreement.</p><p><a href="%s">Review and sign the lease</a></p><p>This link expires in 24 hours.</p>`,
		req.RecipientName, landlord.DisplayName, link,
	)

	if err := s.mail.Send(ctx, mailer.Address{Name: req.RecipientName, Email: req.RecipientEmail}, subject, plain, html); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send signing email for request %s", req.ID)
	}
}

// notifyLeaseSigned records a dashboard notification for each completed
// signature, and a second one when the lease becomes fully executed.
// Best-effort: a failed insert never fails the signing.
func (s *SigningService) notifyLeaseSigned(ctx context.Context, landlord *models.Landlord, lease *models.Lease, role, signerName string) {
	n := &models.Notification{
		ID:         uuid.New(),
		LandlordID: landlord.ID,
		Kind:       models.NotificationKindLeaseSigned,
		Title:      "Lease signed",
		Body:       fmt.Sprintf("%s signed the lease as %s.", signerName, role),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		utils.Logger.WithError(err).Error("Failed to record lease-signed notification")
	}

	// The other party signing earlier means this one completes the lease.
	otherSigned := (role == models.SignerRoleTenant && lease.LandlordSignedAt != nil) ||
		(role == models.SignerRoleLandlord && lease.TenantSignedAt != nil)
	if !otherSigned {
		return
	}

	executed := &models.Notification{
		ID:         uuid.New(),
		LandlordID: landlord.ID,
		Kind:       models.NotificationKindLeaseExecuted,
		Title:      "Lease fully executed",
		Body:       "Both parties have signed; the lease is now active.",
	}
	if err := s.notifRepo.Create(ctx, executed); err != nil {
		utils.Logger.WithError(err).Error("Failed to record lease-executed notification")
	}
}

// leaseData assembles the template inputs for a lease's document.
func (s *SigningService) leaseData(ctx context.Context, leaseID uuid.UUID) (*documents.LeaseData, *models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, nil, err
	}
	if lease == nil {
		return nil, nil, utils.ErrNotFound
	}

	landlord, err := s.landlordRepo.GetByID(ctx, lease.LandlordID)
	if err != nil {
		return nil, nil, err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, lease.TenantID)
	if err != nil {
		return nil, nil, err
	}
	unit, err := s.unitRepo.GetByID(ctx, lease.UnitID)
	if err != nil {
		return nil, nil, err
	}
	if landlord == nil || tenant == nil || unit == nil {
		return nil, nil, utils.ErrNotFound
	}
	prop, err := s.propRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	if prop == nil {
		return nil, nil, utils.ErrNotFound
	}

	return &documents.LeaseData{
		LeaseID:              lease.ID.String(),
		LandlordName:         landlord.Name,
		TenantName:           tenant.FullName,
		PropertyAddress:      fmt.Sprintf("%s, %s, %s %s", prop.Address, prop.City, prop.State, prop.ZipCode),
		UnitNumber:           unit.UnitNumber,
		MonthlyRentCents:     lease.MonthlyRentCents,
		SecurityDepositCents: lease.SecurityDepositCents,
		StartDate:            lease.StartDate,
		EndDate:              lease.EndDate,
	}, lease, nil
}
