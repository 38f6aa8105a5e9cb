package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	twilio "github.com/twilio/twilio-go"
	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/events"
	"github.com/vegaswarrior/Property-Management-sub001/internal/mailer"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// ApplicationService handles rental applications: public portal
// submission and landlord decisions.
type ApplicationService struct {
	cfg      *config.Config
	appRepo  repositories.RentalApplicationRepository
	propRepo repositories.PropertyRepository
	unitRepo repositories.UnitRepository
	notifRepo repositories.NotificationRepository

	mail    mailer.Mailer
	tw      *twilio.RestClient
	emitter events.Emitter
}

func NewApplicationService(
	cfg *config.Config,
	appRepo repositories.RentalApplicationRepository,
	propRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	notifRepo repositories.NotificationRepository,
	mail mailer.Mailer,
	tw *twilio.RestClient,
	emitter events.Emitter,
) *ApplicationService {
	return &ApplicationService{
		cfg:       cfg,
		appRepo:   appRepo,
		propRepo:  propRepo,
		unitRepo:  unitRepo,
		notifRepo: notifRepo,
		mail:      mail,
		tw:        tw,
		emitter:   emitter,
	}
}

// Submit files a portal visitor's application against a landlord's
// property and notifies the landlord.
func (s *ApplicationService) Submit(ctx context.Context, landlordID uuid.UUID, req internal_dtos.SubmitApplicationRequest) (*models.RentalApplication, error) {
	prop, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}
	if req.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil || unit.PropertyID != req.PropertyID {
			return nil, utils.ErrNotFound
		}
	}

	ok, err := utils.ValidatePhoneNumber(ctx, req.ApplicantPhone, s.cfg.LDFlag_ValidatePhoneWithTwilio, s.tw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.ErrInvalidPhone
	}
	ok, err = utils.ValidateEmail(ctx, s.cfg.SendgridAPIKey, req.ApplicantEmail, s.cfg.LDFlag_ValidateEmailWithSendGrid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.ErrInvalidEmail
	}

	moveIn, err := time.Parse("2006-01-02", req.MoveInDate)
	if err != nil {
		return nil, fmt.Errorf("parsing move-in date: %w", err)
	}

	app := &models.RentalApplication{
		ID:                 uuid.New(),
		LandlordID:         landlordID,
		PropertyID:         req.PropertyID,
		UnitID:             req.UnitID,
		ApplicantName:      req.ApplicantName,
		ApplicantEmail:     req.ApplicantEmail,
		ApplicantPhone:     req.ApplicantPhone,
		MonthlyIncomeCents: req.MonthlyIncomeCents,
		MoveInDate:         moveIn,
		Status:             models.ApplicationStatusPending,
		SubmittedAt:        time.Now().UTC(),
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	n := &models.Notification{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Kind:       models.NotificationKindApplicationReceived,
		Title:      "New rental application",
		Body:       fmt.Sprintf("%s applied for %s.", req.ApplicantName, prop.PropertyName),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		utils.Logger.WithError(err).Error("Failed to record application notification")
	}

	s.emitter.Emit(ctx, events.Event{
		Location: "ApplicationService.Submit",
		Message:  "rental application submitted",
		Data: map[string]any{
			"application_id": app.ID.String(),
			"property_id":    req.PropertyID.String(),
		},
	})
	return app, nil
}

func (s *ApplicationService) List(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalApplication, error) {
	return s.appRepo.ListByLandlordID(ctx, landlordID)
}

// Decide approves or declines a pending application and emails the
// applicant. A second decision on the same application returns
// utils.ErrNoRowsUpdated.
func (s *ApplicationService) Decide(ctx context.Context, landlordID uuid.UUID, req internal_dtos.DecideApplicationRequest) (*models.RentalApplication, error) {
	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}

	status := models.ApplicationStatusDeclined
	if req.Approve {
		status = models.ApplicationStatusApproved
	}
	decidedAt := time.Now().UTC()
	if err := s.appRepo.Decide(ctx, app.ID, status, decidedAt); err != nil {
		return nil, err
	}
	app.Status = status
	app.DecidedAt = &decidedAt

	subject := "Your rental application was " + status
	plain := fmt.Sprintf("Hello %s,\n\nYour rental application has been %s.", app.ApplicantName, status)
	html := fmt.Sprintf("<p>Hello %s,</p><p>Your rental application has been <strong>%s</strong>.</p>", app.ApplicantName, status)
	if err := s.mail.Send(ctx, mailer.Address{Name: app.ApplicantName, Email: app.ApplicantEmail}, subject, plain, html); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send decision email for application %s", app.ID)
	}

	n := &models.Notification{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Kind:       models.NotificationKindApplicationDecided,
		Title:      "Application " + status,
		Body:       fmt.Sprintf("%s's application was %s.", app.ApplicantName, status),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		utils.Logger.WithError(err).Error("Failed to record decision notification")
	}

	return app, nil
}
