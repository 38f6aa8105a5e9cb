package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/mailer"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// TeamService manages a landlord's additional dashboard users.
type TeamService struct {
	cfg          *config.Config
	teamRepo     repositories.TeamMemberRepository
	landlordRepo repositories.LandlordRepository
	mail         mailer.Mailer
}

func NewTeamService(
	cfg *config.Config,
	teamRepo repositories.TeamMemberRepository,
	landlordRepo repositories.LandlordRepository,
	mail mailer.Mailer,
) *TeamService {
	return &TeamService{cfg: cfg, teamRepo: teamRepo, landlordRepo: landlordRepo, mail: mail}
}

func (s *TeamService) List(ctx context.Context, landlordID uuid.UUID) ([]*models.TeamMember, error) {
	return s.teamRepo.ListByLandlordID(ctx, landlordID)
}

// Invite adds a team member and emails them an invitation. Inviting an
// email that is already on the team returns utils.ErrEmailExists.
func (s *TeamService) Invite(ctx context.Context, landlordID uuid.UUID, req internal_dtos.InviteTeamMemberRequest) (*models.TeamMember, error) {
	existing, err := s.teamRepo.GetByEmail(ctx, landlordID, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrEmailExists
	}

	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, utils.ErrNotFound
	}

	m := &models.TeamMember{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		InvitedAt:  time.Now().UTC(),
	}
	if err := s.teamRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("You've been invited to %s", landlord.DisplayName)
	link := fmt.Sprintf("%s/dashboard/invites", s.cfg.AppUrl)
	plain := fmt.Sprintf("Hello %s,\n\n%s invited you to their property dashboard as a %s.\n\nAccept here: %s",
		req.Name, landlord.DisplayName, req.Role, link)
	html := fmt.Sprintf(`<p>Hello %s,</p><p><strong>%s</strong> invited you to their property dashboard as a %s.</p><p><a href="%s">Accept the invitation</a></p>`,
		req.Name, landlord.DisplayName, req.Role, link)
	if err := s.mail.Send(ctx, mailer.Address{Name: req.Name, Email: req.Email}, subject, plain, html); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send team invite email for %s", m.ID)
	}

	return m, nil
}

func (s *TeamService) Remove(ctx context.Context, landlordID, memberID uuid.UUID) error {
	members, err := s.teamRepo.ListByLandlordID(ctx, landlordID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.ID == memberID {
			return s.teamRepo.Delete(ctx, memberID)
		}
	}
	return utils.ErrNotFound
}
