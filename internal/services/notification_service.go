package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
)

// NotificationService surfaces dashboard notifications.
type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, landlordID uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	return s.repo.ListByLandlordID(ctx, landlordID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, landlordID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, landlordID)
}
