package dtos

import "github.com/google/uuid"

type InviteTeamMemberRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=manager viewer"`
}

type MarkNotificationReadRequest struct {
	NotificationID uuid.UUID `json:"notification_id" validate:"required"`
}
