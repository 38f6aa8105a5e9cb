package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v4"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/services"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GET /api/v1/dashboard/notifications?unread=true
func (c *NotificationController) ListHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifs, err := c.notificationService.List(r.Context(), landlordID, unreadOnly)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list notifications")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list notifications", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, notifs)
}

// POST /api/v1/dashboard/notifications/read
func (c *NotificationController) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := landlordFromRequest(w, r); !ok {
		return
	}

	var req internal_dtos.MarkNotificationReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.notificationService.MarkRead(r.Context(), req.NotificationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Notification not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to mark notification read")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to mark notification read", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/v1/dashboard/notifications/read-all
func (c *NotificationController) MarkAllReadHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	if err := c.notificationService.MarkAllRead(r.Context(), landlordID); err != nil {
		utils.Logger.WithError(err).Error("Failed to mark notifications read")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to mark notifications read", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
