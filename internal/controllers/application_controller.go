package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/services"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// ApplicationController serves the landlord-side application endpoints.
// Portal-side submission lives on the PortalController.
type ApplicationController struct {
	applicationService *services.ApplicationService
}

var applicationValidate = validator.New()

func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// GET /api/v1/dashboard/applications
func (c *ApplicationController) ListHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	apps, err := c.applicationService.List(r.Context(), landlordID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list applications")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list applications", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, apps)
}

// POST /api/v1/dashboard/applications/decide
func (c *ApplicationController) DecideHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.DecideApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := applicationValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	app, err := c.applicationService.Decide(r.Context(), landlordID, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Application not found", nil)
		case errors.Is(err, utils.ErrNoRowsUpdated):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Application has already been decided", nil)
		default:
			utils.Logger.WithError(err).Error("Failed to decide application")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to decide application", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, app)
}
