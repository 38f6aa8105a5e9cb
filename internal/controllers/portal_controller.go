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

// PortalController serves the tenant-facing portal. All routes run behind
// the host-based tenant resolution middleware; the /me routes also
// require a portal access token.
type PortalController struct {
	portalService      *services.PortalService
	applicationService *services.ApplicationService
}

var portalValidate = validator.New()

func NewPortalController(portalService *services.PortalService, applicationService *services.ApplicationService) *PortalController {
	return &PortalController{portalService: portalService, applicationService: applicationService}
}

// GET /api/v1/portal/site
func (c *PortalController) SiteHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := siteLandlordFromRequest(w, r)
	if !ok {
		return
	}

	site, err := c.portalService.Site(r.Context(), landlordID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to load portal site")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load site", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, site)
}

// POST /api/v1/portal/applications
func (c *PortalController) SubmitApplicationHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := siteLandlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := portalValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	app, err := c.applicationService.Submit(r.Context(), landlordID, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property or unit not found", nil)
		case errors.Is(err, utils.ErrInvalidPhone):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Phone number failed validation", nil)
		case errors.Is(err, utils.ErrInvalidEmail):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Email address failed validation", nil)
		default:
			utils.Logger.WithError(err).Error("Failed to submit application")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to submit application", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, internal_dtos.SubmitApplicationResponse{ApplicationID: app.ID})
}

// POST /api/v1/portal/auth/otp
func (c *PortalController) RequestOTPHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := siteLandlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := portalValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if err := c.portalService.RequestOTP(r.Context(), landlordID, req.Phone); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			// Do not reveal which phone numbers exist.
			utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		case errors.Is(err, utils.ErrRateLimitExceeded):
			utils.RespondErrorWithCode(w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded, "Too many codes requested, try again later", nil)
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondErrorWithCode(w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Failed to deliver the code", nil, err)
		default:
			utils.Logger.WithError(err).Error("Failed to request portal login code")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to request login code", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/v1/portal/auth/verify
func (c *PortalController) VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := siteLandlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := portalValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.portalService.VerifyOTP(r.Context(), landlordID, req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound), errors.Is(err, utils.ErrInvalidOTP):
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidOTP, "Invalid or expired code", nil)
		default:
			utils.Logger.WithError(err).Error("Failed to verify portal login code")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to verify code", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/portal/me/lease
func (c *PortalController) MyLeaseHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := siteLandlordFromRequest(w, r)
	if !ok {
		return
	}
	tenantID, ok := subjectFromRequest(w, r)
	if !ok {
		return
	}

	lease, err := c.portalService.MyLease(r.Context(), landlordID, tenantID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No current lease", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to load tenant lease")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load lease", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// GET /api/v1/portal/me/payments
func (c *PortalController) MyPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := siteLandlordFromRequest(w, r)
	if !ok {
		return
	}
	tenantID, ok := subjectFromRequest(w, r)
	if !ok {
		return
	}

	payments, err := c.portalService.MyPayments(r.Context(), landlordID, tenantID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No current lease", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to load tenant payments")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load payments", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payments)
}
