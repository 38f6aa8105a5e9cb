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

type BillingController struct {
	billingService *services.BillingService
}

var billingValidate = validator.New()

func NewBillingController(billingService *services.BillingService) *BillingController {
	return &BillingController{billingService: billingService}
}

// GET /api/v1/dashboard/billing/subscription
func (c *BillingController) GetSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	sub, err := c.billingService.GetSubscription(r.Context(), landlordID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Landlord not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to load subscription")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load subscription", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sub)
}

// POST /api/v1/dashboard/billing/checkout
func (c *BillingController) CreateCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.ChangeTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := billingValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	sess, err := c.billingService.CreateCheckoutSession(r.Context(), landlordID, req.Tier)
	if err != nil {
		c.respondBillingError(w, err, "Failed to start checkout")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// POST /api/v1/dashboard/billing/tier
func (c *BillingController) ChangeTierHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.ChangeTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := billingValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if err := c.billingService.ChangeTier(r.Context(), landlordID, req.Tier); err != nil {
		c.respondBillingError(w, err, "Failed to change subscription tier")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"tier": req.Tier})
}

// POST /api/v1/dashboard/billing/cancel
func (c *BillingController) CancelHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	if err := c.billingService.CancelSubscription(r.Context(), landlordID); err != nil {
		c.respondBillingError(w, err, "Failed to cancel subscription")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (c *BillingController) respondBillingError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Landlord not found", nil)
	case errors.Is(err, utils.ErrTierUnknown):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unknown subscription tier", nil)
	case errors.Is(err, utils.ErrNotSubscribed):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "No active subscription", nil)
	default:
		utils.Logger.WithError(err).Error(fallback)
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, fallback, nil, err)
	}
}
