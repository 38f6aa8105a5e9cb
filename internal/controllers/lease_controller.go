package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/services"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// LeaseController serves the dashboard lease endpoints, including the
// kickoff of the signing workflow.
type LeaseController struct {
	leaseService   *services.LeaseService
	signingService *services.SigningService
}

var leaseValidate = validator.New()

func NewLeaseController(leaseService *services.LeaseService, signingService *services.SigningService) *LeaseController {
	return &LeaseController{leaseService: leaseService, signingService: signingService}
}

// POST /api/v1/dashboard/leases
func (c *LeaseController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := leaseValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	lease, err := c.leaseService.CreateDraft(r.Context(), landlordID, req)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Unit or tenant not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to create lease")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create lease", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

// PATCH /api/v1/dashboard/leases
func (c *LeaseController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.UpdateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := leaseValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	lease, err := c.leaseService.UpdateDraft(r.Context(), landlordID, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Lease not found", nil)
		case errors.Is(err, utils.ErrLeaseNotDraft):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Only draft leases can be edited", nil)
		case errors.Is(err, utils.ErrRowVersionConflict):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "State conflict, please retry", nil, err)
		default:
			utils.Logger.WithError(err).Error("Failed to update lease")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to update lease", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// GET /api/v1/dashboard/leases
func (c *LeaseController) ListHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	leases, err := c.leaseService.List(r.Context(), landlordID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list leases")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list leases", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// GET /api/v1/dashboard/leases/{id}
func (c *LeaseController) GetHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	lease, err := c.leaseService.Get(r.Context(), landlordID, leaseID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Lease not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to load lease")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load lease", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// POST /api/v1/dashboard/leases/{id}/send
func (c *LeaseController) SendForSignatureHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	req, err := c.signingService.SendForSignature(r.Context(), landlordID, leaseID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Lease not found", nil)
		case errors.Is(err, utils.ErrLeaseNotDraft):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Lease has already been sent for signature", nil)
		default:
			utils.Logger.WithError(err).Error("Failed to send lease for signature")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to send lease for signature", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, req)
}

// POST /api/v1/dashboard/leases/{id}/end
func (c *LeaseController) EndHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	lease, err := c.leaseService.End(r.Context(), landlordID, leaseID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Lease not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to end lease")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to end lease", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// POST /api/v1/dashboard/payments
func (c *LeaseController) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := leaseValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	payment, err := c.leaseService.RecordPayment(r.Context(), landlordID, req)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Lease not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to record payment")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to record payment", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

// GET /api/v1/dashboard/leases/{id}/payments
func (c *LeaseController) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	payments, err := c.leaseService.ListPayments(r.Context(), landlordID, leaseID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Lease not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to list payments")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list payments", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payments)
}
