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

type PropertyController struct {
	propertyService *services.PropertyService
}

var propertyValidate = validator.New()

func NewPropertyController(propertyService *services.PropertyService) *PropertyController {
	return &PropertyController{propertyService: propertyService}
}

// POST /api/v1/dashboard/properties
func (c *PropertyController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := propertyValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	prop, err := c.propertyService.Create(r.Context(), landlordID, req)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to create property")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create property", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// PATCH /api/v1/dashboard/properties
func (c *PropertyController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := propertyValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	prop, err := c.propertyService.Update(r.Context(), landlordID, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
		case errors.Is(err, utils.ErrRowVersionConflict):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "State conflict, please retry", nil, err)
		default:
			utils.Logger.WithError(err).Error("Failed to update property")
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to update property", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// GET /api/v1/dashboard/properties
func (c *PropertyController) ListHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	props, err := c.propertyService.List(r.Context(), landlordID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list properties")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list properties", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, props)
}

// DELETE /api/v1/dashboard/properties/{id}
func (c *PropertyController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	if err := c.propertyService.Delete(r.Context(), landlordID, propertyID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to delete property")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to delete property", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// POST /api/v1/dashboard/units
func (c *PropertyController) AddUnitHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := propertyValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	unit, err := c.propertyService.AddUnit(r.Context(), landlordID, req)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to add unit")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to add unit", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, unit)
}

// POST /api/v1/dashboard/units/{id}/vacancy
func (c *PropertyController) SetUnitVacancyHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}
	unitID, ok := pathUUID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var req struct {
		Vacant bool `json:"vacant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	unit, err := c.propertyService.SetUnitVacancy(r.Context(), landlordID, unitID, req.Vacant)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to update unit vacancy")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to update unit vacancy", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, unit)
}
