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

type TeamController struct {
	teamService *services.TeamService
}

var teamValidate = validator.New()

func NewTeamController(teamService *services.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

// GET /api/v1/dashboard/team
func (c *TeamController) ListHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	members, err := c.teamService.List(r.Context(), landlordID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list team members")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list team members", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, members)
}

// POST /api/v1/dashboard/team
func (c *TeamController) InviteHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}

	var req internal_dtos.InviteTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := teamValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	member, err := c.teamService.Invite(r.Context(), landlordID, req)
	if err != nil {
		if errors.Is(err, utils.ErrEmailExists) {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "That email is already on the team", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to invite team member")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to invite team member", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, member)
}

// DELETE /api/v1/dashboard/team/{id}
func (c *TeamController) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := landlordFromRequest(w, r)
	if !ok {
		return
	}
	memberID, ok := pathUUID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	if err := c.teamService.Remove(r.Context(), landlordID, memberID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Team member not found", nil)
			return
		}
		utils.Logger.WithError(err).Error("Failed to remove team member")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to remove team member", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
