package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/vegaswarrior/Property-Management-sub001/internal/documents"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/services"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// SigningController serves the public, unauthenticated signing endpoints.
// The token in the URL is the sole credential.
type SigningController struct {
	signingService *services.SigningService
}

var signingValidate = validator.New()

func NewSigningController(signingService *services.SigningService) *SigningController {
	return &SigningController{signingService: signingService}
}

// GET /api/sign/{token}
func (c *SigningController) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	session, err := c.signingService.GetSession(r.Context(), token)
	if err != nil {
		c.respondSigningError(w, err, "Failed to load signing session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, session)
}

// POST /api/sign/{token}
func (c *SigningController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req internal_dtos.SubmitSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := signingValidate.StructCtx(r.Context(), req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", vErrs.Error(), err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}
	if !req.Consent {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Consent to electronic signing is required", nil)
		return
	}

	result, err := c.signingService.Submit(r.Context(), token, req, utils.ClientIP(r), r.UserAgent())
	if err != nil {
		c.respondSigningError(w, err, "Failed to complete signing")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// respondSigningError maps the signing workflow's terminal states onto
// their HTTP statuses. Unknown tokens are indistinguishable from deleted
// ones, both are 404.
func (c *SigningController) respondSigningError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No signing request found for this link", nil)
	case errors.Is(err, utils.ErrLinkExpired):
		utils.RespondErrorWithCode(w, http.StatusGone, utils.ErrCodeLinkExpired, "This signing link has expired", nil)
	case errors.Is(err, utils.ErrAlreadySigned):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeAlreadySigned, "This document has already been signed", nil)
	case errors.Is(err, documents.ErrBadSignatureImage):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Signature image must be a base64 PNG or JPEG data URL", nil, err)
	default:
		utils.Logger.WithError(err).Error(fallback)
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, fallback, nil, err)
	}
}
