package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/middleware"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// landlordFromRequest extracts the authenticated landlord's ID placed in
// the context by the dashboard auth middleware. Writes the 401 itself so
// handlers can bail with a bare return.
func landlordFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sub := r.Context().Value(middleware.ContextKeyUserID)
	if sub == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing userID in context", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub.(string))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed subject claim", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// subjectFromRequest is landlordFromRequest's portal twin: the subject of
// a portal token is a tenant ID.
func subjectFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return landlordFromRequest(w, r)
}

// siteLandlordFromRequest extracts the landlord resolved from the Host
// header by the tenant-resolution middleware.
func siteLandlordFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.LandlordIDFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeUnknownHost, "No site configured for this host", nil)
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a {id}-style path variable already extracted by mux.
func pathUUID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Malformed id in path", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
