package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	"github.com/vegaswarrior/Property-Management-sub001/internal/documents"
	"github.com/vegaswarrior/Property-Management-sub001/internal/events"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/routes"
	"github.com/vegaswarrior/Property-Management-sub001/internal/services"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// tokenOnlySigRepo serves canned signature requests by token. Only the
// lookup method is implemented; handler tests never get past the token
// guards into the persistence paths.
type tokenOnlySigRepo struct {
	repositories.SignatureRequestRepository
	byToken map[string]*models.DocumentSignatureRequest
}

func (f *tokenOnlySigRepo) GetByToken(_ context.Context, token string) (*models.DocumentSignatureRequest, error) {
	return f.byToken[token], nil
}

type stubLeaseRepo struct{ repositories.LeaseRepository }
type stubLandlordRepo struct{ repositories.LandlordRepository }
type stubTenantRepo struct{ repositories.TenantRepository }
type stubUnitRepo struct{ repositories.UnitRepository }
type stubPropRepo struct{ repositories.PropertyRepository }
type stubNotifRepo struct{ repositories.NotificationRepository }

func newSigningRouter(reqs ...*models.DocumentSignatureRequest) *mux.Router {
	sigRepo := &tokenOnlySigRepo{byToken: map[string]*models.DocumentSignatureRequest{}}
	for _, r := range reqs {
		sigRepo.byToken[r.Token] = r
	}

	svc := services.NewSigningService(
		&config.Config{AppUrl: "https://app.rentledger.test"},
		sigRepo,
		stubLeaseRepo{},
		stubLandlordRepo{},
		stubTenantRepo{},
		stubUnitRepo{},
		stubPropRepo{},
		stubNotifRepo{},
		documents.NewGenerator(),
		nil,
		nil,
		events.NopEmitter{},
	)

	ctrl := NewSigningController(svc)
	router := mux.NewRouter()
	router.HandleFunc(routes.SignByToken, ctrl.GetSessionHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.SignByToken, ctrl.SubmitHandler).Methods(http.MethodPost)
	return router
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetSessionHandlerUnknownToken(t *testing.T) {
	router := newSigningRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sign/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestGetSessionHandlerExpiredLink(t *testing.T) {
	router := newSigningRouter(&models.DocumentSignatureRequest{
		ID:        uuid.New(),
		LeaseID:   uuid.New(),
		Token:     "expired-token",
		Role:      models.SignerRoleTenant,
		Status:    models.SignatureStatusSent,
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sign/expired-token", nil))

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, utils.ErrCodeLinkExpired, decodeError(t, rec).Code)
}

func TestSubmitHandlerAlreadySigned(t *testing.T) {
	router := newSigningRouter(&models.DocumentSignatureRequest{
		ID:        uuid.New(),
		LeaseID:   uuid.New(),
		Token:     "signed-token",
		Role:      models.SignerRoleTenant,
		Status:    models.SignatureStatusSigned,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	payload := `{"signatureDataUrl":"data:image/png;base64,aWJvZHk=","signerName":"Jordan Reyes","signerEmail":"jordan@example.com","consent":true}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sign/signed-token", strings.NewReader(payload)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeAlreadySigned, decodeError(t, rec).Code)
}

func TestSubmitHandlerRejectsInvalidJSON(t *testing.T) {
	router := newSigningRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sign/whatever", strings.NewReader("{nope")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, decodeError(t, rec).Code)
}

func TestSubmitHandlerValidatesPayload(t *testing.T) {
	router := newSigningRouter()

	// Missing signature image and a malformed email.
	payload := `{"signerName":"Jordan Reyes","signerEmail":"not-an-email","consent":true}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sign/whatever", strings.NewReader(payload)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeValidation, decodeError(t, rec).Code)
}

func TestSubmitHandlerRequiresConsent(t *testing.T) {
	router := newSigningRouter()

	payload := `{"signatureDataUrl":"data:image/png;base64,aWJvZHk=","signerName":"Jordan Reyes","signerEmail":"jordan@example.com","consent":false}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sign/whatever", strings.NewReader(payload)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, utils.ErrCodeValidation, body.Code)
	assert.Contains(t, body.Message, "Consent")
}
