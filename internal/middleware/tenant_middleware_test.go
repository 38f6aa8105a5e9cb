package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type fakeResolver struct {
	bySubdomain map[string]*models.Landlord
	byDomain    map[string]*models.Landlord
}

func (f *fakeResolver) GetBySubdomain(_ context.Context, sub string) (*models.Landlord, error) {
	return f.bySubdomain[sub], nil
}

func (f *fakeResolver) GetByCustomDomain(_ context.Context, domain string) (*models.Landlord, error) {
	return f.byDomain[domain], nil
}

func resolveHost(t *testing.T, resolver *fakeResolver, host string) (int, uuid.UUID, bool) {
	t.Helper()

	var (
		gotID uuid.UUID
		gotOK bool
	)
	handler := TenantResolver(resolver, "rentledger.app")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = LandlordIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portal/site", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code, gotID, gotOK
}

func TestTenantResolverMatchesSubdomain(t *testing.T) {
	landlord := &models.Landlord{ID: uuid.New()}
	resolver := &fakeResolver{
		bySubdomain: map[string]*models.Landlord{"whitfield": landlord},
		byDomain:    map[string]*models.Landlord{},
	}

	code, id, ok := resolveHost(t, resolver, "whitfield.rentledger.app")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, ok)
	assert.Equal(t, landlord.ID, id)
}

func TestTenantResolverStripsPort(t *testing.T) {
	landlord := &models.Landlord{ID: uuid.New()}
	resolver := &fakeResolver{
		bySubdomain: map[string]*models.Landlord{"whitfield": landlord},
		byDomain:    map[string]*models.Landlord{},
	}

	code, id, _ := resolveHost(t, resolver, "Whitfield.RentLedger.app:8443")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, landlord.ID, id)
}

func TestTenantResolverMatchesCustomDomain(t *testing.T) {
	landlord := &models.Landlord{ID: uuid.New()}
	resolver := &fakeResolver{
		bySubdomain: map[string]*models.Landlord{},
		byDomain:    map[string]*models.Landlord{"rentals.whitfield.com": landlord},
	}

	code, id, _ := resolveHost(t, resolver, "rentals.whitfield.com")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, landlord.ID, id)
}

func TestTenantResolverUnknownHostIs404(t *testing.T) {
	resolver := &fakeResolver{
		bySubdomain: map[string]*models.Landlord{},
		byDomain:    map[string]*models.Landlord{},
	}

	code, _, ok := resolveHost(t, resolver, "nobody.rentledger.app")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, ok)
}

func TestTenantResolverNestedSubdomainFallsToCustomDomain(t *testing.T) {
	// "a.b.rentledger.app" is not a valid tenant subdomain; it is looked
	// up as a custom domain and misses.
	resolver := &fakeResolver{
		bySubdomain: map[string]*models.Landlord{"b": {ID: uuid.New()}},
		byDomain:    map[string]*models.Landlord{},
	}

	code, _, _ := resolveHost(t, resolver, "a.b.rentledger.app")
	assert.Equal(t, http.StatusNotFound, code)
}
