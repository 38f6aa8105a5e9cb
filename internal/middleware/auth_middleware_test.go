package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv, &priv.PublicKey
}

func TestGenerateAndValidateToken(t *testing.T) {
	priv, pub := testKeyPair(t)

	tokenStr, err := GenerateAccessToken(priv, "user-123", ScopeDashboard, time.Hour)
	require.NoError(t, err)

	tok, err := ValidateToken(tokenStr, pub, ScopeDashboard)
	require.NoError(t, err)
	assert.True(t, tok.Valid)
}

func TestValidateTokenRejectsWrongScope(t *testing.T) {
	priv, pub := testKeyPair(t)

	tokenStr, err := GenerateAccessToken(priv, "tenant-456", ScopePortal, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokenStr, pub, ScopeDashboard)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	priv, pub := testKeyPair(t)

	tokenStr, err := GenerateAccessToken(priv, "user-123", ScopeDashboard, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(tokenStr, pub, ScopeDashboard)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	priv, _ := testKeyPair(t)
	_, otherPub := testKeyPair(t)

	tokenStr, err := GenerateAccessToken(priv, "user-123", ScopeDashboard, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokenStr, otherPub, ScopeDashboard)
	assert.Error(t, err)
}

func TestAuthMiddlewareStoresSubject(t *testing.T) {
	priv, pub := testKeyPair(t)
	tokenStr, err := GenerateAccessToken(priv, "user-123", ScopeDashboard, time.Hour)
	require.NoError(t, err)

	var gotSubject string
	handler := AuthMiddleware(pub, ScopeDashboard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = r.Context().Value(ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", gotSubject)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	_, pub := testKeyPair(t)

	handler := AuthMiddleware(pub, ScopeDashboard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsPortalTokenOnDashboard(t *testing.T) {
	priv, pub := testKeyPair(t)
	tokenStr, err := GenerateAccessToken(priv, "tenant-456", ScopePortal, time.Hour)
	require.NoError(t, err)

	handler := AuthMiddleware(pub, ScopeDashboard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
