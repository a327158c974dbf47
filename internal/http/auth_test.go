package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"championsite-backend-go/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() services.TokenService {
	return services.TokenService{
		Secret: []byte("test-secret"),
		Issuer: "championsite",
		TTL:    time.Hour,
	}
}

func protectedEndpoint(tokens services.TokenService, cap services.Capability) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := CurrentIdentity(r)
		WriteJSON(w, http.StatusOK, map[string]string{"subject": identity.ID})
	})
	return WithAuth(tokens)(RequireCapability(cap)(inner))
}

func TestWithAuthMissingHeader(t *testing.T) {
	handler := protectedEndpoint(testTokens(), services.CapRead)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "You are not logged in! Please log in to get access.", body.Message)
}

func TestWithAuthEmptyBearer(t *testing.T) {
	handler := protectedEndpoint(testTokens(), services.CapRead)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid authentication token format.", body.Message)
}

func TestWithAuthExpiredToken(t *testing.T) {
	tokens := testTokens()
	expired := tokens
	expired.TTL = -time.Minute
	signed, _, err := expired.Issue(services.Identity{ID: "admin-1", Role: services.RoleAdmin})
	require.NoError(t, err)

	handler := protectedEndpoint(tokens, services.CapRead)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid token or session expired. Please log in again.", body.Message)
}

func TestWithAuthTamperedToken(t *testing.T) {
	other := testTokens()
	other.Secret = []byte("different-secret")
	signed, _, err := other.Issue(services.Identity{ID: "admin-1", Role: services.RoleAdmin})
	require.NoError(t, err)

	handler := protectedEndpoint(testTokens(), services.CapRead)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCapabilityUnknownRole(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.Issue(services.Identity{ID: "admin-1", Role: "Viewer"})
	require.NoError(t, err)

	handler := protectedEndpoint(tokens, services.CapWrite)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "You do not have permission to perform this action.", body.Message)
}

func TestWithAuthValidToken(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.Issue(services.Identity{ID: "admin-1", Email: "pastor@example.org", Role: services.RoleSuperAdmin})
	require.NoError(t, err)

	handler := protectedEndpoint(tokens, services.CapManageAdmins)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "admin-1", body["subject"])
}
