package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seastone/gatehouse/adapters/identity"
	"github.com/seastone/gatehouse/adapters/store"
	"github.com/seastone/gatehouse/adapters/tokenizer"
	"github.com/seastone/gatehouse/core"
	"github.com/seastone/gatehouse/internal/keys"
	"github.com/seastone/gatehouse/ports"
	"github.com/seastone/gatehouse/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func newTestRouter(t *testing.T, cfg service.Config, refreshStore ports.RefreshStore) (*gin.Engine, *keys.Pair) {
	t.Helper()

	pair, err := keys.Generate()
	require.NoError(t, err)

	if refreshStore == nil {
		refreshStore = store.NewMemoryStore(time.Minute)
	}

	svc := service.NewAuthService(
		tokenizer.NewJWTTokenizer(pair),
		refreshStore,
		identity.NewStaticVerifier("admin", "password"),
		nil,
		cfg,
	)

	return SetupRouter(svc, pair.JWKS()), pair
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) tokenResponse {
	t.Helper()

	w := postJSON(t, router, "/auth/login", gin.H{"username": "admin", "password": "password"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	return resp
}

func TestLoginReturnsTokenPair(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)
	login(t, router)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)

	w := postJSON(t, router, "/auth/login", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)

	w := postJSON(t, router, "/auth/login", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshHappyPath(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)
	first := login(t, router)

	w := postJSON(t, router, "/auth/refresh", gin.H{"refresh_token": first.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	var second tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.Equal(t, first.RefreshToken, second.RefreshToken)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)

	w := postJSON(t, router, "/auth/refresh", gin.H{"refresh_token": "bogus"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshAfterLogout(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)
	pair := login(t, router)

	w := postJSON(t, router, "/auth/logout", gin.H{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/auth/refresh", gin.H{"refresh_token": pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)
	pair := login(t, router)

	for i := 0; i < 2; i++ {
		w := postJSON(t, router, "/auth/logout", gin.H{"refresh_token": pair.RefreshToken})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Logged out")
	}

	w := postJSON(t, router, "/auth/logout", gin.H{"refresh_token": "never-issued"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithValidToken(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)
	pair := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome admin")
	assert.Contains(t, w.Body.String(), "ADMIN")
}

func TestProtectedRouteRejectsExpiredToken(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{AccessTTL: time.Millisecond}, nil)
	pair := login(t, router)

	time.Sleep(5 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// outageStore fails every store call the way a network timeout would.
type outageStore struct{}

func (outageStore) Create(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: i/o timeout", core.ErrStoreUnavailable)
}

func (outageStore) Validate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: i/o timeout", core.ErrStoreUnavailable)
}

func (outageStore) Revoke(context.Context, string) error {
	return fmt.Errorf("%w: i/o timeout", core.ErrStoreUnavailable)
}

func TestStoreOutageMapsToServiceUnavailable(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, outageStore{})

	w := postJSON(t, router, "/auth/refresh", gin.H{"refresh_token": "whatever"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = postJSON(t, router, "/auth/login", gin.H{"username": "admin", "password": "password"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = postJSON(t, router, "/auth/logout", gin.H{"refresh_token": "whatever"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestJWKSEndpointIsPublic(t *testing.T) {
	router, pair := newTestRouter(t, service.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var set struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			Use string `json:"use"`
		} `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	require.Len(t, set.Keys, 1)
	assert.Equal(t, pair.KeyID(), set.Keys[0].Kid)
	assert.Equal(t, "RSA", set.Keys[0].Kty)
	assert.Equal(t, "sig", set.Keys[0].Use)
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, service.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
