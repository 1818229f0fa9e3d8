package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authmodels "github.com/Flv72S/Eterna-Home-sub001/internal/auth/models"
	authservice "github.com/Flv72S/Eterna-Home-sub001/internal/auth/service"
	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/store/revocation"
	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/store/user"
	docmodels "github.com/Flv72S/Eterna-Home-sub001/internal/document/models"
	docstore "github.com/Flv72S/Eterna-Home-sub001/internal/document/store"
	housemodels "github.com/Flv72S/Eterna-Home-sub001/internal/house/models"
	houseservice "github.com/Flv72S/Eterna-Home-sub001/internal/house/service"
	housestore "github.com/Flv72S/Eterna-Home-sub001/internal/house/store"
	jwttoken "github.com/Flv72S/Eterna-Home-sub001/internal/jwt_token"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/health"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/middleware"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

type fixture struct {
	router    http.Handler
	users     *user.InMemoryStore
	houses    *housestore.InMemoryStore
	documents *docstore.InMemoryStore
	houseSvc  *houseservice.Service

	tenantID id.TenantID
	userID   id.UserID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		users:     user.NewInMemory(),
		houses:    housestore.NewInMemory(),
		documents: docstore.NewInMemory(),
		tenantID:  id.TenantID(uuid.New()),
		userID:    id.UserID(uuid.New()),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), &authmodels.User{
		ID:           f.userID,
		TenantID:     f.tenantID,
		Email:        "anna@example.com",
		Username:     "anna",
		FullName:     "Anna Bianchi",
		PasswordHash: string(hash),
		IsActive:     true,
	}))

	tokens := jwttoken.NewService("test-key", "eterna-home-test", 30*time.Minute)
	authSvc := authservice.New(f.users, tokens, revocation.NewInMemory(), logger, nil)
	f.houseSvc = houseservice.New(f.houses, logger, nil)

	handler := NewHandler(authSvc, f.houseSvc, f.documents, logger)
	f.router = NewRouter(handler, health.New("test"), RouterConfig{
		LoginRatePerSecond: 100,
		LoginRateBurst:     100,
	}, logger)
	return f
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"email":"anna@example.com","password":"correct-horse"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", body)
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (f *fixture) get(path, token, houseHeader string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if houseHeader != "" {
		req.Header.Set(middleware.HouseHeader, houseHeader)
	}
	f.router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestLoginEndpoint_ReturnsTokenAndProfile(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"email":"anna@example.com","password":"correct-horse"}`)
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
		User        struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			TenantID string `json:"tenant_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64(1800), resp.ExpiresIn)
	assert.Equal(t, f.userID.String(), resp.User.ID)
	assert.Equal(t, f.tenantID.String(), resp.User.TenantID)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"email":"anna@example.com","password":"nope"}`)
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication_failed", errorCode(t, rec))
}

func TestLoginEndpoint_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"email":`)
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHousesEndpoint_RequiresToken(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/v1/houses", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", errorCode(t, rec))
}

func TestHousesEndpoint_ListsMemberships(t *testing.T) {
	f := newFixture(t)
	h1, err := f.houseSvc.Provision(context.Background(), f.tenantID, f.userID, "Villa Aurora", "Via Roma 1")
	require.NoError(t, err)

	token := f.login(t)
	rec := f.get("/v1/houses", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Houses []struct {
			HouseID     int64  `json:"house_id"`
			HouseName   string `json:"house_name"`
			IsOwner     bool   `json:"is_owner"`
			RoleInHouse string `json:"role_in_house"`
			IsActive    bool   `json:"is_active"`
		} `json:"houses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Houses, 1)
	assert.Equal(t, int64(h1), resp.Houses[0].HouseID)
	assert.Equal(t, "Villa Aurora", resp.Houses[0].HouseName)
	assert.True(t, resp.Houses[0].IsOwner)
	assert.Equal(t, housemodels.RoleOwner, resp.Houses[0].RoleInHouse)
}

func TestDocumentsEndpoint_RequiresHouseHeader(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.get("/v1/documents", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "house_not_found", errorCode(t, rec))
}

func TestDocumentsEndpoint_DeniesNonMember(t *testing.T) {
	f := newFixture(t)
	// house owned by someone else
	other := id.UserID(uuid.New())
	houseID, err := f.houseSvc.Provision(context.Background(), f.tenantID, other, "Casa Altrui", "")
	require.NoError(t, err)

	token := f.login(t)
	rec := f.get("/v1/documents", token, fmt.Sprint(houseID))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "house_not_found", errorCode(t, rec))
}

func TestDocumentsEndpoint_ListsWithinHouse(t *testing.T) {
	f := newFixture(t)
	houseID, err := f.houseSvc.Provision(context.Background(), f.tenantID, f.userID, "Villa Aurora", "")
	require.NoError(t, err)
	otherID, err := f.houseSvc.Provision(context.Background(), f.tenantID, f.userID, "Casa Brezza", "")
	require.NoError(t, err)

	require.NoError(t, f.documents.Create(context.Background(), &docmodels.Document{
		ID: uuid.New(), HouseID: houseID, Name: "boiler-manual.pdf", MimeType: "application/pdf",
	}))
	require.NoError(t, f.documents.Create(context.Background(), &docmodels.Document{
		ID: uuid.New(), HouseID: otherID, Name: "other.pdf", MimeType: "application/pdf",
	}))

	token := f.login(t)
	rec := f.get("/v1/documents", token, fmt.Sprint(houseID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Documents []struct {
			Name    string `json:"name"`
			HouseID int64  `json:"house_id"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "boiler-manual.pdf", resp.Documents[0].Name)
	assert.Equal(t, int64(houseID), resp.Documents[0].HouseID)
}

func TestLogoutEndpoint_InvalidatesToken(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// the revoked token is now session-expired, not merely invalid
	rec2 := f.get("/v1/houses", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, "session_expired", errorCode(t, rec2))
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.get("/readyz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
