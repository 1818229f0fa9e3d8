package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

type stubChecker struct {
	grant HouseGrant
	err   error
}

func (s *stubChecker) Access(context.Context, id.UserID, id.TenantID, id.HouseID) (HouseGrant, error) {
	return s.grant, s.err
}

func identityRequest(t *testing.T, houseHeader string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	if houseHeader != "" {
		req.Header.Set(HouseHeader, houseHeader)
	}
	ctx := context.WithValue(req.Context(), contextKeyIdentity{}, Identity{
		UserID:   id.UserID(uuid.New()),
		TenantID: id.TenantID(uuid.New()),
	})
	return req.WithContext(ctx)
}

func TestRequireHouse_MissingHeaderIsScopeLevel(t *testing.T) {
	handler := RequireHouse(&stubChecker{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, ""))

	// always 403: a bad house scope must never look like a dead session
	assert.Equal(t, http.StatusForbidden, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	assert.Equal(t, "house_not_found", code)
}

func TestRequireHouse_NonNumericHeader(t *testing.T) {
	handler := RequireHouse(&stubChecker{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "not-a-number"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	assert.Equal(t, "house_not_found", code)
}

func TestRequireHouse_UnknownHouse(t *testing.T) {
	checker := &stubChecker{err: sentinel.ErrNotFound}
	handler := RequireHouse(checker, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "41"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	assert.Equal(t, "house_not_found", code)
}

func TestRequireHouse_DeniedMembership(t *testing.T) {
	checker := &stubChecker{err: dErrors.New(dErrors.CodeHouseAccessDenied, "house is deactivated")}
	handler := RequireHouse(checker, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "41"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	assert.Equal(t, "house_access_denied", code)
}

func TestRequireHouse_GrantedAttachesGrant(t *testing.T) {
	checker := &stubChecker{grant: HouseGrant{HouseID: 41, Role: "owner", IsOwner: true}}

	var got HouseGrant
	var ok bool
	handler := RequireHouse(checker, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = HouseGrantFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "41"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, id.HouseID(41), got.HouseID)
	assert.True(t, got.IsOwner)
}

func TestRequireHouse_NoIdentityIsWiringBug(t *testing.T) {
	handler := RequireHouse(&stubChecker{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	req.Header.Set(HouseHeader, "41")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
