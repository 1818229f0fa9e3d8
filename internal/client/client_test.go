package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flv72S/Eterna-Home-sub001/internal/client/credstore"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/guard"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// fakeBackend is a minimal v1 API: one user, a switchable house list, and
// togglable failure modes for the authenticated endpoints.
type fakeBackend struct {
	userID   string
	tenantID string
	token    string

	housesJSON  atomic.Value // string
	authFailure atomic.Value // "" | "session_expired" | "house_access_denied"
	logoutCalls atomic.Int64
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		userID:   uuid.NewString(),
		tenantID: uuid.NewString(),
		token:    "tok-e2e",
	}
	b.housesJSON.Store(`{"houses":[]}`)
	b.authFailure.Store("")
	return b
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"access_token": %q, "token_type": "bearer", "expires_in": 1800,
			"user": {"id": %q, "email": "anna@example.com", "username": "anna", "full_name": "Anna Bianchi", "tenant_id": %q}
		}`, b.token, b.userID, b.tenantID)
	})
	mux.HandleFunc("POST /v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.logoutCalls.Add(1)
		fmt.Fprint(w, `{"status":"logged_out"}`)
	})
	mux.HandleFunc("GET /v1/houses", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch b.authFailure.Load().(string) {
		case "session_expired":
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"session_expired","error_description":"token expired"}`)
			return
		case "house_access_denied":
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error":"house_access_denied","error_description":"membership revoked"}`)
			return
		}
		fmt.Fprint(w, b.housesJSON.Load().(string))
	})
	return mux
}

func newApp(t *testing.T, b *fakeBackend) *App {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, credstore.NewMemory(), nil)
}

const twoHouses = `{"houses":[
	{"house_id":1,"house_name":"Villa Aurora","house_address":"","is_owner":true,"role_in_house":"owner","is_active":true},
	{"house_id":2,"house_name":"Casa Brezza","house_address":"","is_owner":false,"role_in_house":"resident","is_active":true}
]}`

func waitHouses(t *testing.T, app *App, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(app.Houses.Houses()) == n && !app.Houses.IsLoading()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestApp_LoginAutoSelectsTenantAndLoadsHouses(t *testing.T) {
	b := newFakeBackend()
	b.housesJSON.Store(twoHouses)
	app := newApp(t, b)

	require.NoError(t, app.Session.Login(context.Background(), "anna@example.com", "pw"))

	// single tenant in the login result is selected without interaction
	active, ok := app.Tenants.Active()
	require.True(t, ok)
	assert.Equal(t, b.tenantID, active.String())

	// the tenant selection kicked off the house refresh
	waitHouses(t, app, 2)
	assert.False(t, app.Houses.HasActiveHouse())
}

func TestApp_GuardSequenceAcrossLoginFlow(t *testing.T) {
	b := newFakeBackend()
	b.housesJSON.Store(twoHouses)
	app := newApp(t, b)
	req := guard.Requirement{Auth: true, Tenant: true, House: true}

	d := app.Guard(req, "/documents")
	assert.Equal(t, guard.Redirect, d.Kind)
	assert.Equal(t, guard.TargetLogin, d.Target)
	assert.Equal(t, "/documents", d.ReturnTo)

	require.NoError(t, app.Session.Login(context.Background(), "anna@example.com", "pw"))
	waitHouses(t, app, 2)

	d = app.Guard(req, "/documents")
	assert.Equal(t, guard.Placeholder, d.Kind)
	assert.Equal(t, guard.PlaceholderSelectHouse, d.Placeholder)

	app.Houses.SelectFirst()
	d = app.Guard(req, "/documents")
	assert.Equal(t, guard.Allow, d.Kind)
}

func TestApp_SessionExpiryForcesLogout(t *testing.T) {
	b := newFakeBackend()
	b.housesJSON.Store(twoHouses)
	app := newApp(t, b)
	require.NoError(t, app.Session.Login(context.Background(), "anna@example.com", "pw"))
	waitHouses(t, app, 2)

	b.authFailure.Store("session_expired")
	// the hook's teardown supersedes the refresh, so it reports nothing
	_ = app.Houses.Refresh(context.Background())

	assert.False(t, app.Session.IsAuthenticated())
	assert.Empty(t, app.Session.Token())
	_, ok := app.Tenants.Active()
	assert.False(t, ok)
	// no remote logout for an already dead session
	assert.Equal(t, int64(0), b.logoutCalls.Load())
}

func TestApp_HouseDenialKeepsSession(t *testing.T) {
	b := newFakeBackend()
	b.housesJSON.Store(twoHouses)
	app := newApp(t, b)
	require.NoError(t, app.Session.Login(context.Background(), "anna@example.com", "pw"))
	waitHouses(t, app, 2)
	require.NoError(t, app.Houses.SetActive(1))

	b.authFailure.Store("house_access_denied")
	_ = app.Houses.Refresh(context.Background())

	// the house selection collapsed but nothing above it did
	assert.False(t, app.Houses.HasActiveHouse())
	assert.True(t, app.Session.IsAuthenticated())
	_, ok := app.Tenants.Active()
	assert.True(t, ok)
}

func TestApp_InitializeRestoresAndConfirmsSelection(t *testing.T) {
	b := newFakeBackend()
	b.housesJSON.Store(twoHouses)
	store := credstore.NewMemory()
	srv := httptest.NewServer(b.handler())
	defer srv.Close()

	app := New(srv.URL, store, nil)
	require.NoError(t, app.Session.Login(context.Background(), "anna@example.com", "pw"))
	waitHouses(t, app, 2)
	require.NoError(t, app.Houses.SetActive(2))

	// cold start against the same storage
	app2 := New(srv.URL, store, nil)
	app2.Initialize(context.Background())

	assert.True(t, app2.Session.IsAuthenticated())
	active, ok := app2.Houses.Active()
	require.True(t, ok)
	assert.Equal(t, id.HouseID(2), active)

	// the startup refresh confirms the provisional selection
	waitHouses(t, app2, 2)
	entry, ok := app2.Houses.ActiveHouse()
	require.True(t, ok)
	assert.Equal(t, "Casa Brezza", entry.Name)
}

func TestApp_LogoutRevokesRemotelyAndClearsStorage(t *testing.T) {
	b := newFakeBackend()
	b.housesJSON.Store(twoHouses)
	store := credstore.NewMemory()
	srv := httptest.NewServer(b.handler())
	defer srv.Close()

	app := New(srv.URL, store, nil)
	require.NoError(t, app.Session.Login(context.Background(), "anna@example.com", "pw"))
	waitHouses(t, app, 2)

	require.NoError(t, app.Session.Logout(context.Background()))

	assert.Equal(t, int64(1), b.logoutCalls.Load())
	assert.False(t, app.Session.IsAuthenticated())
	_, ok, _ := store.Load(credstore.KeySession)
	assert.False(t, ok)

	d := app.Guard(guard.Requirement{Auth: true}, "/profile")
	assert.Equal(t, guard.Redirect, d.Kind)
	assert.Equal(t, guard.TargetLogin, d.Target)
}
