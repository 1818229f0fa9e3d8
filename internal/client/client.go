// Package client assembles the session, scope, authorizer, and API
// components into one coherent client for the backend.
package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Flv72S/Eterna-Home-sub001/internal/client/api"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/authorizer"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/credstore"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/guard"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/scope"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/session"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// App is the wired client. All cross-component reactions (tenant switch
// refreshing houses, authorization failures tearing down the right amount
// of state, selections mirrored to storage) are hooked up here and only
// here; the components themselves stay ignorant of each other.
type App struct {
	Session *session.State
	Tenants *scope.TenantScope
	Houses  *scope.HouseScope
	API     *api.Client

	logger *slog.Logger
}

// New wires an App against the backend at baseURL, persisting credentials
// through store.
func New(baseURL string, store credstore.Store, logger *slog.Logger) *App {
	tenants := scope.NewTenantScope(logger)
	houses := scope.NewHouseScope(nil, logger)
	sess := session.New(store, tenants, houses, logger)

	transport := &authorizer.Transport{
		Token: sess.Token,
		House: func() (id.HouseID, bool) { return houses.Active() },
		OnSessionFailure: func(code dErrors.Code) {
			sess.ForceLogout(string(code))
		},
		OnHouseFailure: func(code dErrors.Code) {
			houses.HandleAccessDenied()
		},
	}
	apiClient := api.New(baseURL, &http.Client{Transport: transport, Timeout: 15 * time.Second})

	sess.SetAuthenticator(apiClient)
	houses.SetLister(apiClient)

	// Tenant switch invalidates every house assumption: drop the list and
	// the selection, then reload under the new tenant.
	tenants.SetOnChange(func(id.TenantID) {
		houses.Reset()
		houses.RefreshAsync(context.Background())
	})
	tenants.SetOnPersist(sess.Persist)
	houses.SetOnActiveChange(sess.PersistActiveHouse)

	return &App{
		Session: sess,
		Tenants: tenants,
		Houses:  houses,
		API:     apiClient,
		logger:  logger,
	}
}

// Initialize rehydrates persisted state and, when a session survives,
// kicks off the first house refresh to confirm or collapse the restored
// selection.
func (a *App) Initialize(ctx context.Context) {
	a.Session.InitializeAuth()
	if a.Session.IsAuthenticated() {
		if _, ok := a.Tenants.Active(); ok {
			a.Houses.RefreshAsync(ctx)
		}
	}
}

// Snapshot captures the current state for guard evaluation.
func (a *App) Snapshot() guard.Snapshot {
	_, tenantActive := a.Tenants.Active()
	return guard.Snapshot{
		Authenticated: a.Session.IsAuthenticated(),
		TenantActive:  tenantActive,
		HouseLoading:  a.Houses.IsLoading(),
		HouseCount:    len(a.Houses.Houses()),
		HouseActive:   a.Houses.HasActiveHouse(),
	}
}

// Guard evaluates a navigation attempt against the current state.
func (a *App) Guard(req guard.Requirement, location string) guard.Decision {
	return guard.Evaluate(a.Snapshot(), req, location)
}
