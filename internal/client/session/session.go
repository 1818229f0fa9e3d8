package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Flv72S/Eterna-Home-sub001/internal/client/credstore"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/scope"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// Profile is the authenticated user as the client keeps it.
type Profile struct {
	ID       id.UserID   `json:"id"`
	Email    string      `json:"email"`
	Username string      `json:"username"`
	FullName string      `json:"full_name"`
	TenantID id.TenantID `json:"tenant_id"`
}

// LoginResult is what the authentication collaborator hands back on a
// successful login.
type LoginResult struct {
	Token     string
	User      Profile
	TenantIDs []id.TenantID
}

// Authenticator is the backend-facing collaborator. Logout is best effort:
// local teardown proceeds whatever it returns.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Logout(ctx context.Context) error
}

// persistedSession is the on-disk shape stored under credstore.KeySession.
type persistedSession struct {
	Token              string   `json:"token"`
	User               *Profile `json:"user,omitempty"`
	IsAuthenticated    bool     `json:"is_authenticated"`
	ActiveTenantID     string   `json:"active_tenant_id,omitempty"`
	AvailableTenantIDs []string `json:"available_tenant_ids,omitempty"`
}

type persistedHouse struct {
	HouseID id.HouseID `json:"house_id"`
}

// State owns the authenticated identity and coordinates the tenant and
// house scopes across login, logout, and cold-start rehydration.
type State struct {
	mu      sync.Mutex
	auth    Authenticator
	store   credstore.Store
	tenants *scope.TenantScope
	houses  *scope.HouseScope
	logger  *slog.Logger

	token         string
	user          *Profile
	authenticated bool
}

func New(store credstore.Store, tenants *scope.TenantScope, houses *scope.HouseScope, logger *slog.Logger) *State {
	return &State{store: store, tenants: tenants, houses: houses, logger: logger}
}

// SetAuthenticator injects the backend collaborator. Wired after
// construction because the API client needs the state's token first.
func (s *State) SetAuthenticator(auth Authenticator) { s.auth = auth }

// Login authenticates against the backend, seeds the tenant scope with the
// returned tenant set (auto-selecting when it has exactly one entry), and
// persists the session. On failure nothing changes.
func (s *State) Login(ctx context.Context, email, password string) error {
	if s.auth == nil {
		return dErrors.New(dErrors.CodeInternal, "session has no authenticator")
	}
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = res.Token
	user := res.User
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()

	// SetAvailable may auto-select and fire the tenant hooks, which
	// re-persist; seed state before that so the snapshot is complete.
	s.tenants.SetAvailable(res.TenantIDs)
	s.Persist()

	if s.logger != nil {
		s.logger.Info("logged in", "user_id", res.User.ID.String())
	}
	return nil
}

// Logout revokes the session on the backend, then tears down all local
// state. The remote call is best effort: a network failure never leaves a
// half-logged-out client.
func (s *State) Logout(ctx context.Context) error {
	var remoteErr error
	if s.auth != nil && s.Token() != "" {
		remoteErr = s.auth.Logout(ctx)
	}
	s.clearLocal()
	if remoteErr != nil && s.logger != nil {
		s.logger.Warn("remote logout failed, local session cleared", "error", remoteErr)
	}
	return nil
}

// ForceLogout tears down local state without calling the backend. Used when
// the authorizer reports the session itself is invalid or expired.
func (s *State) ForceLogout(reason string) {
	s.clearLocal()
	if s.logger != nil {
		s.logger.Info("session terminated", "reason", reason)
	}
}

func (s *State) clearLocal() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	s.tenants.Clear()
	s.houses.Reset()
	if s.store != nil {
		if err := s.store.Clear(); err != nil && s.logger != nil {
			s.logger.Warn("could not clear stored credentials", "error", err)
		}
	}
}

// InitializeAuth rehydrates session, tenant, and house state from storage.
// It only reads: no hooks fire, nothing is written back, and a missing or
// unreadable record just means starting unauthenticated.
func (s *State) InitializeAuth() {
	if s.store == nil {
		return
	}
	raw, ok, err := s.store.Load(credstore.KeySession)
	if err != nil || !ok {
		return
	}
	var ps persistedSession
	if err := json.Unmarshal(raw, &ps); err != nil || !ps.IsAuthenticated || ps.Token == "" || ps.User == nil {
		return
	}

	s.mu.Lock()
	s.token = ps.Token
	s.user = ps.User
	s.authenticated = true
	s.mu.Unlock()

	available := make([]id.TenantID, 0, len(ps.AvailableTenantIDs))
	for _, t := range ps.AvailableTenantIDs {
		tid, err := id.ParseTenantID(t)
		if err != nil {
			continue
		}
		available = append(available, tid)
	}
	var active id.TenantID
	hasActive := false
	if ps.ActiveTenantID != "" {
		if tid, err := id.ParseTenantID(ps.ActiveTenantID); err == nil {
			active, hasActive = tid, true
		}
	}
	s.tenants.Restore(active, hasActive, available)

	if raw, ok, err := s.store.Load(credstore.KeyActiveHouse); err == nil && ok {
		var ph persistedHouse
		if err := json.Unmarshal(raw, &ph); err == nil {
			s.houses.RestoreActive(ph.HouseID)
		}
	}
}

// Persist snapshots the session and tenant state into storage. Also wired
// as the tenant scope's persistence hook.
func (s *State) Persist() {
	if s.store == nil {
		return
	}
	s.mu.Lock()
	ps := persistedSession{
		Token:           s.token,
		User:            s.user,
		IsAuthenticated: s.authenticated,
	}
	s.mu.Unlock()
	if !ps.IsAuthenticated {
		return
	}

	if active, ok := s.tenants.Active(); ok {
		ps.ActiveTenantID = active.String()
	}
	for _, t := range s.tenants.Available() {
		ps.AvailableTenantIDs = append(ps.AvailableTenantIDs, t.String())
	}

	raw, err := json.Marshal(ps)
	if err != nil {
		return
	}
	if err := s.store.Save(credstore.KeySession, raw); err != nil && s.logger != nil {
		s.logger.Warn("could not persist session", "error", err)
	}
}

// PersistActiveHouse is the house scope's write-through hook: it mirrors
// the active selection into storage so cold starts can restore it.
func (s *State) PersistActiveHouse(houseID id.HouseID, present bool) {
	if s.store == nil {
		return
	}
	if !present {
		if err := s.store.Delete(credstore.KeyActiveHouse); err != nil && s.logger != nil {
			s.logger.Warn("could not delete stored house selection", "error", err)
		}
		return
	}
	raw, err := json.Marshal(persistedHouse{HouseID: houseID})
	if err != nil {
		return
	}
	if err := s.store.Save(credstore.KeyActiveHouse, raw); err != nil && s.logger != nil {
		s.logger.Warn("could not persist house selection", "error", err)
	}
}

// Token returns the bearer token, or "" when unauthenticated.
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a session is active.
func (s *State) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// User returns a copy of the authenticated profile.
func (s *State) User() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return Profile{}, false
	}
	return *s.user, true
}
