// Package scope holds the client-side tenant and house scoping state
// machines. A house can only be active when a tenant is active, which in
// turn requires an authenticated session; the wiring in the client package
// enforces that nesting by clearing inner scopes whenever an outer one
// changes.
package scope

import (
	"log/slog"
	"sync"

	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// TenantScope tracks which tenants the user may access and which one is
// currently selected.
type TenantScope struct {
	mu        sync.Mutex
	active    id.TenantID
	hasActive bool
	available []id.TenantID

	onChange  func(id.TenantID) // fires after the active tenant changes
	onPersist func()            // write-through hook
	logger    *slog.Logger
}

// NewTenantScope constructs an empty tenant scope.
func NewTenantScope(logger *slog.Logger) *TenantScope {
	return &TenantScope{logger: logger}
}

// SetOnChange registers the hook fired after the active tenant changes
// (selection or auto-selection). Used to invalidate the house scope.
func (t *TenantScope) SetOnChange(fn func(id.TenantID)) { t.onChange = fn }

// SetOnPersist registers the write-through hook fired after any mutation.
func (t *TenantScope) SetOnPersist(fn func()) { t.onPersist = fn }

// SetAvailable replaces the set of tenants the user may access and applies
// the auto-selection rule: exactly one available and none active selects it
// without user interaction. An active tenant missing from the new set is
// cleared.
func (t *TenantScope) SetAvailable(ids []id.TenantID) {
	t.mu.Lock()

	t.available = dedupe(ids)

	changed := false
	if t.hasActive && !t.containsLocked(t.active) {
		t.active = id.TenantID{}
		t.hasActive = false
		changed = true
	}
	changed = t.autoSelectLocked() || changed

	active, hasActive := t.active, t.hasActive
	t.mu.Unlock()

	if changed && hasActive && t.onChange != nil {
		t.onChange(active)
	}
	if t.onPersist != nil {
		t.onPersist()
	}
}

// SetActive selects a tenant. The tenant must be a member of the available
// set; otherwise the call fails with an invalid_scope error and nothing
// changes.
func (t *TenantScope) SetActive(tenantID id.TenantID) error {
	t.mu.Lock()

	if !t.containsLocked(tenantID) {
		t.mu.Unlock()
		return dErrors.New(dErrors.CodeInvalidScope, "tenant is not in the available set")
	}
	if t.hasActive && t.active == tenantID {
		t.mu.Unlock()
		return nil // already selected, nothing to invalidate
	}

	t.active = tenantID
	t.hasActive = true
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(tenantID)
	}
	if t.onPersist != nil {
		t.onPersist()
	}
	return nil
}

// Restore sets persisted state during rehydration. It fires no hooks: the
// rehydration path must never write back to storage.
func (t *TenantScope) Restore(active id.TenantID, hasActive bool, available []id.TenantID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.available = dedupe(available)
	t.active = active
	t.hasActive = hasActive && t.containsLocked(active)
	t.autoSelectLocked()
}

// Clear wipes the scope. Fired on logout; no hooks (the caller clears
// storage wholesale).
func (t *TenantScope) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = id.TenantID{}
	t.hasActive = false
	t.available = nil
}

// Active returns the selected tenant, if any.
func (t *TenantScope) Active() (id.TenantID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active, t.hasActive
}

// Available returns a copy of the available tenant set.
func (t *TenantScope) Available() []id.TenantID {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]id.TenantID, len(t.available))
	copy(out, t.available)
	return out
}

// autoSelectLocked applies the single-tenant auto-selection rule. It is
// idempotent: re-evaluating an already satisfied state is a no-op.
func (t *TenantScope) autoSelectLocked() bool {
	if t.hasActive || len(t.available) != 1 {
		return false
	}
	t.active = t.available[0]
	t.hasActive = true
	if t.logger != nil {
		t.logger.Debug("tenant auto-selected", "tenant_id", t.active.String())
	}
	return true
}

func (t *TenantScope) containsLocked(tenantID id.TenantID) bool {
	for _, candidate := range t.available {
		if candidate == tenantID {
			return true
		}
	}
	return false
}

func dedupe(ids []id.TenantID) []id.TenantID {
	seen := make(map[id.TenantID]struct{}, len(ids))
	out := make([]id.TenantID, 0, len(ids))
	for _, tid := range ids {
		if _, ok := seen[tid]; ok {
			continue
		}
		seen[tid] = struct{}{}
		out = append(out, tid)
	}
	return out
}
