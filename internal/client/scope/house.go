package scope

import (
	"context"
	"log/slog"
	"sync"

	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// House is one entry of the membership list as the client sees it. A house
// with IsActive false is visible but cannot be selected.
type House struct {
	ID       id.HouseID
	Name     string
	Address  string
	IsOwner  bool
	Role     string
	IsActive bool
}

// Selectable reports whether the house may become the active scope.
func (h House) Selectable() bool { return h.IsActive }

// HouseLister is the house-membership collaborator.
type HouseLister interface {
	ListHouses(ctx context.Context) ([]House, error)
}

// NoticeKind classifies recoverable house-scope notices surfaced to the
// user. None of them implies a session problem.
type NoticeKind string

const (
	// NoticeAccessRevoked: the previously active house vanished from a
	// refreshed list or the backend denied access to it.
	NoticeAccessRevoked NoticeKind = "access_revoked"
	// NoticeRefreshFailed: the membership refresh itself failed; the prior
	// list is kept and the user may retry.
	NoticeRefreshFailed NoticeKind = "refresh_failed"
)

// Notice is a recoverable, user-facing house-scope event.
type Notice struct {
	Kind    NoticeKind
	HouseID id.HouseID
	Message string
}

// HouseScope tracks the houses available under the current tenant and the
// active selection. Refreshes are asynchronous; a monotonically increasing
// sequence number detects superseded responses so a stale refresh can never
// overwrite state mutated after it started (last relevant write wins).
type HouseScope struct {
	mu          sync.Mutex
	lister      HouseLister
	active      id.HouseID // 0 = absent
	provisional bool       // active restored from storage, unconfirmed by any refresh
	houses      []House
	loading     bool
	loadingSeq  uint64 // seq of the refresh that set loading
	seq         uint64

	onActiveChange func(id.HouseID, bool) // write-through hook
	onNotice       func(Notice)
	logger         *slog.Logger
}

// NewHouseScope constructs an empty house scope. The lister may be set
// later, before the first refresh.
func NewHouseScope(lister HouseLister, logger *slog.Logger) *HouseScope {
	return &HouseScope{lister: lister, logger: logger}
}

// SetLister injects the house-membership collaborator.
func (s *HouseScope) SetLister(lister HouseLister) { s.lister = lister }

// SetOnActiveChange registers the write-through hook fired when the active
// house changes (selection, deselection, or collapse).
func (s *HouseScope) SetOnActiveChange(fn func(id.HouseID, bool)) { s.onActiveChange = fn }

// SetOnNotice registers the hook receiving recoverable notices.
func (s *HouseScope) SetOnNotice(fn func(Notice)) { s.onNotice = fn }

// Refresh queries the membership collaborator and replaces the available
// list wholesale. If a newer refresh or a user action happened while the
// query was in flight, the result is discarded on arrival.
func (s *HouseScope) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.lister == nil {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeInternal, "house scope has no membership collaborator")
	}
	s.seq++
	seq := s.seq
	s.loading = true
	s.loadingSeq = seq
	lister := s.lister
	s.mu.Unlock()

	houses, err := lister.ListHouses(ctx)

	s.mu.Lock()
	if s.loadingSeq == seq {
		s.loading = false
		s.loadingSeq = 0
	}
	if seq != s.seq {
		// Superseded by a newer refresh or an explicit user action.
		s.mu.Unlock()
		return nil
	}

	if err != nil {
		s.mu.Unlock()
		s.notify(Notice{Kind: NoticeRefreshFailed, Message: "could not refresh house list"})
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "house refresh failed")
	}

	s.houses = houses
	collapsed := false
	var collapsedID id.HouseID
	if s.active != 0 {
		h, ok := s.findLocked(s.active)
		if !ok || !h.Selectable() {
			collapsedID = s.active
			s.active = 0
			collapsed = true
		}
		s.provisional = false
	}
	s.mu.Unlock()

	if collapsed {
		s.activeChanged(0, false)
		s.notify(Notice{
			Kind:    NoticeAccessRevoked,
			HouseID: collapsedID,
			Message: "the selected house is no longer available",
		})
	}
	return nil
}

// RefreshAsync runs Refresh in a goroutine; errors are logged, not
// returned, because a superseding action may make them irrelevant.
func (s *HouseScope) RefreshAsync(ctx context.Context) {
	go func() {
		if err := s.Refresh(ctx); err != nil && s.logger != nil {
			s.logger.Warn("house refresh failed", "error", err)
		}
	}()
}

// SetActive selects a house. It must be present in the available list and
// selectable. The explicit action supersedes any in-flight refresh.
func (s *HouseScope) SetActive(houseID id.HouseID) error {
	s.mu.Lock()

	house, ok := s.findLocked(houseID)
	if !ok {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeInvalidScope, "house is not in the available list")
	}
	if !house.Selectable() {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeInvalidScope, "house is deactivated")
	}

	s.seq++ // drop any in-flight refresh result
	s.active = houseID
	s.provisional = false
	s.mu.Unlock()

	s.activeChanged(houseID, true)
	return nil
}

// ClearActive deselects the house explicitly. Always succeeds.
func (s *HouseScope) ClearActive() {
	s.mu.Lock()
	had := s.active != 0
	s.seq++
	s.active = 0
	s.provisional = false
	s.mu.Unlock()

	if had {
		s.activeChanged(0, false)
	}
}

// SelectFirst activates the first selectable house in list order. It is a
// no-op when a house is already active or nothing is selectable, so calling
// it repeatedly is safe.
func (s *HouseScope) SelectFirst() {
	s.mu.Lock()
	if s.active != 0 {
		s.mu.Unlock()
		return
	}
	var chosen id.HouseID
	for _, h := range s.houses {
		if h.Selectable() {
			chosen = h.ID
			break
		}
	}
	if chosen == 0 {
		s.mu.Unlock()
		return
	}
	s.seq++
	s.active = chosen
	s.provisional = false
	s.mu.Unlock()

	s.activeChanged(chosen, true)
}

// RestoreActive rehydrates a persisted selection. The membership list is
// unknown at this point, so the selection is provisional: the first refresh
// either confirms it or collapses it. Fires no hooks.
func (s *HouseScope) RestoreActive(houseID id.HouseID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if houseID == 0 {
		return
	}
	s.active = houseID
	s.provisional = true
}

// HandleAccessDenied reacts to a house-scope authorization failure reported
// by the request authorizer: clear the selection, keep session and tenant
// untouched, tell the user. The action supersedes in-flight refreshes.
func (s *HouseScope) HandleAccessDenied() {
	s.mu.Lock()
	denied := s.active
	if denied == 0 {
		s.mu.Unlock()
		return
	}
	s.seq++
	s.active = 0
	s.provisional = false
	s.mu.Unlock()

	s.activeChanged(0, false)
	s.notify(Notice{
		Kind:    NoticeAccessRevoked,
		HouseID: denied,
		Message: "access to the selected house was denied",
	})
}

// Reset wipes the scope entirely. Fired on logout and tenant switch; fires
// no hooks (the caller owns storage cleanup in those flows).
func (s *HouseScope) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.active = 0
	s.provisional = false
	s.houses = nil
	s.loading = false
	s.loadingSeq = 0
}

func (s *HouseScope) activeChanged(houseID id.HouseID, present bool) {
	if s.onActiveChange != nil {
		s.onActiveChange(houseID, present)
	}
}

func (s *HouseScope) notify(n Notice) {
	if s.onNotice != nil {
		s.onNotice(n)
	}
	if s.logger != nil {
		s.logger.Info("house scope notice", "kind", string(n.Kind), "house_id", n.HouseID.String())
	}
}

func (s *HouseScope) findLocked(houseID id.HouseID) (House, bool) {
	for _, h := range s.houses {
		if h.ID == houseID {
			return h, true
		}
	}
	return House{}, false
}
