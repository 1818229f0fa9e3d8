package scope

import (
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// Active returns the active house ID and whether one is selected.
func (s *HouseScope) Active() (id.HouseID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != 0
}

// ActiveHouse returns the full entry for the active house. A provisional
// selection has no entry yet, so ok is false until a refresh confirms it.
func (s *HouseScope) ActiveHouse() (House, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == 0 {
		return House{}, false
	}
	return s.findLocked(s.active)
}

// Houses returns a copy of the available list in the order received.
func (s *HouseScope) Houses() []House {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]House, len(s.houses))
	copy(out, s.houses)
	return out
}

// IsLoading reports whether a membership refresh is in flight.
func (s *HouseScope) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// HasActiveHouse reports whether a house is selected (provisional counts).
func (s *HouseScope) HasActiveHouse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != 0
}

// HasHouses reports whether the user belongs to at least one house.
func (s *HouseScope) HasHouses() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.houses) > 0
}

// HasMultipleHouses reports whether the user belongs to more than one house.
func (s *HouseScope) HasMultipleHouses() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.houses) > 1
}

// IsOwner reports whether the user owns the active house. False when no
// house is active or the selection is still provisional.
func (s *HouseScope) IsOwner() bool {
	h, ok := s.ActiveHouse()
	return ok && h.IsOwner
}

// RoleInHouse returns the user's role in the active house, or "" when no
// confirmed selection exists.
func (s *HouseScope) RoleInHouse() string {
	h, ok := s.ActiveHouse()
	if !ok {
		return ""
	}
	return h.Role
}

// HouseByID looks up an entry in the available list.
func (s *HouseScope) HouseByID(houseID id.HouseID) (House, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(houseID)
}

// OwnedHouses returns the houses the user owns, in list order.
func (s *HouseScope) OwnedHouses() []House {
	return s.filter(func(h House) bool { return h.IsOwner })
}

// ResidentHouses returns the houses where the user is a plain resident.
func (s *HouseScope) ResidentHouses() []House {
	return s.filter(func(h House) bool { return !h.IsOwner })
}

func (s *HouseScope) filter(keep func(House) bool) []House {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []House
	for _, h := range s.houses {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}
