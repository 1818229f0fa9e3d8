package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Flv72S/Eterna-Home-sub001/internal/house/models"
	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

type memberKey struct {
	houseID id.HouseID
	userID  id.UserID
}

// InMemoryStore stores houses and memberships in memory for tests/dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  id.HouseID
	houses  map[id.HouseID]*models.House
	members map[memberKey]*models.Membership
}

// NewInMemory constructs an empty in-memory house store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		nextID:  1,
		houses:  make(map[id.HouseID]*models.House),
		members: make(map[memberKey]*models.Membership),
	}
}

func (s *InMemoryStore) CreateHouse(_ context.Context, house *models.House) (id.HouseID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	houseID := s.nextID
	s.nextID++

	copied := *house
	copied.ID = houseID
	s.houses[houseID] = &copied
	return houseID, nil
}

func (s *InMemoryStore) AddMember(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.houses[m.HouseID]; !ok {
		return fmt.Errorf("house not found: %w", sentinel.ErrNotFound)
	}
	copied := *m
	s.members[memberKey{m.HouseID, m.UserID}] = &copied
	return nil
}

func (s *InMemoryStore) RemoveMember(_ context.Context, houseID id.HouseID, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{houseID, userID}
	if _, ok := s.members[key]; !ok {
		return fmt.Errorf("membership not found: %w", sentinel.ErrNotFound)
	}
	delete(s.members, key)
	return nil
}

func (s *InMemoryStore) ListForUser(_ context.Context, userID id.UserID, tenantID id.TenantID) ([]models.Access, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accesses := make([]models.Access, 0)
	for key, m := range s.members {
		if key.userID != userID || m.TenantID != tenantID {
			continue
		}
		house, ok := s.houses[key.houseID]
		if !ok {
			continue
		}
		accesses = append(accesses, models.Access{House: *house, Role: m.Role, IsOwner: m.IsOwner})
	}

	// Stable list order is part of the contract.
	sort.Slice(accesses, func(i, j int) bool {
		return accesses[i].House.ID < accesses[j].House.ID
	})
	return accesses, nil
}

func (s *InMemoryStore) FindAccess(_ context.Context, userID id.UserID, tenantID id.TenantID, houseID id.HouseID) (*models.Access, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	house, ok := s.houses[houseID]
	if !ok || house.TenantID != tenantID {
		return nil, fmt.Errorf("house not found: %w", sentinel.ErrNotFound)
	}
	m, ok := s.members[memberKey{houseID, userID}]
	if !ok {
		return nil, fmt.Errorf("membership not found: %w", sentinel.ErrNotFound)
	}
	return &models.Access{House: *house, Role: m.Role, IsOwner: m.IsOwner}, nil
}
