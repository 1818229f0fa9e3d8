package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Flv72S/Eterna-Home-sub001/internal/document/models"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// InMemoryStore stores document metadata in memory for tests/dev.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs []models.Document
}

// NewInMemory constructs an empty in-memory document store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Create(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, *doc)
	return nil
}

func (s *InMemoryStore) ListByHouse(_ context.Context, houseID id.HouseID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, 0)
	for _, d := range s.docs {
		if d.HouseID == houseID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
