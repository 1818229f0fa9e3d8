package store

import (
	"context"

	"github.com/Flv72S/Eterna-Home-sub001/internal/document/models"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// Store persists document metadata. Listings are newest-first; every query
// is scoped by house, which is the authorization boundary.
type Store interface {
	Create(ctx context.Context, doc *models.Document) error
	ListByHouse(ctx context.Context, houseID id.HouseID) ([]models.Document, error)
}
