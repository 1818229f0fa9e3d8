package store

import (
	"context"

	"github.com/Flv72S/Eterna-Home-sub001/internal/house/models"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// Store persists houses and memberships.
//
// Error contract: lookups return sentinel.ErrNotFound (optionally wrapped)
// when nothing matches; infrastructure failures are returned wrapped with
// context. ListForUser returns houses in ascending house-ID order - the
// client's "first house" auto-selection depends on this ordering being
// stable.
type Store interface {
	CreateHouse(ctx context.Context, house *models.House) (id.HouseID, error)
	AddMember(ctx context.Context, m *models.Membership) error
	RemoveMember(ctx context.Context, houseID id.HouseID, userID id.UserID) error
	ListForUser(ctx context.Context, userID id.UserID, tenantID id.TenantID) ([]models.Access, error)
	FindAccess(ctx context.Context, userID id.UserID, tenantID id.TenantID, houseID id.HouseID) (*models.Access, error)
}
