package user

import (
	"context"

	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/models"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// Store persists user accounts.
//
// Error contract: FindByEmail and FindByID return sentinel.ErrNotFound
// (optionally wrapped) when no user matches; infrastructure failures are
// returned wrapped with context.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
}
