package models

import (
	"time"

	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// Role names within a house. Free-form roles are allowed in storage; these
// are the two the platform assigns itself.
const (
	RoleOwner    = "owner"
	RoleResident = "resident"
)

// House is one physical property inside a tenant. A house with IsActive
// false stays visible in listings but cannot be selected as the active
// scope.
type House struct {
	ID        id.HouseID
	TenantID  id.TenantID
	Name      string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership links a user to a house with a role.
type Membership struct {
	HouseID   id.HouseID
	UserID    id.UserID
	TenantID  id.TenantID
	Role      string
	IsOwner   bool
	CreatedAt time.Time
}

// Access is a house joined with the requesting user's membership: what the
// house-membership endpoint returns, in list order.
type Access struct {
	House   House
	Role    string
	IsOwner bool
}
