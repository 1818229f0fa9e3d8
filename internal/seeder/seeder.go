package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmodels "github.com/Flv72S/Eterna-Home-sub001/internal/auth/models"
	housemodels "github.com/Flv72S/Eterna-Home-sub001/internal/house/models"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// DemoTenantID is fixed so the demo credentials work across restarts.
var DemoTenantID = id.TenantID(uuid.MustParse("6f1c2a9e-0b3d-4f5a-8c7e-1d2b3a4c5d6e"))

// DemoPassword is the password of every seeded account.
const DemoPassword = "eterna-demo"

// UserStore defines methods for seeding user accounts
type UserStore interface {
	Create(ctx context.Context, user *authmodels.User) error
}

// HouseProvisioner creates a house with its owner membership
type HouseProvisioner interface {
	Provision(ctx context.Context, tenantID id.TenantID, ownerID id.UserID, name, address string) (id.HouseID, error)
}

// MembershipStore adds extra members to seeded houses
type MembershipStore interface {
	AddMember(ctx context.Context, m *housemodels.Membership) error
}

// Seeder populates in-memory stores with demo data
type Seeder struct {
	users       UserStore
	houses      HouseProvisioner
	memberships MembershipStore
	logger      *slog.Logger
}

// New creates a new seeder
func New(users UserStore, houses HouseProvisioner, memberships MembershipStore, logger *slog.Logger) *Seeder {
	return &Seeder{
		users:       users,
		houses:      houses,
		memberships: memberships,
		logger:      logger,
	}
}

// SeedAll populates all stores with demo data
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("seeding demo data...")

	users, err := s.seedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	houses, err := s.seedHouses(ctx, users)
	if err != nil {
		return fmt.Errorf("failed to seed houses: %w", err)
	}

	s.logger.Info("demo data seeded successfully",
		"tenant_id", DemoTenantID.String(),
		"users", len(users),
		"houses", houses,
		"password", DemoPassword,
	)

	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) ([]*authmodels.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	demoUsers := []struct {
		email    string
		username string
		fullName string
		active   bool
	}{
		{"anna@example.com", "anna", "Anna Bianchi", true},
		{"marco@example.com", "marco", "Marco Rossi", true},
		{"giulia@example.com", "giulia", "Giulia Verdi", true},
		{"paolo@example.com", "paolo", "Paolo Neri", false},
	}

	now := time.Now().UTC()
	var users []*authmodels.User
	for _, u := range demoUsers {
		user := &authmodels.User{
			ID:           id.UserID(uuid.New()),
			TenantID:     DemoTenantID,
			Email:        u.email,
			Username:     u.username,
			FullName:     u.fullName,
			PasswordHash: string(hash),
			IsActive:     u.active,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, nil
}

func (s *Seeder) seedHouses(ctx context.Context, users []*authmodels.User) (int, error) {
	demoHouses := []struct {
		ownerIdx  int
		name      string
		address   string
		residents []int
	}{
		{0, "Villa Aurora", "Via Roma 1, Milano", []int{1}},
		{0, "Casa al Mare", "Lungomare 12, Rimini", nil},
		{1, "Appartamento Brezza", "Via Milano 2, Torino", []int{2}},
	}

	now := time.Now().UTC()
	count := 0
	for _, h := range demoHouses {
		if h.ownerIdx >= len(users) {
			continue
		}
		owner := users[h.ownerIdx]

		houseID, err := s.houses.Provision(ctx, DemoTenantID, owner.ID, h.name, h.address)
		if err != nil {
			return count, err
		}
		count++

		for _, idx := range h.residents {
			if idx >= len(users) {
				continue
			}
			m := &housemodels.Membership{
				HouseID:   houseID,
				UserID:    users[idx].ID,
				TenantID:  DemoTenantID,
				Role:      housemodels.RoleResident,
				IsOwner:   false,
				CreatedAt: now,
			}
			if err := s.memberships.AddMember(ctx, m); err != nil {
				return count, err
			}
		}
	}

	return count, nil
}
