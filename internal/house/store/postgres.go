package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Flv72S/Eterna-Home-sub001/internal/house/models"
	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// PostgresStore persists houses and memberships in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed house store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateHouse(ctx context.Context, house *models.House) (id.HouseID, error) {
	var houseID int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO houses (tenant_id, name, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		uuid.UUID(house.TenantID), house.Name, house.Address, house.IsActive,
		house.CreatedAt, house.UpdatedAt,
	).Scan(&houseID)
	if err != nil {
		return 0, fmt.Errorf("insert house: %w", err)
	}
	return id.HouseID(houseID), nil
}

func (s *PostgresStore) AddMember(ctx context.Context, m *models.Membership) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO house_members (house_id, user_id, tenant_id, role, is_owner, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (house_id, user_id) DO UPDATE SET role = $4, is_owner = $5`,
		int64(m.HouseID), uuid.UUID(m.UserID), uuid.UUID(m.TenantID),
		m.Role, m.IsOwner, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveMember(ctx context.Context, houseID id.HouseID, userID id.UserID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM house_members WHERE house_id = $1 AND user_id = $2`,
		int64(houseID), uuid.UUID(userID),
	)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("membership not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

const accessColumns = `
	h.id, h.tenant_id, h.name, h.address, h.is_active, h.created_at, h.updated_at,
	m.role, m.is_owner`

func (s *PostgresStore) ListForUser(ctx context.Context, userID id.UserID, tenantID id.TenantID) ([]models.Access, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+accessColumns+`
		FROM houses h
		JOIN house_members m ON m.house_id = h.id
		WHERE m.user_id = $1 AND m.tenant_id = $2
		ORDER BY h.id ASC`,
		uuid.UUID(userID), uuid.UUID(tenantID),
	)
	if err != nil {
		return nil, fmt.Errorf("list houses: %w", err)
	}
	defer rows.Close()

	accesses := make([]models.Access, 0)
	for rows.Next() {
		access, err := scanAccess(rows.Scan)
		if err != nil {
			return nil, err
		}
		accesses = append(accesses, *access)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate houses: %w", err)
	}
	return accesses, nil
}

func (s *PostgresStore) FindAccess(ctx context.Context, userID id.UserID, tenantID id.TenantID, houseID id.HouseID) (*models.Access, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accessColumns+`
		FROM houses h
		JOIN house_members m ON m.house_id = h.id
		WHERE m.user_id = $1 AND m.tenant_id = $2 AND h.id = $3`,
		uuid.UUID(userID), uuid.UUID(tenantID), int64(houseID),
	)
	access, err := scanAccess(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("house access not found: %w", sentinel.ErrNotFound)
	}
	return access, err
}

func scanAccess(scan func(...any) error) (*models.Access, error) {
	var (
		a   models.Access
		hid int64
		tid uuid.UUID
	)
	err := scan(&hid, &tid, &a.House.Name, &a.House.Address, &a.House.IsActive,
		&a.House.CreatedAt, &a.House.UpdatedAt, &a.Role, &a.IsOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan house access: %w", err)
	}
	a.House.ID = id.HouseID(hid)
	a.House.TenantID = id.TenantID(tid)
	return &a, nil
}
