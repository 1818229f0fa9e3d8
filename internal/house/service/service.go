// Package service implements house membership queries and the house-level
// access checks behind the scope middleware.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Flv72S/Eterna-Home-sub001/internal/house/metrics"
	"github.com/Flv72S/Eterna-Home-sub001/internal/house/models"
	"github.com/Flv72S/Eterna-Home-sub001/internal/house/store"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/middleware"
	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// Service answers "which houses can this user see" and "may this user act
// in this house".
type Service struct {
	houses  store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New constructs the house service. Metrics may be nil in tests.
func New(houses store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		houses:  houses,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("house/service"),
	}
}

// ListForUser returns the user's houses within the tenant, ascending by
// house ID. An empty list is a valid answer, not an error.
func (s *Service) ListForUser(ctx context.Context, userID id.UserID, tenantID id.TenantID) ([]models.Access, error) {
	ctx, span := s.tracer.Start(ctx, "house.ListForUser")
	defer span.End()

	if userID.IsNil() || tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user and tenant are required")
	}

	accesses, err := s.houses.ListForUser(ctx, userID, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "house listing failed")
	}

	if s.metrics != nil {
		s.metrics.ListRequests.Inc()
	}
	span.SetAttributes(attribute.Int("house.count", len(accesses)))
	return accesses, nil
}

// Access implements middleware.HouseAccessChecker.
func (s *Service) Access(ctx context.Context, userID id.UserID, tenantID id.TenantID, houseID id.HouseID) (middleware.HouseGrant, error) {
	ctx, span := s.tracer.Start(ctx, "house.Access")
	defer span.End()

	if s.metrics != nil {
		s.metrics.AccessChecks.Inc()
	}

	access, err := s.houses.FindAccess(ctx, userID, tenantID, houseID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.AccessDenials.Inc()
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return middleware.HouseGrant{}, err
		}
		return middleware.HouseGrant{}, dErrors.Wrap(err, dErrors.CodeInternal, "access check failed")
	}

	// Deactivated houses are visible in listings but not usable as a scope.
	if !access.House.IsActive {
		if s.metrics != nil {
			s.metrics.AccessDenials.Inc()
		}
		return middleware.HouseGrant{}, dErrors.New(dErrors.CodeHouseAccessDenied, "house is deactivated")
	}

	return middleware.HouseGrant{
		HouseID: houseID,
		Role:    access.Role,
		IsOwner: access.IsOwner,
	}, nil
}

// Provision creates a house and makes ownerID its owner. Used by seeding and
// admin tooling rather than the public API surface.
func (s *Service) Provision(ctx context.Context, tenantID id.TenantID, ownerID id.UserID, name, address string) (id.HouseID, error) {
	if name == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "house name is required")
	}

	now := time.Now().UTC()
	houseID, err := s.houses.CreateHouse(ctx, &models.House{
		TenantID:  tenantID,
		Name:      name,
		Address:   address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "house creation failed")
	}

	err = s.houses.AddMember(ctx, &models.Membership{
		HouseID:   houseID,
		UserID:    ownerID,
		TenantID:  tenantID,
		Role:      models.RoleOwner,
		IsOwner:   true,
		CreatedAt: now,
	})
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "owner membership failed")
	}

	s.logger.InfoContext(ctx, "house provisioned",
		"house_id", houseID.String(),
		"tenant_id", tenantID.String(),
		"owner_id", ownerID.String(),
	)
	return houseID, nil
}
