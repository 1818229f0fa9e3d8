package service

import (
	"context"
	"fmt"

	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/middleware"
	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// ValidateToken implements middleware.TokenValidator: signature and expiry
// via the token service, then the revocation list. A revoked token fails
// with sentinel.ErrRevoked so the middleware reports it session-level.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*middleware.TokenClaims, error) {
	claims, err := s.tokens.ParseAndValidate(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("revocation check: %w", sentinel.ErrUnavailable)
		}
		if revoked {
			return nil, fmt.Errorf("token %s: %w", claims.ID, sentinel.ErrRevoked)
		}
	}

	userID, err := id.ParseUserID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", sentinel.ErrInvalidInput)
	}
	tenantID, err := id.ParseTenantID(claims.TenantID)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant claim: %w", sentinel.ErrInvalidInput)
	}

	return &middleware.TokenClaims{
		UserID:   userID,
		TenantID: tenantID,
		JTI:      claims.ID,
	}, nil
}
