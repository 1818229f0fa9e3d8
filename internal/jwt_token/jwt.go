// Package jwttoken handles access token creation and validation.
package jwttoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// AccessTokenClaims represents the JWT claims for our access tokens.
type AccessTokenClaims struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewService(signingKey, issuer string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// TokenTTL exposes the configured access token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

// GenerateAccessToken issues an HS256 access token for the user. The second
// return value is the token's JTI, recorded for revocation on logout.
func (s *Service) GenerateAccessToken(userID id.UserID, tenantID id.TenantID, email string) (string, string, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	claims := AccessTokenClaims{
		TenantID: tenantID.String(),
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, jti, nil
}

// ParseAndValidate verifies the signature and standard claims. Expired
// tokens are reported as sentinel.ErrExpired so callers can distinguish a
// stale session from a forged or malformed token.
func (s *Service) ParseAndValidate(tokenString string) (*AccessTokenClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("access token expired: %w", sentinel.ErrExpired)
		}
		return nil, fmt.Errorf("parse access token: %w", sentinel.ErrInvalidInput)
	}

	claims, ok := token.Claims.(*AccessTokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token claims: %w", sentinel.ErrInvalidInput)
	}

	return claims, nil
}
