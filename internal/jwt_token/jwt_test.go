package jwttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("secret", "eterna-home-test", 30*time.Minute)
	userID := id.UserID(uuid.New())
	tenantID := id.TenantID(uuid.New())

	token, jti, err := svc.GenerateAccessToken(userID, tenantID, "anna@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := svc.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "eterna-home-test", claims.Issuer)
}

func TestParseAndValidate_Expired(t *testing.T) {
	svc := NewService("secret", "eterna-home-test", -time.Minute)

	token, _, err := svc.GenerateAccessToken(id.UserID(uuid.New()), id.TenantID(uuid.New()), "")
	require.NoError(t, err)

	_, err = svc.ParseAndValidate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrExpired)
}

func TestParseAndValidate_WrongKey(t *testing.T) {
	issuer := NewService("secret-a", "eterna-home-test", 30*time.Minute)
	verifier := NewService("secret-b", "eterna-home-test", 30*time.Minute)

	token, _, err := issuer.GenerateAccessToken(id.UserID(uuid.New()), id.TenantID(uuid.New()), "")
	require.NoError(t, err)

	_, err = verifier.ParseAndValidate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
	assert.NotErrorIs(t, err, sentinel.ErrExpired)
}

func TestParseAndValidate_Garbage(t *testing.T) {
	svc := NewService("secret", "eterna-home-test", 30*time.Minute)

	_, err := svc.ParseAndValidate("not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
}

func TestJTIsAreUnique(t *testing.T) {
	svc := NewService("secret", "eterna-home-test", 30*time.Minute)
	userID := id.UserID(uuid.New())
	tenantID := id.TenantID(uuid.New())

	_, jti1, err := svc.GenerateAccessToken(userID, tenantID, "")
	require.NoError(t, err)
	_, jti2, err := svc.GenerateAccessToken(userID, tenantID, "")
	require.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}
