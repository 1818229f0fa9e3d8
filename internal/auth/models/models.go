package models

import (
	"time"

	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// This file contains pure domain models for authentication: entities that
// should not depend on transport or HTTP-specific concerns.

// User represents an end-user account. This is a pure domain entity - use
// Profile for JSON responses.
type User struct {
	ID           id.UserID
	TenantID     id.TenantID
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials is the login input pair.
type Credentials struct {
	Email    string
	Password string
}

// LoginResult is what a successful login produces: a signed access token and
// the immutable profile snapshot the client caches for the session lifetime.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	JTI         string
	User        User
}
