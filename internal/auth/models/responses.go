package models

import "time"

// Profile is the JSON shape of a user profile as returned by the login
// endpoint and cached verbatim by clients. It is a snapshot: clients never
// mutate individual fields, only replace it wholesale on re-login.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	TenantID  string    `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse is the wire shape of a successful login.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	User        Profile `json:"user"`
}

// ProfileOf converts a domain user into its wire snapshot.
func ProfileOf(u User) Profile {
	return Profile{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		TenantID:  u.TenantID.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
