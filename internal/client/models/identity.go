// Package models defines the client-side data models of the gym console:
// the authenticated identity, customers, biometric records and the
// listing contract shared with the API client.
package models

import "time"

// Role is the staff role carried in the bearer token.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Identity is the authenticated staff member derived from the bearer token.
type Identity struct {
	// ID is the token subject ("sub").
	ID    string
	Email string
	Role  Role
	// Name is optional; empty when the token carries none.
	Name string
	// ExpiresAt is the token "exp" claim, zero when absent. It is informational:
	// expiry is enforced by the server answering 401.
	ExpiresAt time.Time
}

// DisplayName returns Name when set, otherwise Email.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// TokenResponse is the body returned by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SessionState is a snapshot of the session lifecycle. Identity is nil
// when no one is signed in.
type SessionState struct {
	Initializing bool
	Identity     *Identity
}

func (s SessionState) Authenticated() bool { return s.Identity != nil }
