package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a server-side login. The cookie holds the raw token, only its
// fingerprint is stored.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its lifetime at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Actor is the authenticated identity a request runs as. It is passed
// explicitly into every workflow operation.
type Actor struct {
	UserID    string
	Username  string
	SessionID string
	TokenHash string
}

// IsZero reports whether no one is authenticated.
func (a Actor) IsZero() bool { return a.UserID == "" }

// PrincipalID lets an Actor travel through the HTTP session middleware.
func (a Actor) PrincipalID() string { return a.UserID }

type RegisterInput struct {
	Username  string
	Password1 string
	Password2 string
}

type ChangePasswordInput struct {
	OldPassword  string
	NewPassword1 string
	NewPassword2 string
}
