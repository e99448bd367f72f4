package usersrepo

import (
	"strings"
	"time"
)

// User is a stored account. The password hash never leaves the core.
type User struct {
	UserID       string    `db:"user_id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewUser is what a store persists at signup. The store assigns the id.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Signup is the registration payload.
type Signup struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s Signup) Validate() error {
	if strings.TrimSpace(s.Username) == "" || strings.TrimSpace(s.Email) == "" || s.Password == "" {
		return ErrMissingFields
	}
	return nil
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return ErrMissingFields
	}
	return nil
}
