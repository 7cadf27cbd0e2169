//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

// User is a persisted marketplace account.
// PasswordHash never leaves the data and service layers.
type User struct {
	ID           string          `json:"id"         db:"id"`
	Name         string          `json:"name"       db:"name"`
	Email        string          `json:"email"      db:"email"`
	PasswordHash string          `json:"-"          db:"password_hash"`
	Role         domainauth.Role `json:"role"       db:"role"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Principal returns the authentication view of the user.
func (u User) Principal() domainauth.Principal {
	return domainauth.Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// CreateUserRequest carries an already-validated, already-hashed account.
type CreateUserRequest struct {
	Name         string
	Email        string
	PasswordHash string
	Role         domainauth.Role
}

// NormalizeEmail case-folds and trims an email address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UsersListOptions controls paging for admin user listings.
type UsersListOptions struct {
	Limit  int
	Offset int
	Role   *domainauth.Role
}
