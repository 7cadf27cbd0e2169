package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SessionLifetime is the fixed validity window of a session credential.
// There is no sliding renewal: a credential issued at T is rejected from T+SessionLifetime on.
const SessionLifetime = 7 * 24 * time.Hour

var (
	// ErrInvalidCredential covers malformed tokens, bad signatures, and unsupported algorithms.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrExpiredCredential is returned when a structurally valid credential is past its expiry.
	ErrExpiredCredential = errors.New("credential expired")
	// ErrInvalidClaims is returned when asked to issue a credential for an unusable principal.
	ErrInvalidClaims = errors.New("invalid claims")
	// ErrUnauthenticated means the request carries no valid session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the session is valid but its role is not allowed.
	ErrForbidden = errors.New("insufficient permissions")
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and token claims.
// Valid values are defined as constants below; the set is closed.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(value string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return r, nil
}

// SignupRole is the subset of roles an anonymous caller may choose at registration.
// Values can only be obtained from SignupClient, SignupProvider, or ParseSignupRole,
// so admin can never reach the registration path.
type SignupRole struct {
	role Role
}

var (
	SignupClient   = SignupRole{role: RoleClient}
	SignupProvider = SignupRole{role: RoleProvider}
)

// ParseSignupRole maps a raw value to a self-registerable role.
func ParseSignupRole(value string) (SignupRole, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleClient:
		return SignupClient, nil
	case RoleProvider:
		return SignupProvider, nil
	default:
		return SignupRole{}, fmt.Errorf("role %q cannot be chosen at registration", value)
	}
}

// Role returns the underlying role. The zero SignupRole yields an invalid Role.
func (s SignupRole) Role() Role { return s.role }

// Principal is an authenticated account: who the caller is and what it may do.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Claims is the verified content of a session credential.
type Claims struct {
	Subject   string    `json:"sub"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Principal returns the identity carried by the claims.
func (c Claims) Principal() Principal {
	return Principal{ID: c.Subject, Name: c.Name, Email: c.Email, Role: c.Role}
}

// RoleSet is the set of roles allowed to perform an operation.
type RoleSet struct {
	allowed map[Role]struct{}
}

// Roles builds a RoleSet. Unknown roles panic: a gate misconfiguration must fail at startup.
func Roles(roles ...Role) RoleSet {
	set := RoleSet{allowed: make(map[Role]struct{}, len(roles))}
	for _, r := range roles {
		if !r.Valid() {
			panic(fmt.Sprintf("auth.Roles: unknown role %q", r))
		}
		set.allowed[r] = struct{}{}
	}
	return set
}

// Contains reports whether r is in the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s.allowed[r]
	return ok
}

// List returns the roles in the set in a stable order (for logs and error messages).
func (s RoleSet) List() []Role {
	out := make([]Role, 0, len(s.allowed))
	for _, r := range []Role{RoleClient, RoleProvider, RoleAdmin} {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Authorize applies the role gate to a resolved caller.
// A nil caller is unauthenticated; a caller outside the set is forbidden.
// Passing the gate says nothing about resource ownership, which callers must still enforce.
func (s RoleSet) Authorize(caller *Claims) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !s.Contains(caller.Role) {
		return ErrForbidden
	}
	return nil
}
