package config

import (
	"strings"
	"time"
)

const (
	// DefaultBcryptCost is the work factor for new password hashes.
	DefaultBcryptCost = 10

	minBcryptCost = 4
	maxBcryptCost = 31

	// MaxSessionTTL is the longest credential lifetime accepted.
	MaxSessionTTL = 7 * 24 * time.Hour
)

// AuthConfig groups session and password-hashing configuration.
type AuthConfig struct {
	// JWTSecret is the HMAC key that signs session credentials. Startup fails without it.
	JWTSecret string `env:"JWT_SECRET"`

	// SessionTTL is the credential lifetime, capped at MaxSessionTTL by Sanitize.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"168h"`

	// BcryptCost is the bcrypt work factor for new hashes.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.JWTSecret = strings.TrimSpace(a.JWTSecret)
	if a.BcryptCost < minBcryptCost || a.BcryptCost > maxBcryptCost {
		a.BcryptCost = DefaultBcryptCost
	}
	if a.SessionTTL <= 0 || a.SessionTTL > MaxSessionTTL {
		a.SessionTTL = MaxSessionTTL
	}
}
