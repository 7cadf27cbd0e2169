// Package jwtcodec implements the session credential codec with HMAC-SHA256 signed JWTs.
package jwtcodec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

// ErrMissingSecret is returned by New when no signing secret is configured.
var ErrMissingSecret = errors.New("jwt signing secret is not configured")

const signingAlg = "HS256"

// Config configures a Codec.
type Config struct {
	// Secret is the HMAC key. It is copied at construction.
	Secret []byte
	// Now is the clock used for iat/exp. Defaults to time.Now.
	Now func() time.Time
	// Lifetime defaults to domainauth.SessionLifetime and never exceeds it.
	Lifetime time.Duration
}

// Codec signs and verifies session credentials. It is immutable and safe for concurrent use.
type Codec struct {
	secret   []byte
	now      func() time.Time
	lifetime time.Duration
	parser   *jwt.Parser
}

type tokenClaims struct {
	jwt.RegisteredClaims

	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// New builds a Codec from cfg.
func New(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	c := &Codec{
		secret:   append([]byte(nil), cfg.Secret...),
		now:      cfg.Now,
		lifetime: cfg.Lifetime,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.lifetime <= 0 || c.lifetime > domainauth.SessionLifetime {
		c.lifetime = domainauth.SessionLifetime
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{signingAlg}),
		jwt.WithTimeFunc(c.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	return c, nil
}

// Issue signs a credential for p valid from now until now+lifetime.
func (c *Codec) Issue(p domainauth.Principal) (string, domainauth.Claims, error) {
	if strings.TrimSpace(p.ID) == "" {
		return "", domainauth.Claims{}, fmt.Errorf("%w: empty subject", domainauth.ErrInvalidClaims)
	}
	if !p.Role.Valid() {
		return "", domainauth.Claims{}, fmt.Errorf("%w: unknown role %q", domainauth.ErrInvalidClaims, p.Role)
	}

	now := c.now()
	tc := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
		Name:  p.Name,
		Email: p.Email,
		Role:  string(p.Role),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.secret)
	if err != nil {
		return "", domainauth.Claims{}, fmt.Errorf("sign credential: %w", err)
	}
	return token, toDomain(tc, p.Role), nil
}

// Verify checks the token and returns its claims.
// Expired tokens with a valid signature yield domainauth.ErrExpiredCredential;
// every other failure yields domainauth.ErrInvalidCredential.
func (c *Codec) Verify(token string) (domainauth.Claims, error) {
	if token == "" {
		return domainauth.Claims{}, domainauth.ErrInvalidCredential
	}

	var tc tokenClaims
	_, err := c.parser.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainauth.Claims{}, fmt.Errorf("%w: %w", domainauth.ErrExpiredCredential, err)
	default:
		return domainauth.Claims{}, fmt.Errorf("%w: %w", domainauth.ErrInvalidCredential, err)
	}

	role := domainauth.Role(tc.Role)
	if !role.Valid() || tc.Subject == "" || tc.IssuedAt == nil {
		return domainauth.Claims{}, fmt.Errorf("%w: unusable claims", domainauth.ErrInvalidCredential)
	}
	return toDomain(tc, role), nil
}

func toDomain(tc tokenClaims, role domainauth.Role) domainauth.Claims {
	out := domainauth.Claims{
		Subject: tc.Subject,
		Name:    tc.Name,
		Email:   tc.Email,
		Role:    role,
	}
	if tc.IssuedAt != nil {
		out.IssuedAt = tc.IssuedAt.UTC()
	}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.UTC()
	}
	return out
}
