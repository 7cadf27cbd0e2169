package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

// CredentialCodec issues and verifies signed session credentials.
// Implementations must be safe for concurrent use and must not consult any store:
// verification is a pure function of the token, the signing secret, and the clock.
type CredentialCodec interface {
	// Issue signs a credential for p, returning the compact token and the claims it carries.
	Issue(p domainauth.Principal) (token string, claims domainauth.Claims, err error)

	// Verify checks signature, algorithm, and expiry. It returns
	// domainauth.ErrExpiredCredential or domainauth.ErrInvalidCredential on failure.
	Verify(token string) (domainauth.Claims, error)
}

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash.
	Compare(hash, password string) error
}
