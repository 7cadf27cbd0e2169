package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Codec  ports.CredentialCodec // Required: signs and verifies session credentials
	Logger *slog.Logger          // Optional: structured logger
}

// SessionService issues session credentials and resolves callers from them.
// It holds no per-session state; a credential is valid until it expires.
type SessionService struct {
	codec  ports.CredentialCodec
	logger *slog.Logger
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Codec == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("CredentialCodec is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		codec:  opts.Codec,
		logger: logger.With("component", "session_service"),
	}
}

// Issue signs a new credential for p.
func (s *SessionService) Issue(p domainauth.Principal) (string, domainauth.Claims, error) {
	token, claims, err := s.codec.Issue(p)
	if err != nil {
		return "", domainauth.Claims{}, fmt.Errorf("issue session: %w", err)
	}
	return token, claims, nil
}

// Resolve maps a raw token to the caller's claims. It never fails: an empty,
// malformed, forged or expired token all resolve to (nil, false).
func (s *SessionService) Resolve(ctx context.Context, token string) (*domainauth.Claims, bool) {
	if token == "" {
		return nil, false
	}
	claims, err := s.codec.Verify(token)
	if err != nil {
		s.logger.DebugContext(ctx, "session credential rejected", "reason", rejectReason(err))
		return nil, false
	}
	return &claims, true
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domainauth.ErrExpiredCredential):
		return "expired"
	case errors.Is(err, domainauth.ErrInvalidCredential):
		return "invalid"
	default:
		return "unknown"
	}
}
