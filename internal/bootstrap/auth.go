package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/antly/antly-api/config"
	"github.com/antly/antly-api/internal/adapters/jwtcodec"
	"github.com/antly/antly-api/internal/adapters/passhash"
	"github.com/antly/antly-api/internal/service"
)

// ConfigurationError reports a missing or invalid setting that prevents startup.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// AuthConfig contains configuration for the session and password components.
type AuthConfig struct {
	Auth   config.AuthConfig
	Now    func() time.Time // Optional: defaults to time.Now
	Logger *slog.Logger
}

// AuthComponents are the constructed, immutable auth building blocks.
type AuthComponents struct {
	Sessions *service.SessionService
	Hasher   *passhash.Bcrypt
}

// BuildAuth constructs the credential codec and password hasher.
// A missing signing secret is a *ConfigurationError; the service must not start without one.
func BuildAuth(cfg AuthConfig) (*AuthComponents, error) {
	codec, err := jwtcodec.New(jwtcodec.Config{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Now:      cfg.Now,
		Lifetime: cfg.Auth.SessionTTL,
	})
	if err != nil {
		if errors.Is(err, jwtcodec.ErrMissingSecret) {
			return nil, &ConfigurationError{Key: "JWT_SECRET", Err: err}
		}
		return nil, fmt.Errorf("build credential codec: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("auth configured",
			"session_ttl", cfg.Auth.SessionTTL.String(),
			"bcrypt_cost", cfg.Auth.BcryptCost)
	}

	return &AuthComponents{
		Sessions: service.NewSessionService(service.SessionServiceOptions{Codec: codec, Logger: cfg.Logger}),
		Hasher:   passhash.NewBcrypt(cfg.Auth.BcryptCost),
	}, nil
}
