package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antly/antly-api/config"
	"github.com/antly/antly-api/internal/adapters/jwtcodec"
	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

func TestBuildAuth_MissingSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, secret := range []string{"", "   "} {
		auth := config.AuthConfig{JWTSecret: secret, SessionTTL: time.Hour, BcryptCost: 10}
		auth.Sanitize()

		got, err := BuildAuth(AuthConfig{Auth: auth, Logger: logger})

		require.Error(t, err)
		assert.Nil(t, got)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "JWT_SECRET", cfgErr.Key)
		assert.ErrorIs(t, err, jwtcodec.ErrMissingSecret)
	}
}

func TestBuildAuth_IssuesVerifiableSessions(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	comps, err := BuildAuth(AuthConfig{
		Auth: config.AuthConfig{JWTSecret: "k", SessionTTL: domainauth.SessionLifetime, BcryptCost: 4},
		Now:  func() time.Time { return now },
	})
	require.NoError(t, err)
	assert.Equal(t, 4, comps.Hasher.Cost())

	token, claims, err := comps.Sessions.Issue(domainauth.Principal{ID: "u1", Role: domainauth.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), claims.ExpiresAt)

	got, ok := comps.Sessions.Resolve(t.Context(), token)
	require.True(t, ok)
	assert.Equal(t, "u1", got.Subject)
}

func TestBuildAuth_LongSessionTTLIsCapped(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	clock := now
	comps, err := BuildAuth(AuthConfig{
		Auth: config.AuthConfig{JWTSecret: "k", SessionTTL: 720 * time.Hour, BcryptCost: 4},
		Now:  func() time.Time { return clock },
	})
	require.NoError(t, err)

	token, claims, err := comps.Sessions.Issue(domainauth.Principal{ID: "u1", Role: domainauth.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, now.Add(domainauth.SessionLifetime), claims.ExpiresAt)

	clock = now.Add(8 * 24 * time.Hour)
	_, ok := comps.Sessions.Resolve(context.Background(), token)
	assert.False(t, ok)
}
