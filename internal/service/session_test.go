package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

func TestNewSessionService_RequiresCodec(t *testing.T) {
	assert.Panics(t, func() { NewSessionService(SessionServiceOptions{}) })
}

func TestSessionService_IssueResolve(t *testing.T) {
	clock := &testClock{t: testNow}
	svc := newTestSessions(t, clock)
	p := domainauth.Principal{ID: "u-1", Name: "Ana", Email: "ana@x.com", Role: domainauth.RoleClient}

	token, claims, err := svc.Issue(p)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(domainauth.SessionLifetime), claims.ExpiresAt)

	got, ok := svc.Resolve(context.Background(), token)
	require.True(t, ok)
	assert.Equal(t, p, got.Principal())
}

func TestSessionService_IssueRejectsInvalidPrincipal(t *testing.T) {
	svc := newTestSessions(t, &testClock{t: testNow})
	_, _, err := svc.Issue(domainauth.Principal{ID: "u-1", Role: "root"})
	assert.ErrorIs(t, err, domainauth.ErrInvalidClaims)
}

func TestSessionService_ResolveIsTotal(t *testing.T) {
	clock := &testClock{t: testNow}
	svc := newTestSessions(t, clock)
	token, _, err := svc.Issue(domainauth.Principal{ID: "u-1", Role: domainauth.RoleProvider})
	require.NoError(t, err)

	expiredAt := &testClock{t: testNow}
	expiredSvc := newTestSessions(t, expiredAt)
	expiredAt.Advance(domainauth.SessionLifetime + time.Second)

	tests := []struct {
		name  string
		svc   *SessionService
		token string
	}{
		{name: "empty", svc: svc, token: ""},
		{name: "malformed", svc: svc, token: "not.a.jwt"},
		{name: "garbage", svc: svc, token: "garbage"},
		{name: "truncated signature", svc: svc, token: token[:len(token)-2]},
		{name: "expired", svc: expiredSvc, token: token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := tt.svc.Resolve(context.Background(), tt.token)
			assert.False(t, ok)
			assert.Nil(t, claims)
		})
	}
}

func TestRejectReason(t *testing.T) {
	assert.Equal(t, "expired", rejectReason(domainauth.ErrExpiredCredential))
	assert.Equal(t, "invalid", rejectReason(domainauth.ErrInvalidCredential))
	assert.Equal(t, "unknown", rejectReason(assert.AnError))
}
