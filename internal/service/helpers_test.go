package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/antly/antly-api/internal/adapters/jwtcodec"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSessions(t *testing.T, clock *testClock) *SessionService {
	t.Helper()
	codec, err := jwtcodec.New(jwtcodec.Config{Secret: []byte("test-secret"), Now: clock.Now})
	require.NoError(t, err)
	return NewSessionService(SessionServiceOptions{Codec: codec})
}
