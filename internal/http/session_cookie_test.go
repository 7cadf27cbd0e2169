package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookies_Store(t *testing.T) {
	tests := []struct {
		name   string
		opts   SessionCookieOptions
		secure bool
	}{
		{name: "development", opts: SessionCookieOptions{}, secure: false},
		{name: "production", opts: SessionCookieOptions{Secure: true}, secure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewSessionCookies(tt.opts).Store(rec, "tok")

			c := sessionCookieFrom(rec)
			require.NotNil(t, c)
			assert.Equal(t, "tok", c.Value)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, 604800, c.MaxAge)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.Equal(t, tt.secure, c.Secure)
		})
	}
}

func TestSessionCookies_Clear(t *testing.T) {
	rec := httptest.NewRecorder()
	NewSessionCookies(SessionCookieOptions{Secure: true, Domain: "antly.example"}).Clear(rec)

	raw := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(raw, SessionCookieName+"=;"), raw)
	assert.Contains(t, raw, "Max-Age=0")
	assert.Contains(t, raw, "Path=/")
	assert.Contains(t, raw, "Domain=antly.example")
	assert.Contains(t, raw, "HttpOnly")
	assert.Contains(t, raw, "Secure")
	assert.Contains(t, raw, "SameSite=Lax")
}

func TestSessionCookies_Retrieve(t *testing.T) {
	cookies := NewSessionCookies(SessionCookieOptions{})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := cookies.Retrieve(req)
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: ""})
		_, ok := cookies.Retrieve(req)
		assert.False(t, ok)
	})

	t.Run("present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "other", Value: "x"})
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc.def.ghi"})
		tok, ok := cookies.Retrieve(req)
		assert.True(t, ok)
		assert.Equal(t, "abc.def.ghi", tok)
	})
}
