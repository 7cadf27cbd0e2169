package httpx

import (
	"net/http"
)

// SessionCookieOptions configures SessionCookies.
type SessionCookieOptions struct {
	// Secure sets the Secure attribute. Enable in production.
	Secure bool
	// Domain is optional; empty means host-only.
	Domain string
}

// SessionCookies binds session tokens to the antly_auth cookie.
// It only touches request and response headers.
type SessionCookies struct {
	name   string
	secure bool
	domain string
	maxAge int
}

// NewSessionCookies builds a SessionCookies for the antly_auth cookie.
func NewSessionCookies(opts SessionCookieOptions) *SessionCookies {
	return &SessionCookies{
		name:   SessionCookieName,
		secure: opts.Secure,
		domain: opts.Domain,
		maxAge: SessionCookieMaxAge,
	}
}

// Store sets the cookie to token for the full session lifetime.
func (c *SessionCookies) Store(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, c.maxAge))
}

// Retrieve returns the token carried by r. A missing or empty cookie reports false.
func (c *SessionCookies) Retrieve(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// Clear expires the cookie immediately. Clearing an absent cookie is harmless.
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	// MaxAge < 0 serializes as Max-Age=0
	http.SetCookie(w, c.cookie("", -1))
}

func (c *SessionCookies) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
