package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/observability/metrics"
)

// gated wraps a handler that records the caller it saw.
func gated(t *testing.T, h *apiHarness, mw func(http.Handler) http.Handler) (http.Handler, *bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		claims, ok := CallerFromContext(r.Context())
		require.True(t, ok)
		require.NotEmpty(t, claims.Subject)
		w.WriteHeader(http.StatusNoContent)
	})
	return mw(next), &reached
}

func harnessGate(h *apiHarness) GateDeps {
	return GateDeps{Cookies: NewSessionCookies(SessionCookieOptions{}), Sessions: h.sessions}
}

func TestRequireRole(t *testing.T) {
	h := newAPIHarness(t)
	gate := harnessGate(h)
	_, providerCookie := h.sessionFor(t, domainauth.RoleProvider)
	_, adminCookie := h.sessionFor(t, domainauth.RoleAdmin)

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantCode   string
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized, wantCode: ErrCodeAuthRequired},
		{
			name:       "malformed token",
			cookie:     &http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrCodeAuthRequired,
		},
		{name: "wrong role", cookie: providerCookie, wantStatus: http.StatusForbidden, wantCode: ErrCodeForbidden},
		{name: "allowed role", cookie: adminCookie, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, reached := gated(t, h, RequireRole(gate, domainauth.RoleAdmin))
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.False(t, *reached, "handler must not run")
				assert.Equal(t, tt.wantCode, decodeBody[errorResponse](t, rec).Error)
			} else {
				assert.True(t, *reached)
			}
		})
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	h := newAPIHarness(t)
	gate := harnessGate(h)
	_, clientCookie := h.sessionFor(t, domainauth.RoleClient)
	_, providerCookie := h.sessionFor(t, domainauth.RoleProvider)

	for _, c := range []*http.Cookie{clientCookie, providerCookie} {
		handler, reached := gated(t, h, RequireRole(gate, domainauth.RoleClient, domainauth.RoleProvider))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(c)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, *reached)
	}
}

func TestRequireRole_ExpiredSession(t *testing.T) {
	h := newAPIHarness(t)
	_, cookie := h.sessionFor(t, domainauth.RoleAdmin)
	h.clock.Advance(domainauth.SessionLifetime + time.Second)

	handler, reached := gated(t, h, RequireRole(harnessGate(h), domainauth.RoleAdmin))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestResolveCaller(t *testing.T) {
	h := newAPIHarness(t)
	cookies := NewSessionCookies(SessionCookieOptions{})
	u, cookie := h.sessionFor(t, domainauth.RoleClient)

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		claims, ok := ResolveCaller(req, cookies, h.sessions)
		require.True(t, ok)
		assert.Equal(t, u.ID, claims.Subject)
		assert.Equal(t, domainauth.RoleClient, claims.Role)
		assert.Equal(t, u.Email, claims.Email)
	})

	t.Run("no cookie", func(t *testing.T) {
		claims, ok := ResolveCaller(httptest.NewRequest(http.MethodGet, "/", nil), cookies, h.sessions)
		assert.False(t, ok)
		assert.Nil(t, claims)
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie.Value + "x"})
		_, ok := ResolveCaller(req, cookies, h.sessions)
		assert.False(t, ok)
	})
}

func TestOptionalAuth(t *testing.T) {
	h := newAPIHarness(t)
	_, cookie := h.sessionFor(t, domainauth.RoleProvider)

	var seen bool
	handler := OptionalAuth(harnessGate(h))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen)
}

func TestCallerContext(t *testing.T) {
	ctx := WithCaller(t.Context(), nil)
	_, ok := CallerFromContext(ctx)
	assert.False(t, ok)

	claims := &domainauth.Claims{Subject: "u1", Role: domainauth.RoleClient}
	got, ok := CallerFromContext(WithCaller(t.Context(), claims))
	require.True(t, ok)
	assert.Same(t, claims, got)
}

func TestRequireRole_CountsRejections(t *testing.T) {
	h := newAPIHarness(t)
	sink := &metrics.RecordingSink{}
	gate := harnessGate(h)
	gate.Metrics = sink
	_, clientCookie := h.sessionFor(t, domainauth.RoleClient)

	handler, reached := gated(t, h, RequireRole(gate, domainauth.RoleAdmin))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(clientCookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *reached)

	counts := sink.Counts()
	require.Len(t, counts, 2)
	assert.Equal(t, "auth.gate.rejected", counts[0].Name)
	assert.Equal(t, map[string]string{"reason": "unauthenticated"}, counts[0].Tags)
	assert.Equal(t, map[string]string{"reason": "forbidden", "caller_role": "client"}, counts[1].Tags)
}
