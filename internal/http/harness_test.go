package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/antly/antly-api/internal/adapters/jwtcodec"
	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	"github.com/antly/antly-api/internal/mocks"
	fakes "github.com/antly/antly-api/internal/mocks/auth"
	"github.com/antly/antly-api/internal/service"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// apiHarness wires the real router and services over in-memory accounts and mocked ad/review stores.
type apiHarness struct {
	handler  http.Handler
	clock    *testClock
	users    *fakes.MemoryUserRepository
	ads      *mocks.MockAdRepository
	reviews  *mocks.MockReviewRepository
	sessions *service.SessionService
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	ctrl := gomock.NewController(t)

	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := jwtcodec.New(jwtcodec.Config{Secret: []byte("router-test-secret"), Now: clock.Now})
	require.NoError(t, err)

	users := fakes.NewMemoryUserRepository()
	users.Now = clock.Now
	ads := mocks.NewMockAdRepository(ctrl)
	reviews := mocks.NewMockReviewRepository(ctrl)

	sessions := service.NewSessionService(service.SessionServiceOptions{Codec: codec})
	accounts := service.NewAccountService(service.AccountServiceOptions{
		Users:    users,
		Hasher:   &fakes.PlainHasher{},
		Sessions: sessions,
	})

	handler := NewRouter(RouterServices{
		Accounts: accounts,
		Sessions: sessions,
		Ads:      service.NewAdService(service.AdServiceOptions{Repo: ads}),
		Reviews: service.NewReviewService(service.ReviewServiceOptions{
			Repos: service.ReviewServiceRepos{Reviews: reviews, Ads: ads, Users: users},
		}),
		Admin:   service.NewAdminService(service.AdminServiceOptions{Users: users}),
		Cookies: NewSessionCookies(SessionCookieOptions{}),
		Errors:  &ErrorResponder{},
	})

	return &apiHarness{
		handler:  handler,
		clock:    clock,
		users:    users,
		ads:      ads,
		reviews:  reviews,
		sessions: sessions,
	}
}

// do sends a request through the router. body may be nil, a string, or any JSON-encodable value.
func (h *apiHarness) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

// sessionFor seeds an account with role and returns a cookie carrying a fresh session for it.
func (h *apiHarness) sessionFor(t *testing.T, role domainauth.Role) (*model.User, *http.Cookie) {
	t.Helper()
	u := h.users.Seed(model.User{
		Name:         string(role) + " user",
		Email:        string(role) + "-" + uuid.NewString() + "@example.com",
		PasswordHash: "plain:secret",
		Role:         role,
		CreatedAt:    h.clock.Now(),
	})
	token, _, err := h.sessions.Issue(u.Principal())
	require.NoError(t, err)
	return u, &http.Cookie{Name: SessionCookieName, Value: token}
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field"`
	Detail  string `json:"detail"`
}
