package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
)

type usersBody struct {
	Users []model.User `json:"users"`
}

func TestAdminListUsers(t *testing.T) {
	h := newAPIHarness(t)
	_, admin := h.sessionFor(t, domainauth.RoleAdmin)
	_, provider := h.sessionFor(t, domainauth.RoleProvider)
	h.sessionFor(t, domainauth.RoleClient)

	t.Run("all", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/admin/users", nil, admin)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[usersBody](t, rec).Users, 3)
		assert.NotContains(t, rec.Body.String(), "plain:")
	})

	t.Run("by role", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/admin/users?role=provider", nil, admin)
		require.Equal(t, http.StatusOK, rec.Code)
		users := decodeBody[usersBody](t, rec).Users
		require.Len(t, users, 1)
		assert.Equal(t, domainauth.RoleProvider, users[0].Role)
	})

	t.Run("bad role", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/admin/users?role=root", nil, admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider forbidden", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/admin/users", nil, provider)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, ErrCodeForbidden, decodeBody[errorResponse](t, rec).Error)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/admin/users", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
