package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
	"github.com/antly/antly-api/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB, role domainauth.Role) *model.User {
	t.Helper()
	u, err := NewUserRepo(db).Create(context.Background(), testutil.NewUserRequest().WithRole(role).Build())
	require.NoError(t, err)
	return u
}

func TestUserRepo_Create_Get(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepoWithTimeProvider(db, NewFixedTimeProvider(testutil.TestTime()))

		req := testutil.NewUserRequest().WithEmail("  Ana@Example.COM ").WithName("Ana").Build()
		u, err := repo.Create(ctx, req)
		require.NoError(t, err)
		require.NoError(t, uuid.Validate(u.ID))
		assert.Equal(t, "ana@example.com", u.Email)
		assert.Equal(t, domainauth.RoleClient, u.Role)
		assert.Equal(t, testutil.TestTime().UTC(), u.CreatedAt.UTC())

		byID, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)
		assert.Equal(t, req.PasswordHash, byID.PasswordHash)

		byEmail, err := repo.GetByEmail(ctx, "ANA@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
	})
}

func TestUserRepo_Create_DuplicateEmailConflict(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		_, err := repo.Create(ctx, testutil.NewUserRequest().WithEmail("dup@example.com").Build())
		require.NoError(t, err)

		_, err = repo.Create(ctx, testutil.NewUserRequest().WithEmail("DUP@example.com").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, "email", apperrors.GetField(err))
	})
}

func TestUserRepo_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestUserRepo_List_FilterByRole(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		createTestUser(t, db, domainauth.RoleClient)
		createTestUser(t, db, domainauth.RoleProvider)
		createTestUser(t, db, domainauth.RoleProvider)

		all, err := repo.List(ctx, model.UsersListOptions{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		role := domainauth.RoleProvider
		providers, err := repo.List(ctx, model.UsersListOptions{Limit: 10, Role: &role})
		require.NoError(t, err)
		assert.Len(t, providers, 2)
		for _, p := range providers {
			assert.Equal(t, domainauth.RoleProvider, p.Role)
		}
	})
}

func TestUserRepo_Create_RejectsUnknownRole(t *testing.T) {
	repo := NewUserRepo(nil)
	_, err := repo.Create(context.Background(), testutil.NewUserRequest().WithRole("superuser").Build())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
