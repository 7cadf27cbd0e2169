package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antly/antly-api/internal/core"
	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
	"github.com/antly/antly-api/internal/testutil"
)

func TestAdRepo_Create_Get_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewAdRepoWithTimeProvider(db, tp)
		owner := createTestUser(t, db, domainauth.RoleProvider)

		ad, err := repo.Create(ctx, owner.ID, testutil.NewAdRequest().WithTitle("  Tiling  ").Build())
		require.NoError(t, err)
		assert.Equal(t, "Tiling", ad.Title)
		assert.Equal(t, model.AdStatusPending, ad.Status)
		assert.Equal(t, owner.ID, ad.OwnerID)

		tp.AddTime(time.Minute)
		_, err = repo.Create(ctx, owner.ID, testutil.NewAdRequest().Build())
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, ad.ID)
		require.NoError(t, err)
		assert.Equal(t, ad.ID, got.ID)

		mine, err := repo.List(ctx, model.AdsListOptions{Limit: 10, OwnerID: &owner.ID})
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, ad.ID, mine[1].ID, "newest first")

		approved := model.AdStatusApproved
		public, err := repo.List(ctx, model.AdsListOptions{Limit: 10, Status: &approved})
		require.NoError(t, err)
		assert.Empty(t, public)
	})
}

func TestAdRepo_UpdateOwned_ScopesByOwner(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdRepo(db)
		owner := createTestUser(t, db, domainauth.RoleProvider)
		other := createTestUser(t, db, domainauth.RoleProvider)

		ad, err := repo.Create(ctx, owner.ID, testutil.NewAdRequest().Build())
		require.NoError(t, err)

		title := "Hijacked"
		_, err = repo.UpdateOwned(ctx, core.UpdateOwnedAdParams{
			OwnerID: other.ID,
			ID:      ad.ID,
			Req:     model.UpdateAdRequest{Title: &title},
		})
		assert.ErrorIs(t, err, ErrAdNotFound)

		unchanged, err := repo.GetByID(ctx, ad.ID)
		require.NoError(t, err)
		assert.Equal(t, ad.Title, unchanged.Title)

		price := int64(2500)
		updated, err := repo.UpdateOwned(ctx, core.UpdateOwnedAdParams{
			OwnerID: owner.ID,
			ID:      ad.ID,
			Req:     model.UpdateAdRequest{PriceCents: &price},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2500), updated.PriceCents)
		assert.Equal(t, ad.Title, updated.Title)
	})
}

func TestAdRepo_DeleteOwned(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdRepo(db)
		owner := createTestUser(t, db, domainauth.RoleProvider)
		other := createTestUser(t, db, domainauth.RoleProvider)

		ad, err := repo.Create(ctx, owner.ID, testutil.NewAdRequest().Build())
		require.NoError(t, err)

		deleted, err := repo.DeleteOwned(ctx, other.ID, ad.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.DeleteOwned(ctx, owner.ID, ad.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, ad.ID)
		assert.ErrorIs(t, err, ErrAdNotFound)
	})
}

func TestAdRepo_TransitionStatus(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdRepo(db)
		owner := createTestUser(t, db, domainauth.RoleProvider)
		ad, err := repo.Create(ctx, owner.ID, testutil.NewAdRequest().Build())
		require.NoError(t, err)

		_, err = repo.TransitionStatus(ctx, ad.ID, model.AdStatusArchived)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		approved, err := repo.TransitionStatus(ctx, ad.ID, model.AdStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, model.AdStatusApproved, approved.Status)

		_, err = repo.TransitionStatus(ctx, uuid.NewString(), model.AdStatusApproved)
		assert.ErrorIs(t, err, ErrAdNotFound)
	})
}
