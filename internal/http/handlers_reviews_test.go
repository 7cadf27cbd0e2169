package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
)

func TestClientReview_TargetsAdOwner(t *testing.T) {
	h := newAPIHarness(t)
	client, cookie := h.sessionFor(t, domainauth.RoleClient)
	ad := sampleAd("ad-1", "provider-1", model.AdStatusApproved)

	h.ads.EXPECT().GetByID(gomock.Any(), "ad-1").Return(ad, nil)
	h.reviews.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req model.CreateReviewRequest) (*model.Review, error) {
			assert.Equal(t, client.ID, req.AuthorID)
			assert.Equal(t, domainauth.RoleClient, req.AuthorRole)
			assert.Equal(t, "provider-1", req.TargetUserID)
			require.NotNil(t, req.AdID)
			assert.Equal(t, "ad-1", *req.AdID)
			return &model.Review{ID: "r1", AuthorID: req.AuthorID, AuthorRole: req.AuthorRole,
				TargetUserID: req.TargetUserID, AdID: req.AdID, Rating: req.Rating}, nil
		})

	rec := h.do(t, http.MethodPost, "/api/client/reviews",
		map[string]any{"ad_id": "ad-1", "rating": 5, "comment": "great"}, cookie)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "provider-1", decodeBody[model.Review](t, rec).TargetUserID)
}

func TestClientReview_UnapprovedAdIsNotFound(t *testing.T) {
	h := newAPIHarness(t)
	_, cookie := h.sessionFor(t, domainauth.RoleClient)
	h.ads.EXPECT().GetByID(gomock.Any(), "ad-1").Return(sampleAd("ad-1", "p", model.AdStatusPending), nil)

	rec := h.do(t, http.MethodPost, "/api/client/reviews", map[string]any{"ad_id": "ad-1", "rating": 4}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewRoutes_RoleGates(t *testing.T) {
	h := newAPIHarness(t)
	_, clientCookie := h.sessionFor(t, domainauth.RoleClient)
	_, providerCookie := h.sessionFor(t, domainauth.RoleProvider)

	rec := h.do(t, http.MethodPost, "/api/provider/reviews", map[string]any{"client_id": "c", "rating": 3}, clientCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/client/reviews", map[string]any{"ad_id": "a", "rating": 3}, providerCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodDelete, "/api/client/reviews/r1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProviderReview_OnlyClients(t *testing.T) {
	h := newAPIHarness(t)
	_, cookie := h.sessionFor(t, domainauth.RoleProvider)
	otherProvider, _ := h.sessionFor(t, domainauth.RoleProvider)
	client, _ := h.sessionFor(t, domainauth.RoleClient)

	rec := h.do(t, http.MethodPost, "/api/provider/reviews",
		map[string]any{"client_id": otherProvider.ID, "rating": 2}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "client_id", decodeBody[errorResponse](t, rec).Field)

	h.reviews.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Review{ID: "r2", TargetUserID: client.ID}, nil)
	rec = h.do(t, http.MethodPost, "/api/provider/reviews",
		map[string]any{"client_id": client.ID, "rating": 4, "comment": "paid on time"}, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReviewDelete_ScopedToAuthor(t *testing.T) {
	h := newAPIHarness(t)
	client, cookie := h.sessionFor(t, domainauth.RoleClient)

	h.reviews.EXPECT().DeleteOwned(gomock.Any(), client.ID, "mine").Return(true, nil)
	h.reviews.EXPECT().DeleteOwned(gomock.Any(), client.ID, "theirs").Return(false, nil)

	assert.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, "/api/client/reviews/mine", nil, cookie).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodDelete, "/api/client/reviews/theirs", nil, cookie).Code)
}

func TestListUserReviews_Public(t *testing.T) {
	h := newAPIHarness(t)
	h.reviews.EXPECT().ListByTarget(gomock.Any(), "u1", 20, 0).Return([]*model.Review{{ID: "r1"}}, nil)

	rec := h.do(t, http.MethodGet, "/api/users/u1/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"r1"`)
}
