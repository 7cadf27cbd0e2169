package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/antly/antly-api/internal/core"
	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
)

var (
	// ErrReviewNotFound is returned when a review is missing or was written by someone else.
	ErrReviewNotFound = apperrors.NotFound("Review not found")
	// ErrUserNotFound is returned when a review targets an unknown account.
	ErrUserNotFound = apperrors.NotFound("User not found")
)

// ReviewServiceRepos groups the repositories ReviewService reads and writes.
type ReviewServiceRepos struct {
	Reviews core.ReviewRepository
	Ads     core.AdRepository
	Users   core.UserRepository
}

// ReviewServiceOptions groups dependencies for ReviewService.
type ReviewServiceOptions struct {
	Repos  ReviewServiceRepos // Required
	Logger *slog.Logger       // Optional
}

// ReviewService lets clients review providers' ads and providers review clients.
type ReviewService struct {
	reviews core.ReviewRepository
	ads     core.AdRepository
	users   core.UserRepository
	logger  *slog.Logger
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	if opts.Repos.Reviews == nil || opts.Repos.Ads == nil || opts.Repos.Users == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("review, ad and user repositories are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{
		reviews: opts.Repos.Reviews,
		ads:     opts.Repos.Ads,
		users:   opts.Repos.Users,
		logger:  logger.With("component", "review_service"),
	}
}

// CreateByClient records a client's review of an approved ad. The ad's owner is the target.
func (s *ReviewService) CreateByClient(
	ctx context.Context,
	authorID string,
	req model.ClientReviewRequest,
) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	ad, err := s.ads.GetByID(ctx, req.AdID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("get reviewed ad: %w", err)
	}
	// unapproved ads are invisible to clients
	if ad.Status != model.AdStatusApproved {
		return nil, ErrAdNotFound
	}

	return s.create(ctx, model.CreateReviewRequest{
		AuthorID:     authorID,
		AuthorRole:   domainauth.RoleClient,
		TargetUserID: ad.OwnerID,
		AdID:         &ad.ID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
}

// CreateByProvider records a provider's review of a client.
func (s *ReviewService) CreateByProvider(
	ctx context.Context,
	authorID string,
	req model.ProviderReviewRequest,
) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	target, err := s.users.GetByID(ctx, req.ClientID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get reviewed user: %w", err)
	}
	if target.Role != domainauth.RoleClient {
		return nil, apperrors.ValidationField("client_id", "Providers can only review clients.")
	}

	return s.create(ctx, model.CreateReviewRequest{
		AuthorID:     authorID,
		AuthorRole:   domainauth.RoleProvider,
		TargetUserID: target.ID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
}

// Delete removes a review written by authorID.
func (s *ReviewService) Delete(ctx context.Context, authorID, id string) error {
	deleted, err := s.reviews.DeleteOwned(ctx, authorID, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if !deleted {
		return ErrReviewNotFound
	}
	return nil
}

// ListForUser returns reviews about userID, newest first.
func (s *ReviewService) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*model.Review, error) {
	limit, offset = normalizePage(limit, offset)
	reviews, err := s.reviews.ListByTarget(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) create(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	rv, err := s.reviews.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	s.logger.InfoContext(ctx, "review created",
		"review_id", rv.ID,
		"author_role", rv.AuthorRole,
		"target_user_id", rv.TargetUserID)
	return rv, nil
}
