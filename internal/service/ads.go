package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
)

// ErrAdNotFound is returned when an ad is missing or not visible to the caller.
var ErrAdNotFound = apperrors.NotFound("Ad not found")

// AdServiceOptions groups dependencies for AdService.
type AdServiceOptions struct {
	Repo   core.AdRepository // Required
	Cache  core.ListingCache // Optional: public listing cache
	Logger *slog.Logger      // Optional
}

// AdService implements the public listing, provider self-service and admin moderation of ads.
// Provider mutations are always scoped by owner in the repository statement itself.
type AdService struct {
	repo   core.AdRepository
	cache  core.ListingCache
	logger *slog.Logger
}

// NewAdService constructs a new AdService.
func NewAdService(opts AdServiceOptions) *AdService {
	if opts.Repo == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("AdRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdService{
		repo:   opts.Repo,
		cache:  opts.Cache,
		logger: logger.With("component", "ad_service"),
	}
}

// ListPublic returns approved ads, newest first, reading through the listing cache.
func (s *AdService) ListPublic(ctx context.Context, limit, offset int) ([]*model.Ad, error) {
	limit, offset = normalizePage(limit, offset)
	page := core.ListingPage{Limit: limit, Offset: offset}

	if s.cache != nil {
		ads, ok, err := s.cache.Get(ctx, page)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "listing cache read failed", "error", err)
		case ok:
			return ads, nil
		}
	}

	approved := model.AdStatusApproved
	ads, err := s.repo.List(ctx, model.AdsListOptions{Limit: limit, Offset: offset, Status: &approved})
	if err != nil {
		return nil, fmt.Errorf("list public ads: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, page, ads); err != nil {
			s.logger.WarnContext(ctx, "listing cache write failed", "error", err)
		}
	}
	return ads, nil
}

// ListOwn returns every ad owned by ownerID regardless of status.
func (s *AdService) ListOwn(ctx context.Context, ownerID string, limit, offset int) ([]*model.Ad, error) {
	limit, offset = normalizePage(limit, offset)
	ads, err := s.repo.List(ctx, model.AdsListOptions{Limit: limit, Offset: offset, OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("list own ads: %w", err)
	}
	return ads, nil
}

// Create stores a new pending ad owned by ownerID.
func (s *AdService) Create(ctx context.Context, ownerID string, req *model.CreateAdRequest) (*model.Ad, error) {
	if req == nil {
		return nil, errors.New("create ad request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	ad, err := s.repo.Create(ctx, ownerID, req)
	if err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}
	s.logger.InfoContext(ctx, "ad created", "ad_id", ad.ID, "owner_id", ownerID)
	s.invalidate(ctx)
	return ad, nil
}

// Update changes an ad owned by ownerID. An ad owned by someone else is reported as not found.
func (s *AdService) Update(ctx context.Context, ownerID, id string, req model.UpdateAdRequest) (*model.Ad, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	ad, err := s.repo.UpdateOwned(ctx, core.UpdateOwnedAdParams{OwnerID: ownerID, ID: id, Req: req})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("update ad: %w", err)
	}
	s.invalidate(ctx)
	return ad, nil
}

// Delete removes an ad owned by ownerID. An ad owned by someone else is reported as not found.
func (s *AdService) Delete(ctx context.Context, ownerID, id string) error {
	deleted, err := s.repo.DeleteOwned(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	if !deleted {
		return ErrAdNotFound
	}
	s.logger.InfoContext(ctx, "ad deleted", "ad_id", id, "owner_id", ownerID)
	s.invalidate(ctx)
	return nil
}

// ListAll returns ads across all owners for moderation.
func (s *AdService) ListAll(ctx context.Context, opts model.AdsListOptions) ([]*model.Ad, error) {
	opts.Limit, opts.Offset = normalizePage(opts.Limit, opts.Offset)
	ads, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return ads, nil
}

// SetStatus applies a moderation transition.
func (s *AdService) SetStatus(ctx context.Context, id, status string) (*model.Ad, error) {
	next, ok := model.ParseAdStatus(status)
	if !ok {
		return nil, apperrors.ValidationField("status", "Status must be one of pending, approved, rejected, archived.")
	}
	ad, err := s.repo.TransitionStatus(ctx, id, next)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("set ad status: %w", err)
	}
	s.logger.InfoContext(ctx, "ad status changed", "ad_id", id, "status", ad.Status)
	s.invalidate(ctx)
	return ad, nil
}

func (s *AdService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "listing cache invalidation failed", "error", err)
	}
}
