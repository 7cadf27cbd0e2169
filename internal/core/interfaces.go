package core

import (
	"context"

	"github.com/antly/antly-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail matches case-insensitively and returns ErrUserNotFound-compatible errors on miss.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
}

// AdRepository defines the interface for ad data operations.
// Every mutation that a provider can trigger takes the owner ID and must scope the
// statement by it, so a non-owner sees the same outcome as a missing row.
type AdRepository interface {
	Create(ctx context.Context, ownerID string, req *model.CreateAdRequest) (*model.Ad, error)
	GetByID(ctx context.Context, id string) (*model.Ad, error)
	List(ctx context.Context, opts model.AdsListOptions) ([]*model.Ad, error)
	UpdateOwned(ctx context.Context, params UpdateOwnedAdParams) (*model.Ad, error)
	DeleteOwned(ctx context.Context, ownerID, id string) (bool, error)
	// TransitionStatus moves an ad to next if model.AdStatus.CanTransition allows it,
	// reading and writing the row in one transaction.
	TransitionStatus(ctx context.Context, id string, next model.AdStatus) (*model.Ad, error)
}

// UpdateOwnedAdParams groups parameters for AdRepository.UpdateOwned to keep param count ≤3.
type UpdateOwnedAdParams struct {
	OwnerID string
	ID      string
	Req     model.UpdateAdRequest
}

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	Create(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error)
	// DeleteOwned removes a review only when authorID wrote it.
	DeleteOwned(ctx context.Context, authorID, id string) (bool, error)
	ListByTarget(ctx context.Context, targetUserID string, limit, offset int) ([]*model.Review, error)
}

// ListingCache caches public ad listing pages.
// A miss is (nil, false, nil). Invalidate drops every cached page.
type ListingCache interface {
	Get(ctx context.Context, page ListingPage) ([]*model.Ad, bool, error)
	Put(ctx context.Context, page ListingPage, ads []*model.Ad) error
	Invalidate(ctx context.Context) error
}

// ListingPage identifies one cached page of the public listing.
type ListingPage struct {
	Limit  int
	Offset int
}
