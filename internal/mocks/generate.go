// Package mocks provides mock implementations for testing the antly services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockAdRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), "ad-1").Return(ad, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods: Create, GetByID, GetByEmail, List
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/antly/antly-api/internal/core UserRepository

// Generate mock for AdRepository interface from internal/core package.
// This creates MockAdRepository with methods: Create, GetByID, List, UpdateOwned, DeleteOwned, TransitionStatus
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ad_repository_mock.go github.com/antly/antly-api/internal/core AdRepository

// Generate mock for ReviewRepository interface from internal/core package.
// This creates MockReviewRepository with methods: Create, DeleteOwned, ListByTarget
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=review_repository_mock.go github.com/antly/antly-api/internal/core ReviewRepository

// Generate mock for ListingCache interface from internal/core package.
// This creates MockListingCache with methods: Get, Put, Invalidate
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=listing_cache_mock.go github.com/antly/antly-api/internal/core ListingCache
