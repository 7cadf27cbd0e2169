// Package devseed fills a development database with one account per role and a few sample ads.
package devseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/antly/antly-api/internal/core"
	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
	"github.com/antly/antly-api/internal/ports"
)

// DevPassword is the password of every seeded account.
const DevPassword = "antly-dev-password"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Users  core.UserRepository
	Ads    core.AdRepository
	Hasher ports.PasswordHasher
}

type seedAccount struct {
	Name  string
	Email string
	Role  domainauth.Role
}

func defaultAccounts() []seedAccount {
	return []seedAccount{
		{Name: "Dev Admin", Email: "admin@antly.local", Role: domainauth.RoleAdmin},
		{Name: "Dev Provider", Email: "provider@antly.local", Role: domainauth.RoleProvider},
		{Name: "Dev Client", Email: "client@antly.local", Role: domainauth.RoleClient},
	}
}

type seedAd struct {
	Request model.CreateAdRequest
	Status  model.AdStatus
}

func defaultAds() []seedAd {
	return []seedAd{
		{
			Request: model.CreateAdRequest{Title: "Weekly garden care", Description: "Mowing, weeding and hedges.", PriceCents: 4500},
			Status:  model.AdStatusApproved,
		},
		{
			Request: model.CreateAdRequest{Title: "Beginner piano lessons", Description: "45 minutes, at your place.", PriceCents: 3000},
			Status:  model.AdStatusApproved,
		},
		{
			Request: model.CreateAdRequest{Title: "Bike repair", PriceCents: 2000},
			Status:  model.AdStatusPending,
		},
	}
}

// Run seeds accounts and ads. It is idempotent: existing accounts and ads with the same title are kept.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if svcs.Users == nil || svcs.Ads == nil || svcs.Hasher == nil {
		return errors.New("devseed: users, ads and hasher are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	failures := 0
	var provider *model.User
	for _, acct := range defaultAccounts() {
		u, err := ensureAccount(ctx, svcs, acct, logger)
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed account", "email", acct.Email, "error", err)
			failures++
			continue
		}
		if u.Role == domainauth.RoleProvider {
			provider = u
		}
	}

	if provider != nil {
		failures += seedAds(ctx, svcs.Ads, provider.ID, logger)
	}

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func ensureAccount(ctx context.Context, svcs Services, acct seedAccount, logger *slog.Logger) (*model.User, error) {
	existing, err := svcs.Users.GetByEmail(ctx, acct.Email)
	if err == nil {
		logger.InfoContext(ctx, "account already exists", "email", acct.Email)
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := svcs.Hasher.Hash(DevPassword)
	if err != nil {
		return nil, err
	}
	u, err := svcs.Users.Create(ctx, model.CreateUserRequest{
		Name:         acct.Name,
		Email:        acct.Email,
		PasswordHash: hash,
		Role:         acct.Role,
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "created account", "email", u.Email, "role", u.Role)
	return u, nil
}

func seedAds(ctx context.Context, ads core.AdRepository, ownerID string, logger *slog.Logger) int {
	existing, err := ads.List(ctx, model.AdsListOptions{Limit: 100, OwnerID: &ownerID})
	if err != nil {
		logger.ErrorContext(ctx, "failed to list seeded ads", "error", err)
		return 1
	}
	titles := make(map[string]bool, len(existing))
	for _, a := range existing {
		titles[a.Title] = true
	}

	failures := 0
	for _, s := range defaultAds() {
		if titles[s.Request.Title] {
			continue
		}
		req := s.Request
		ad, err := ads.Create(ctx, ownerID, &req)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create ad", "title", req.Title, "error", err)
			failures++
			continue
		}
		if s.Status != ad.Status {
			if _, err := ads.TransitionStatus(ctx, ad.ID, s.Status); err != nil {
				logger.ErrorContext(ctx, "failed to set ad status", "title", req.Title, "error", err)
				failures++
				continue
			}
		}
		logger.InfoContext(ctx, "created ad", "title", req.Title, "status", s.Status)
	}
	return failures
}
