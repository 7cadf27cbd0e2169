package service

import (
	"context"
	"fmt"

	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/domain/model"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Users core.UserRepository // Required
}

// AdminService serves the account listings behind the admin role.
type AdminService struct {
	users core.UserRepository
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.Users == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("UserRepository is required")
	}
	return &AdminService{users: opts.Users}
}

// ListUsers returns accounts newest first. model.User never serializes its password hash.
func (s *AdminService) ListUsers(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	opts.Limit, opts.Offset = normalizePage(opts.Limit, opts.Offset)
	users, err := s.users.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
