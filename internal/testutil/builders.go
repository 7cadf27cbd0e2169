// Package testutil provides testing utilities and helpers for the antly API.
package testutil

import (
	"fmt"
	"sync/atomic"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
)

var builderSeq atomic.Int64

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req model.CreateUserRequest
}

// NewUserRequest creates a UserRequestBuilder for a client with a unique email.
func NewUserRequest() *UserRequestBuilder {
	n := builderSeq.Add(1)
	return &UserRequestBuilder{
		req: model.CreateUserRequest{
			Name:         fmt.Sprintf("User %d", n),
			Email:        fmt.Sprintf("user%d@example.com", n),
			PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehol",
			Role:         domainauth.RoleClient,
		},
	}
}

// WithEmail sets the email.
func (b *UserRequestBuilder) WithEmail(email string) *UserRequestBuilder {
	b.req.Email = email
	return b
}

// WithName sets the display name.
func (b *UserRequestBuilder) WithName(name string) *UserRequestBuilder {
	b.req.Name = name
	return b
}

// WithRole sets the role.
func (b *UserRequestBuilder) WithRole(role domainauth.Role) *UserRequestBuilder {
	b.req.Role = role
	return b
}

// Build returns the built request.
func (b *UserRequestBuilder) Build() model.CreateUserRequest {
	return b.req
}

// AdRequestBuilder provides a fluent interface for building CreateAdRequest objects for testing.
type AdRequestBuilder struct {
	req model.CreateAdRequest
}

// NewAdRequest creates an AdRequestBuilder with sensible defaults.
func NewAdRequest() *AdRequestBuilder {
	n := builderSeq.Add(1)
	return &AdRequestBuilder{
		req: model.CreateAdRequest{
			Title:       fmt.Sprintf("Ad %d", n),
			Description: "Test ad",
			PriceCents:  1000,
		},
	}
}

// WithTitle sets the title.
func (b *AdRequestBuilder) WithTitle(title string) *AdRequestBuilder {
	b.req.Title = title
	return b
}

// WithPriceCents sets the price.
func (b *AdRequestBuilder) WithPriceCents(price int64) *AdRequestBuilder {
	b.req.PriceCents = price
	return b
}

// Build returns the built request.
func (b *AdRequestBuilder) Build() *model.CreateAdRequest {
	req := b.req
	return &req
}
