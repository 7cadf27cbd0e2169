// Package auth contains hand-written test doubles for the account store and password hashing.
package auth

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
	"github.com/antly/antly-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.PasswordHasher = (*PlainHasher)(nil)
	_ core.UserRepository  = (*MemoryUserRepository)(nil)
)

const plainPrefix = "plain:"

// ErrPlainMismatch is returned by PlainHasher.Compare on mismatch.
var ErrPlainMismatch = errors.New("password mismatch")

// PlainHasher is a reversible stand-in for bcrypt so tests stay fast.
type PlainHasher struct {
	// HashErr, when set, is returned from every Hash call.
	HashErr error
	Calls   int
}

func (h *PlainHasher) Hash(password string) (string, error) {
	h.Calls++
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return plainPrefix + password, nil
}

func (h *PlainHasher) Compare(hash, password string) error {
	if hash != plainPrefix+password {
		return ErrPlainMismatch
	}
	return nil
}

// MemoryUserRepository is an in-memory account store for unit tests.
// Emails are unique case-insensitively, like the users_email_lower_idx index.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]model.User
	Now   func() time.Time
}

// NewMemoryUserRepository creates an empty in-memory account store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User), Now: time.Now}
}

func (m *MemoryUserRepository) Create(_ context.Context, req model.CreateUserRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.ValidationField("role", "unknown role")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	email := model.NormalizeEmail(req.Email)
	for _, u := range m.users {
		if u.Email == email {
			return nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "This value already exists.", Field: "email"}
		}
	}
	u := model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: req.PasswordHash,
		Role:         req.Role,
		CreatedAt:    m.Now().UTC(),
	}
	m.users[u.ID] = u
	return &u, nil
}

// Seed stores u as-is, for accounts that cannot self-register such as admins.
func (m *MemoryUserRepository) Seed(u model.User) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = model.NormalizeEmail(u.Email)
	m.users[u.ID] = u
	return &u
}

func (m *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	return &u, nil
}

func (m *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = model.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}

func (m *MemoryUserRepository) List(_ context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		if opts.Role != nil && u.Role != *opts.Role {
			continue
		}
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if opts.Offset > 0 {
		out = out[min(opts.Offset, len(out)):]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Len reports how many accounts are stored.
func (m *MemoryUserRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
