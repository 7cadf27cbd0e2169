package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/antly/antly-api/internal/core"
	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
	"github.com/antly/antly-api/internal/observability/metrics"
	"github.com/antly/antly-api/internal/observability/statsd"
	"github.com/antly/antly-api/internal/ports"
)

// MaxPasswordBytes is the longest password accepted; bcrypt ignores or rejects anything past it.
const MaxPasswordBytes = 72

// ErrInvalidLogin is returned for an unknown email or a wrong password alike.
var ErrInvalidLogin = apperrors.Unauthenticated("Invalid email or password.")

// ErrEmailTaken is returned when the normalized email already has an account.
var ErrEmailTaken = &apperrors.AppError{
	Code:    apperrors.ErrCodeConflict,
	Message: "An account with this email already exists.",
	Field:   "email",
}

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Users    core.UserRepository  // Required
	Hasher   ports.PasswordHasher // Required
	Sessions *SessionService      // Required
	Logger   *slog.Logger         // Optional
	Metrics  statsd.Sink          // Optional
}

// AccountService registers accounts and logs them in, issuing a session on success.
type AccountService struct {
	users    core.UserRepository
	hasher   ports.PasswordHasher
	sessions *SessionService
	logger   *slog.Logger
	metrics  statsd.Sink

	// dummyHash is compared against on unknown emails so both login failures cost one hash check.
	dummyHash func() (string, error)
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	if opts.Users == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("UserRepository is required")
	}
	if opts.Hasher == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("PasswordHasher is required")
	}
	if opts.Sessions == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("SessionService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hasher := opts.Hasher
	return &AccountService{
		users:     opts.Users,
		hasher:    hasher,
		sessions:  opts.Sessions,
		logger:    logger.With("component", "account_service"),
		metrics:   opts.Metrics,
		dummyHash: sync.OnceValues(func() (string, error) { return hasher.Hash("antly-login-placeholder") }),
	}
}

// RegisterInput is the raw self-registration form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput is the raw login form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a persisted account plus the session credential issued for it.
type AuthResult struct {
	User   *model.User
	Token  string
	Claims domainauth.Claims
}

// Register validates in, creates the account and issues its first session.
// Only client and provider accounts can be created here.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (res *AuthResult, err error) {
	defer s.observe(metrics.ActionRegister, time.Now(), &res, &err)
	return s.register(ctx, in)
}

func (s *AccountService) register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := model.NormalizeEmail(in.Email)
	if name == "" {
		return nil, apperrors.ValidationField("name", "Name is required.")
	}
	if email == "" {
		return nil, apperrors.ValidationField("email", "Email is required.")
	}
	if in.Password == "" {
		return nil, apperrors.ValidationField("password", "Password is required.")
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, apperrors.ValidationField("password", "Password must be at most 72 bytes.")
	}
	if strings.TrimSpace(in.Role) == "" {
		return nil, apperrors.ValidationField("role", "Role is required.")
	}
	role, err := domainauth.ParseSignupRole(in.Role)
	if err != nil {
		return nil, apperrors.ValidationField("role", "Role must be client or provider.")
	}

	switch _, lookupErr := s.users.GetByEmail(ctx, email); {
	case lookupErr == nil:
		return nil, ErrEmailTaken
	case !apperrors.IsNotFound(lookupErr):
		return nil, fmt.Errorf("lookup account: %w", lookupErr)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.CreateUserRequest{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role.Role(),
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			// lost the race against a concurrent registration
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	res, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "account registered", "user_id", user.ID, "role", user.Role)
	return res, nil
}

// Login checks the password for the account behind in.Email and issues a session.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (res *AuthResult, err error) {
	defer s.observe(metrics.ActionLogin, time.Now(), &res, &err)
	return s.login(ctx, in)
}

func (s *AccountService) login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := model.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrInvalidLogin
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("lookup account: %w", err)
		}
		if hash, hashErr := s.dummyHash(); hashErr == nil {
			_ = s.hasher.Compare(hash, in.Password)
		}
		return nil, ErrInvalidLogin
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		s.logger.DebugContext(ctx, "login rejected", "user_id", user.ID)
		return nil, ErrInvalidLogin
	}

	return s.issue(user)
}

func (s *AccountService) issue(user *model.User) (*AuthResult, error) {
	token, claims, err := s.sessions.Issue(user.Principal())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, Claims: claims}, nil
}

func (s *AccountService) observe(action string, start time.Time, res **AuthResult, err *error) {
	if s.metrics == nil {
		return
	}
	m := metrics.AuthMetric{Action: action, Duration: time.Since(start), Err: *err}
	if *res != nil && (*res).User != nil {
		m.Role = (*res).User.Role
	}
	metrics.EmitAuth(s.metrics, m)
}
