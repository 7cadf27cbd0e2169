package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/data/database"
	"github.com/antly/antly-api/internal/data/pgxutil"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
)

var _ core.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, role, created_at`

const (
	userInsertQuery = `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	userGetByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	// Matches the users_email_lower_idx expression index.
	userGetByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
)

// UserRepo provides database operations for accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new account. The email is stored lower-cased.
// A duplicate email yields an apperrors Conflict with Field "email".
func (r *UserRepo) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.ValidationField("role", "unknown role")
	}

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userInsertQuery,
			uuid.NewString(),
			strings.TrimSpace(req.Name),
			model.NormalizeEmail(req.Email),
			req.PasswordHash,
			string(req.Role),
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrUserNotFound
	}
	return r.getOne(ctx, userGetByIDQuery, id)
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, userGetByEmailQuery, model.NormalizeEmail(email))
}

// List retrieves accounts newest first, optionally filtered by role.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	qopts := []database.ListQueryOption{
		database.WithColumns("id", "name", "email", "password_hash", "role", "created_at"),
		database.WithOrderBy("created_at", sortDirDesc),
		database.WithLimit(limit),
		database.WithOffset(max(opts.Offset, 0)),
	}
	if opts.Role != nil {
		qopts = append(qopts, database.WithCondition(database.WhereCond("role", database.Equal, string(*opts.Role))))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("users", qopts...))

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", apperrors.MapDBError(err))
	}
	return toPtrSlice(rowsOut), nil
}

func (r *UserRepo) getOne(ctx context.Context, q string, args ...any) (*model.User, error) {
	var u model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		u, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", apperrors.MapDBError(err))
	}
	return &u, nil
}

func toPtrSlice[T any](rows []T) []*T {
	res := make([]*T, len(rows))
	for i := range rows {
		res[i] = &rows[i]
	}
	return res
}
