package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/data/database"
	"github.com/antly/antly-api/internal/data/pgxutil"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
)

var _ core.AdRepository = (*AdRepo)(nil)

const sortDirDesc = "DESC"

const adColumns = `id, owner_id, title, description, price_cents, status, created_at, updated_at`

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	adInsertQuery = `
		INSERT INTO ads (id, owner_id, title, description, price_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6, $6)
		RETURNING ` + adColumns

	adGetByIDQuery = `SELECT ` + adColumns + ` FROM ads WHERE id = $1`

	// Owner scoping lives in the statement itself: a non-owner affects zero rows.
	adDeleteOwnedQuery = `DELETE FROM ads WHERE id = $1 AND owner_id = $2`

	adLockForUpdateQuery = `SELECT ` + adColumns + ` FROM ads WHERE id = $1 FOR UPDATE`

	adSetStatusQuery = `
		UPDATE ads SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + adColumns
)

// AdRepo provides database operations for ads.
type AdRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAdRepo creates a new AdRepo with real time provider.
func NewAdRepo(db *sql.DB) *AdRepo {
	return &AdRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAdRepoWithTimeProvider creates a new AdRepo with a custom time provider (useful for tests).
func NewAdRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AdRepo {
	return &AdRepo{DB: db, timeProvider: tp}
}

// Create inserts a new ad owned by ownerID in pending status.
func (r *AdRepo) Create(ctx context.Context, ownerID string, req *model.CreateAdRequest) (*model.Ad, error) {
	if req == nil {
		return nil, errors.New("create ad request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Ad
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, adInsertQuery,
			uuid.NewString(), ownerID, req.Title, req.Description, req.PriceCents, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ad])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an ad by ID regardless of owner or status.
func (r *AdRepo) GetByID(ctx context.Context, id string) (*model.Ad, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrAdNotFound
	}
	var out model.Ad
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, adGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ad])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to get ad: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves ads newest first with optional owner and status filters.
func (r *AdRepo) List(ctx context.Context, opts model.AdsListOptions) ([]*model.Ad, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	qopts := []database.ListQueryOption{
		database.WithColumns(strings.Split(strings.ReplaceAll(adColumns, " ", ""), ",")...),
		database.WithOrderBy("created_at", sortDirDesc),
		database.WithLimit(limit),
		database.WithOffset(max(opts.Offset, 0)),
	}
	if opts.OwnerID != nil {
		qopts = append(qopts, database.WithCondition(database.WhereCond("owner_id", database.Equal, *opts.OwnerID)))
	}
	if opts.Status != nil {
		qopts = append(qopts, database.WithCondition(database.WhereCond("status", database.Equal, string(*opts.Status))))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("ads", qopts...))

	var rowsOut []model.Ad
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Ad])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", apperrors.MapDBError(err))
	}
	return toPtrSlice(rowsOut), nil
}

// UpdateOwned updates an ad only if it belongs to params.OwnerID.
// Missing and foreign-owned ads both yield ErrAdNotFound.
func (r *AdRepo) UpdateOwned(ctx context.Context, params core.UpdateOwnedAdParams) (*model.Ad, error) {
	req := params.Req
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if uuid.Validate(params.ID) != nil {
		return nil, ErrAdNotFound
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, params.ID, params.OwnerID)
	query := "UPDATE ads SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)-1) +
		" AND owner_id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + adColumns

	var out model.Ad
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ad])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an ad based on the request.
// updated_at is always set.
func (r *AdRepo) buildUpdateClause(req model.UpdateAdRequest) (string, []any) {
	setParts := make([]string, 0, 4)
	args := make([]any, 0, 6)
	add := func(col string, v any) {
		args = append(args, v)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.PriceCents != nil {
		add("price_cents", *req.PriceCents)
	}
	add("updated_at", r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// DeleteOwned deletes an ad only if it belongs to ownerID. It reports whether a row was removed.
func (r *AdRepo) DeleteOwned(ctx context.Context, ownerID, id string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, adDeleteOwnedQuery, id, ownerID)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete ad: %w", apperrors.MapDBError(err))
	}
	return affected > 0, nil
}

// TransitionStatus applies a moderation transition under a row lock.
func (r *AdRepo) TransitionStatus(ctx context.Context, id string, next model.AdStatus) (*model.Ad, error) {
	if !next.Valid() {
		return nil, apperrors.ValidationField("status", "unknown status")
	}
	if uuid.Validate(id) != nil {
		return nil, ErrAdNotFound
	}

	var out model.Ad
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, adLockForUpdateQuery, id)
		if err != nil {
			return err
		}
		current, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ad])
		if err != nil {
			return err
		}
		if !current.Status.CanTransition(next) {
			return apperrors.ValidationField("status",
				fmt.Sprintf("cannot move ad from %s to %s", current.Status, next))
		}

		rows, err = tx.Query(ctx, adSetStatusQuery, id, string(next), r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ad])
		return err
	}})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		if apperrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
