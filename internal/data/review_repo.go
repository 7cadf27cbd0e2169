package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/data/pgxutil"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
)

var _ core.ReviewRepository = (*ReviewRepo)(nil)

const reviewColumns = `id, author_id, author_role, target_user_id, ad_id, rating, comment, created_at`

const (
	reviewInsertQuery = `
		INSERT INTO reviews (id, author_id, author_role, target_user_id, ad_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + reviewColumns

	reviewDeleteOwnedQuery = `DELETE FROM reviews WHERE id = $1 AND author_id = $2`

	reviewListByTargetQuery = `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE target_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
)

// ReviewRepo provides database operations for reviews.
type ReviewRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewReviewRepo creates a new ReviewRepo with real time provider.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewReviewRepoWithTimeProvider creates a new ReviewRepo with a custom time provider.
func NewReviewRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ReviewRepo {
	return &ReviewRepo{DB: db, timeProvider: tp}
}

// Create inserts a review. Authorship and target checks are the caller's job;
// the schema still rejects self-reviews and unknown users.
func (r *ReviewRepo) Create(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	var out model.Review
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, reviewInsertQuery,
			uuid.NewString(),
			req.AuthorID,
			string(req.AuthorRole),
			req.TargetUserID,
			req.AdID,
			req.Rating,
			strings.TrimSpace(req.Comment),
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Review])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// DeleteOwned removes a review written by authorID and reports whether it existed.
func (r *ReviewRepo) DeleteOwned(ctx context.Context, authorID, id string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, reviewDeleteOwnedQuery, id, authorID)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", apperrors.MapDBError(err))
	}
	return affected > 0, nil
}

// ListByTarget returns reviews about targetUserID, newest first.
func (r *ReviewRepo) ListByTarget(ctx context.Context, targetUserID string, limit, offset int) ([]*model.Review, error) {
	if uuid.Validate(targetUserID) != nil {
		return []*model.Review{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	var rowsOut []model.Review
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, reviewListByTargetQuery, targetUserID, limit, max(offset, 0))
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Review])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", apperrors.MapDBError(err))
	}
	return toPtrSlice(rowsOut), nil
}
