package readstore

import (
	"context"
	"time"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RatingReadStore struct {
	db db.DBTX
}

func NewRatingReadStore(db db.DBTX) *RatingReadStore {
	return &RatingReadStore{db: db}
}

const ratingSelect = `
SELECT r.id, r.user_id, u.full_name, r.business_id, r.score, r.comment, r.created_at
FROM ratings r
JOIN users u ON u.id = r.user_id`

func scanRating(row pgx.Row) (*queries.RatingView, error) {
	var v queries.RatingView
	err := row.Scan(&v.ID, &v.UserID, &v.UserName, &v.BusinessID, &v.Score, &v.Comment, &v.CreatedAt)
	return &v, err
}

func (r *RatingReadStore) FindByBusinessFirstPage(ctx context.Context, businessID uuid.UUID, limit int32) ([]*queries.RatingView, error) {
	rows, err := r.db.Query(ctx, ratingSelect+`
WHERE r.business_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`, businessID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get ratings first page by business", err)
	}
	out, err := collect(rows, scanRating)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan ratings", err)
	}
	return out, nil
}

func (r *RatingReadStore) FindByBusinessKeyset(ctx context.Context, businessID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RatingView, error) {
	rows, err := r.db.Query(ctx, ratingSelect+`
WHERE r.business_id = $1 AND (r.created_at, r.id) < ($2, $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4`, businessID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get ratings keyset by business", err)
	}
	out, err := collect(rows, scanRating)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan ratings", err)
	}
	return out, nil
}

func (r *RatingReadStore) Scores(ctx context.Context, businessID uuid.UUID) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT score FROM ratings WHERE business_id = $1`, businessID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load rating scores", err)
	}
	scores, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan rating scores", err)
	}
	return scores, nil
}
