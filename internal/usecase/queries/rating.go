package queries

import (
	"context"
	"time"

	"local-deals/internal/domain/rating"

	"github.com/google/uuid"
)

type RatingReadStore interface {
	FindByBusinessFirstPage(ctx context.Context, businessID uuid.UUID, limit int32) ([]*RatingView, error)
	FindByBusinessKeyset(ctx context.Context, businessID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RatingView, error)
	Scores(ctx context.Context, businessID uuid.UUID) ([]int, error)
}

type RatingQueries interface {
	ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor *Cursor, limit int) ([]*RatingView, *Cursor, error)
	Summary(ctx context.Context, businessID uuid.UUID) (*RatingSummaryView, error)
}

type ratingQueriesImpl struct {
	repo RatingReadStore
}

func NewRatingQueries(repo RatingReadStore) RatingQueries {
	return &ratingQueriesImpl{repo: repo}
}

func (q *ratingQueriesImpl) ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor *Cursor, limit int) ([]*RatingView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*RatingView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByBusinessFirstPage(ctx, businessID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByBusinessKeyset(ctx, businessID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	if rows == nil {
		rows = []*RatingView{}
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *ratingQueriesImpl) Summary(ctx context.Context, businessID uuid.UUID) (*RatingSummaryView, error) {
	scores, err := q.repo.Scores(ctx, businessID)
	if err != nil {
		return nil, err
	}
	s := rating.Summarize(scores)
	return &RatingSummaryView{
		BusinessID: businessID,
		Count:      s.Count,
		Average:    s.Average,
		Histogram:  s.Histogram,
	}, nil
}
