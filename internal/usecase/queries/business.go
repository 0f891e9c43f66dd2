package queries

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBusinessNotFound = errs.Mark(errs.New("business not found"), errs.ErrNotFound)

type BusinessReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BusinessView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*BusinessView, error)
	ListByStatus(ctx context.Context, status string) ([]*BusinessView, error)
}

type BusinessQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BusinessView, error)
	GetMine(ctx context.Context, userID uuid.UUID) (*BusinessView, error)
	// ListForReview returns businesses in the given verification status; empty means all.
	ListForReview(ctx context.Context, status string) ([]*BusinessView, error)
}

type businessQueriesImpl struct {
	store BusinessReadStore
}

func NewBusinessQueries(store BusinessReadStore) BusinessQueries {
	return &businessQueriesImpl{store: store}
}

func (q *businessQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BusinessView, error) {
	return notFoundAs(q.store.FindByID(ctx, id))
}

func (q *businessQueriesImpl) GetMine(ctx context.Context, userID uuid.UUID) (*BusinessView, error) {
	return notFoundAs(q.store.FindByUserID(ctx, userID))
}

func (q *businessQueriesImpl) ListForReview(ctx context.Context, status string) ([]*BusinessView, error) {
	return q.store.ListByStatus(ctx, status)
}

func notFoundAs(b *BusinessView, err error) (*BusinessView, error) {
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return b, nil
}
