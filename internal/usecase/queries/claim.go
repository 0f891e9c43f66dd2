package queries

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrClaimNotFound = errs.Mark(errs.New("claim not found"), errs.ErrNotFound)

type ClaimReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ClaimView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ClaimView, error)
}

type ClaimQueries interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]*ClaimView, error)
	// GetMine hides other users' claims as not found.
	GetMine(ctx context.Context, id, userID uuid.UUID) (*ClaimView, error)
}

type claimQueriesImpl struct {
	store ClaimReadStore
}

func NewClaimQueries(store ClaimReadStore) ClaimQueries {
	return &claimQueriesImpl{store: store}
}

func (q *claimQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]*ClaimView, error) {
	claims, err := q.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []*ClaimView{}
	}
	return claims, nil
}

func (q *claimQueriesImpl) GetMine(ctx context.Context, id, userID uuid.UUID) (*ClaimView, error) {
	c, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrClaimNotFound
	}
	return c, nil
}
