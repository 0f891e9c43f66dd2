package queries

import (
	"context"

	"github.com/google/uuid"
)

type CartReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CartItemView, error)
}

type CartQueries interface {
	// List returns the user's cart, most recently added first.
	List(ctx context.Context, userID uuid.UUID) ([]*CartItemView, error)
}

type cartQueriesImpl struct {
	store CartReadStore
}

func NewCartQueries(store CartReadStore) CartQueries {
	return &cartQueriesImpl{store: store}
}

func (q *cartQueriesImpl) List(ctx context.Context, userID uuid.UUID) ([]*CartItemView, error) {
	items, err := q.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*CartItemView{}
	}
	return items, nil
}
