package queries

import (
	"context"

	"github.com/google/uuid"
)

type WishlistReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*WishlistItemView, error)
}

type WishlistQueries interface {
	List(ctx context.Context, userID uuid.UUID) ([]*WishlistItemView, error)
}

type wishlistQueriesImpl struct {
	store WishlistReadStore
}

func NewWishlistQueries(store WishlistReadStore) WishlistQueries {
	return &wishlistQueriesImpl{store: store}
}

func (q *wishlistQueriesImpl) List(ctx context.Context, userID uuid.UUID) ([]*WishlistItemView, error) {
	items, err := q.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*WishlistItemView{}
	}
	return items, nil
}
