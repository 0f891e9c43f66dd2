package readstore

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WishlistReadStore struct {
	db db.DBTX
}

func NewWishlistReadStore(db db.DBTX) *WishlistReadStore {
	return &WishlistReadStore{db: db}
}

func (r *WishlistReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.WishlistItemView, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+dealViewColumns+`, w.id, w.created_at
FROM wishlist_items w
JOIN deals_with_details d ON d.id = w.deal_id
WHERE w.user_id = $1
ORDER BY w.created_at DESC, w.id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list wishlist", err)
	}
	out, err := collect(rows, func(row pgx.Row) (*queries.WishlistItemView, error) {
		var item queries.WishlistItemView
		if err := scanDealInto(row, &item.Deal, &item.ID, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.DealID = item.Deal.ID
		return &item, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan wishlist", err)
	}
	return out, nil
}
