package readstore

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(db db.DBTX) *CartReadStore {
	return &CartReadStore{db: db}
}

func (r *CartReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.CartItemView, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+dealViewColumns+`, ci.id, ci.quantity, ci.added_at
FROM cart_items ci
JOIN deals_with_details d ON d.id = ci.deal_id
WHERE ci.user_id = $1
ORDER BY ci.added_at DESC, ci.id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart", err)
	}
	out, err := collect(rows, func(row pgx.Row) (*queries.CartItemView, error) {
		var item queries.CartItemView
		if err := scanDealInto(row, &item.Deal, &item.ID, &item.Quantity, &item.AddedAt); err != nil {
			return nil, err
		}
		item.DealID = item.Deal.ID
		return &item, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan cart", err)
	}
	return out, nil
}
