package repository

import (
	"context"

	"local-deals/internal/domain/cart"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"

	"github.com/google/uuid"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// An existing line keeps its quantity; only added_at moves so it sorts first again.
const upsertCartItemSQL = `
INSERT INTO cart_items (user_id, deal_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, deal_id) DO UPDATE SET added_at = now()
RETURNING id`

func (r *CartRepository) Upsert(ctx context.Context, tx db.DBTX, item *cart.Item) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, upsertCartItemSQL, item.UserID(), item.DealID(), item.Quantity().Value()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to add cart item", err)
	}
	return id, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, tx db.DBTX, userID, itemID uuid.UUID, qty cart.Quantity) error {
	tag, err := tx.Exec(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE id = $1 AND user_id = $2`, itemID, userID, qty.Value())
	if err != nil {
		return infra.WrapRepoErr("failed to update cart quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, tx db.DBTX, userID, itemID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to remove cart item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to clear cart", err)
	}
	return tag.RowsAffected(), nil
}
