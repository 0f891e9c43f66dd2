package repository

import (
	"context"

	"local-deals/internal/infra"
	"local-deals/internal/infra/db"

	"github.com/google/uuid"
)

type WishlistRepository struct{}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{}
}

func (r *WishlistRepository) Add(ctx context.Context, tx db.DBTX, userID, dealID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO wishlist_items (user_id, deal_id) VALUES ($1, $2) ON CONFLICT (user_id, deal_id) DO NOTHING`,
		userID, dealID)
	if err != nil {
		return infra.WrapRepoErr("failed to save deal", err)
	}
	return nil
}

// Remove is idempotent; removing an unsaved deal is not an error.
func (r *WishlistRepository) Remove(ctx context.Context, tx db.DBTX, userID, dealID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND deal_id = $2`, userID, dealID)
	if err != nil {
		return infra.WrapRepoErr("failed to remove saved deal", err)
	}
	return nil
}
