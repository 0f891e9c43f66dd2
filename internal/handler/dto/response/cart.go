package response

import (
	"time"

	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
)

type CartItemResponse struct {
	ID       uuid.UUID     `json:"id"`
	DealID   uuid.UUID     `json:"deal_id"`
	Quantity int           `json:"quantity"`
	AddedAt  time.Time     `json:"added_at"`
	Deal     *DealResponse `json:"deal"`
}

func FromCartItems(items []*queries.CartItemView, now time.Time) []*CartItemResponse {
	return mapAll(items, func(v *queries.CartItemView) *CartItemResponse {
		return &CartItemResponse{
			ID:       v.ID,
			DealID:   v.DealID,
			Quantity: v.Quantity,
			AddedAt:  v.AddedAt,
			Deal:     FromDealView(&v.Deal, now),
		}
	})
}

type WishlistItemResponse struct {
	ID        uuid.UUID     `json:"id"`
	DealID    uuid.UUID     `json:"deal_id"`
	CreatedAt time.Time     `json:"created_at"`
	Deal      *DealResponse `json:"deal"`
}

func FromWishlistItems(items []*queries.WishlistItemView, now time.Time) []*WishlistItemResponse {
	return mapAll(items, func(v *queries.WishlistItemView) *WishlistItemResponse {
		return &WishlistItemResponse{
			ID:        v.ID,
			DealID:    v.DealID,
			CreatedAt: v.CreatedAt,
			Deal:      FromDealView(&v.Deal, now),
		}
	})
}
