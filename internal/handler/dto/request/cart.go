package request

import "github.com/google/uuid"

// Quantity is accepted for wire compatibility; new items always start at 1.
type AddToCartRequest struct {
	DealID   uuid.UUID `json:"deal_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type AddToWishlistRequest struct {
	DealID uuid.UUID `json:"deal_id" binding:"required"`
}
