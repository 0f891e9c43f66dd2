package cart

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

const DefaultQuantity = 1

type Quantity struct {
	value int
}

func NewQuantity(v int) (Quantity, error) {
	if v < 1 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: v}, nil
}

func (q Quantity) Value() int { return q.value }

// Item is a user's intent to claim a deal. Adding the same deal twice refreshes
// the existing line instead of creating a second one.
type Item struct {
	userID   uuid.UUID
	dealID   uuid.UUID
	quantity Quantity
}

func NewItem(userID, dealID uuid.UUID) *Item {
	return &Item{userID: userID, dealID: dealID, quantity: Quantity{value: DefaultQuantity}}
}

func (i *Item) UserID() uuid.UUID  { return i.userID }
func (i *Item) DealID() uuid.UUID  { return i.dealID }
func (i *Item) Quantity() Quantity { return i.quantity }
