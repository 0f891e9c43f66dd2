package storefront

import (
	"context"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"

	"github.com/google/uuid"
)

// GetCart is empty, not an error, when nobody is signed in or the server no
// longer accepts the session.
func (s *Storefront) GetCart(ctx context.Context) ([]apiclient.CartItem, error) {
	uid, ok := s.currentUser()
	if !ok {
		return []apiclient.CartItem{}, nil
	}
	return fetchMine(ctx, s, cartKey(uid), s.api.Cart)
}

// AddToCart is idempotent: adding a deal already in the cart keeps its
// quantity and only refreshes when it was added.
func (s *Storefront) AddToCart(ctx context.Context, dealID uuid.UUID) error {
	uid, ok := s.currentUser()
	if !ok {
		s.notifier.Error(ctx, "Please sign in to add items to your cart")
		return apiclient.ErrUnauthenticated
	}
	return s.mutate(ctx, mutation{
		success: "Added to cart",
		inv:     invalidation{keys: []querycache.Key{cartKey(uid)}},
	}, func(ctx context.Context) error {
		_, err := s.api.AddToCart(ctx, dealID)
		return err
	})
}

func (s *Storefront) RemoveFromCart(ctx context.Context, itemID uuid.UUID) error {
	return s.cartMutation(ctx, "Removed from cart", func(ctx context.Context) error {
		return s.api.RemoveFromCart(ctx, itemID)
	})
}

func (s *Storefront) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return s.cartMutation(ctx, "", func(ctx context.Context) error {
		return s.api.UpdateCartQuantity(ctx, itemID, quantity)
	})
}

func (s *Storefront) ClearCart(ctx context.Context) error {
	return s.cartMutation(ctx, "Cart cleared", s.api.ClearCart)
}

func (s *Storefront) cartMutation(ctx context.Context, success string, fn func(context.Context) error) error {
	uid, ok := s.currentUser()
	if !ok {
		return apiclient.ErrUnauthenticated
	}
	return s.mutate(ctx, mutation{
		success: success,
		inv:     invalidation{keys: []querycache.Key{cartKey(uid)}},
	}, fn)
}

// IsInCart reads the cached cart only.
func (s *Storefront) IsInCart(dealID uuid.UUID) bool {
	for _, it := range s.cachedCart() {
		if it.DealID == dealID {
			return true
		}
	}
	return false
}

// CartCount is the number of distinct deals in the cached cart.
func (s *Storefront) CartCount() int {
	return len(s.cachedCart())
}

func (s *Storefront) cachedCart() []apiclient.CartItem {
	uid, ok := s.currentUser()
	if !ok {
		return nil
	}
	items, _ := querycache.Peek[[]apiclient.CartItem](s.cache, cartKey(uid))
	return items
}
