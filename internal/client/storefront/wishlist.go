package storefront

import (
	"context"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"

	"github.com/google/uuid"
)

// GetWishlist makes no request while signed out.
func (s *Storefront) GetWishlist(ctx context.Context) ([]apiclient.WishlistItem, error) {
	uid, ok := s.currentUser()
	if !ok {
		return []apiclient.WishlistItem{}, nil
	}
	return fetchMine(ctx, s, wishlistKey(uid), s.api.Wishlist)
}

func (s *Storefront) AddToWishlist(ctx context.Context, dealID uuid.UUID) error {
	return s.wishlistMutation(ctx, "Saved to wishlist", func(ctx context.Context) error {
		return s.api.AddToWishlist(ctx, dealID)
	})
}

func (s *Storefront) RemoveFromWishlist(ctx context.Context, dealID uuid.UUID) error {
	return s.wishlistMutation(ctx, "Removed from wishlist", func(ctx context.Context) error {
		return s.api.RemoveFromWishlist(ctx, dealID)
	})
}

func (s *Storefront) wishlistMutation(ctx context.Context, success string, fn func(context.Context) error) error {
	uid, ok := s.currentUser()
	if !ok {
		s.notifier.Error(ctx, "Please sign in to save deals")
		return apiclient.ErrUnauthenticated
	}
	return s.mutate(ctx, mutation{
		success: success,
		inv:     invalidation{keys: []querycache.Key{wishlistKey(uid)}},
	}, fn)
}

func (s *Storefront) IsSaved(dealID uuid.UUID) bool {
	uid, ok := s.currentUser()
	if !ok {
		return false
	}
	items, _ := querycache.Peek[[]apiclient.WishlistItem](s.cache, wishlistKey(uid))
	for _, it := range items {
		if it.DealID == dealID {
			return true
		}
	}
	return false
}
