package storefront

import (
	"strconv"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"

	"github.com/google/uuid"
)

// Cache kinds. Per-user kinds are scoped by user id, the rest by entity id or
// by the encoded filter set.
const (
	KindDeals         = "deals"
	KindDeal          = "deal"
	KindTrending      = "trending"
	KindCategories    = "categories"
	KindCart          = "cart"
	KindWishlist      = "wishlist"
	KindClaims        = "claims"
	KindVerifications = "verifications"
	KindRatings       = "ratings"
	KindRatingSummary = "rating-summary"
	KindBusiness      = "business"
	KindAdmin         = "admin"
)

func dealsKey(q apiclient.DealQuery) querycache.Key {
	return querycache.K(KindDeals, q.Values().Encode())
}

func dealKey(id uuid.UUID) querycache.Key { return querycache.K(KindDeal, id.String()) }

func trendingKey(limit int) querycache.Key { return querycache.K(KindTrending, strconv.Itoa(limit)) }

func cartKey(userID uuid.UUID) querycache.Key { return querycache.K(KindCart, userID.String()) }

func wishlistKey(userID uuid.UUID) querycache.Key {
	return querycache.K(KindWishlist, userID.String())
}

func claimsKey(userID uuid.UUID) querycache.Key { return querycache.K(KindClaims, userID.String()) }

func verificationsKey(dealID uuid.UUID) querycache.Key {
	return querycache.K(KindVerifications, dealID.String())
}

func ratingsKey(businessID uuid.UUID) querycache.Key {
	return querycache.K(KindRatings, businessID.String())
}

func ratingSummaryKey(businessID uuid.UUID) querycache.Key {
	return querycache.K(KindRatingSummary, businessID.String())
}

func businessKey(id uuid.UUID) querycache.Key { return querycache.K(KindBusiness, id.String()) }

// invalidation is what one successful mutation makes stale.
type invalidation struct {
	keys  []querycache.Key
	kinds []string
}

func (inv invalidation) apply(c *querycache.Cache) {
	c.Invalidate(inv.keys...)
	c.InvalidateKind(inv.kinds...)
}

// A deal changed in a way every listing may show: all filter sets, trending,
// and the deal itself.
func dealChanged(id uuid.UUID) invalidation {
	inv := invalidation{kinds: []string{KindDeals, KindTrending}}
	if id != uuid.Nil {
		inv.keys = append(inv.keys, dealKey(id))
	}
	return inv
}
