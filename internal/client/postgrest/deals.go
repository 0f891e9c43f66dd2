package postgrest

import (
	"context"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/domain/deal"
	"local-deals/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	dealsView       = "deals_with_details"
	categoriesTable = "categories"
	trendingLimit   = 4
)

// DealSource serves the catalogue reads of the storefront from PostgREST.
// Display fields the API server would compute are derived here the same way.
type DealSource struct {
	db    *Client
	clock clock.Clock
}

func NewDealSource(db *Client, clk clock.Clock) *DealSource {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &DealSource{db: db, clock: clk}
}

func orderFor(sortBy string) []string {
	switch deal.NewSortKey(sortBy) {
	case deal.SortNewest:
		return []string{"created_at.desc"}
	case deal.SortEndingSoon:
		return []string{"end_date.asc"}
	case deal.SortDiscount:
		return []string{"discount_amount.desc"}
	default:
		return []string{"view_count.desc"}
	}
}

func (s *DealSource) Deals(ctx context.Context, q apiclient.DealQuery) ([]apiclient.Deal, error) {
	query := s.db.From(dealsView).Select("*")
	if q.Status != "" {
		query.Eq("status", q.Status)
	}
	if q.Category != "" {
		if _, err := uuid.Parse(q.Category); err == nil {
			query.Eq("category_id", q.Category)
		} else {
			query.Eq("category_slug", q.Category)
		}
	}
	if q.BusinessID != "" {
		query.Eq("business_id", q.BusinessID)
	}
	query.Search(q.Search, "title", "description").
		Order(orderFor(q.SortBy)...).
		Order("id.asc").
		Limit(q.Limit)

	var out []apiclient.Deal
	if err := query.Execute(ctx, &out); err != nil {
		return nil, err
	}
	s.decorate(out)
	return out, nil
}

func (s *DealSource) TrendingDeals(ctx context.Context, limit int) ([]apiclient.Deal, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	return s.Deals(ctx, apiclient.DealQuery{Status: string(deal.StatusActive), SortBy: string(deal.SortTrending), Limit: limit})
}

func (s *DealSource) Deal(ctx context.Context, id uuid.UUID) (*apiclient.Deal, error) {
	var d apiclient.Deal
	if err := s.db.From(dealsView).Select("*").Eq("id", id.String()).Single().Execute(ctx, &d); err != nil {
		return nil, err
	}
	one := []apiclient.Deal{d}
	s.decorate(one)
	return &one[0], nil
}

func (s *DealSource) Categories(ctx context.Context) ([]apiclient.Category, error) {
	var out []apiclient.Category
	if err := s.db.From(categoriesTable).Select("*").Order("display_order.asc", "name.asc").Execute(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DealSource) decorate(deals []apiclient.Deal) {
	now := s.clock.Now()
	for i := range deals {
		d := &deals[i]
		d.ExpiryText = deal.ExpiryText(d.EndDate, d.IsPerpetual, now)
		sc := deal.Scarcity{Total: d.TotalQuantity, Claimed: d.ClaimedCount}
		d.SoldOut = sc.SoldOut()
		d.Remaining = nil
		if sc.Limited() {
			r := sc.Remaining()
			d.Remaining = &r
		}
		if d.DiscountAmount == 0 {
			d.DiscountAmount = deal.ParseDiscountValue(d.DiscountValue)
		}
	}
}
