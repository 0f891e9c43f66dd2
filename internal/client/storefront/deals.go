package storefront

import (
	"context"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"
	"local-deals/internal/domain/deal"
	"local-deals/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultTrendingLimit = 4

var errNoDealSource = errs.New("storefront has no deal source")

// DealFilters combine with AND. Zero values do not filter, except Status,
// which defaults to active.
type DealFilters struct {
	Search     string
	CategoryID string
	SortBy     string
	Status     string
	Limit      int
}

func (f DealFilters) query() apiclient.DealQuery {
	status := f.Status
	if status == "" {
		status = string(deal.StatusActive)
	}
	return apiclient.DealQuery{
		Search:   f.Search,
		Category: f.CategoryID,
		SortBy:   string(deal.NewSortKey(f.SortBy)),
		Status:   status,
		Limit:    f.Limit,
	}
}

func (s *Storefront) source() (DealSource, error) {
	if s.deals == nil {
		return nil, errNoDealSource
	}
	return s.deals, nil
}

func (s *Storefront) ListDeals(ctx context.Context, f DealFilters) ([]apiclient.Deal, error) {
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	q := f.query()
	return fetch(ctx, s, dealsKey(q), func(ctx context.Context) ([]apiclient.Deal, error) {
		return src.Deals(ctx, q)
	})
}

func (s *Storefront) GetDeal(ctx context.Context, id uuid.UUID) (*apiclient.Deal, error) {
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, s, dealKey(id), func(ctx context.Context) (*apiclient.Deal, error) {
		return src.Deal(ctx, id)
	})
}

func (s *Storefront) ListTrending(ctx context.Context, limit int) ([]apiclient.Deal, error) {
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return fetch(ctx, s, trendingKey(limit), func(ctx context.Context) ([]apiclient.Deal, error) {
		return src.TrendingDeals(ctx, limit)
	})
}

func (s *Storefront) ListCategories(ctx context.Context) ([]apiclient.Category, error) {
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, s, querycache.K(KindCategories), func(ctx context.Context) ([]apiclient.Category, error) {
		return src.Categories(ctx)
	})
}

// ListBusinessDeals returns every deal of one business whatever its status,
// newest first. Without a business there is nothing to ask for.
func (s *Storefront) ListBusinessDeals(ctx context.Context, businessID uuid.UUID) ([]apiclient.Deal, error) {
	if businessID == uuid.Nil {
		return []apiclient.Deal{}, nil
	}
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	q := apiclient.DealQuery{
		BusinessID: businessID.String(),
		SortBy:     string(deal.SortNewest),
	}
	return fetch(ctx, s, dealsKey(q), func(ctx context.Context) ([]apiclient.Deal, error) {
		return src.Deals(ctx, q)
	})
}
