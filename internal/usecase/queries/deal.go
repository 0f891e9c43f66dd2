package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"local-deals/internal/domain/deal"
	"local-deals/internal/infra"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDealNotFound = errs.Mark(errs.New("deal not found"), errs.ErrNotFound)

const (
	DefaultTrendingLimit = 4
	MaxDealListLimit     = 200
)

// DealFilters are AND-combined. Status defaults to active; BusinessID listings
// include every status unless one is given.
type DealFilters struct {
	Search     string
	CategoryID *uuid.UUID
	// CategorySlug is used when the category filter is not a UUID.
	CategorySlug string
	SortBy       deal.SortKey
	Status       string
	BusinessID   *uuid.UUID
	Limit        int
}

func (f DealFilters) Normalize() DealFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.CategorySlug = strings.ToLower(strings.TrimSpace(f.CategorySlug))
	f.SortBy = deal.NewSortKey(string(f.SortBy))
	if f.Status == "" && f.BusinessID == nil {
		f.Status = deal.StatusActive.String()
	}
	// Zero means the whole matching set; only explicit limits are capped.
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Limit > MaxDealListLimit {
		f.Limit = MaxDealListLimit
	}
	return f
}

// CacheKey is stable for equal normalized filters.
func (f DealFilters) CacheKey() string {
	cat := ""
	if f.CategoryID != nil {
		cat = f.CategoryID.String()
	}
	biz := ""
	if f.BusinessID != nil {
		biz = f.BusinessID.String()
	}
	return fmt.Sprintf("deals:list:q=%s|c=%s|cs=%s|s=%s|st=%s|b=%s|l=%d",
		strings.ToLower(f.Search), cat, f.CategorySlug, f.SortBy, f.Status, biz, f.Limit)
}

type DealReadStore interface {
	List(ctx context.Context, f DealFilters) ([]*DealView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*DealView, error)
	Trending(ctx context.Context, limit int) ([]*DealView, error)
	Categories(ctx context.Context) ([]*CategoryView, error)
}

type DealQueries interface {
	List(ctx context.Context, f DealFilters) ([]*DealView, error)
	Get(ctx context.Context, id uuid.UUID) (*DealView, error)
	Trending(ctx context.Context, limit int) ([]*DealView, error)
	Categories(ctx context.Context) ([]*CategoryView, error)
}

type dealQueriesImpl struct {
	store DealReadStore
	cache shared.DealCache
}

// cache may be nil.
func NewDealQueries(store DealReadStore, cache shared.DealCache) DealQueries {
	return &dealQueriesImpl{store: store, cache: cache}
}

func (q *dealQueriesImpl) List(ctx context.Context, f DealFilters) ([]*DealView, error) {
	f = f.Normalize()
	key := f.CacheKey()

	if q.cache != nil {
		var cached []*DealView
		hit, err := q.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.WarnContext(ctx, "deal cache read failed", "error", err.Error())
		} else if hit {
			return cached, nil
		}
	}

	deals, err := q.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if deals == nil {
		deals = []*DealView{}
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, key, deals); err != nil {
			slog.WarnContext(ctx, "deal cache write failed", "error", err.Error())
		}
	}
	return deals, nil
}

func (q *dealQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*DealView, error) {
	d, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return d, nil
}

func (q *dealQueriesImpl) Trending(ctx context.Context, limit int) ([]*DealView, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	if limit > MaxDealListLimit {
		limit = MaxDealListLimit
	}
	return q.store.Trending(ctx, limit)
}

func (q *dealQueriesImpl) Categories(ctx context.Context) ([]*CategoryView, error) {
	return q.store.Categories(ctx)
}
