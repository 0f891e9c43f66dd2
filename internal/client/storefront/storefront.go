// Package storefront is the data layer behind the deal screens: reads are
// cached per key, and every successful mutation invalidates exactly the keys
// it makes stale and then notifies the user.
package storefront

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"
	"local-deals/internal/client/session"
	"local-deals/internal/pkg/clock"

	"github.com/google/uuid"
)

// DealSource serves the public catalogue. *apiclient.Client and
// *postgrest.DealSource both satisfy it.
type DealSource interface {
	Deals(ctx context.Context, q apiclient.DealQuery) ([]apiclient.Deal, error)
	TrendingDeals(ctx context.Context, limit int) ([]apiclient.Deal, error)
	Deal(ctx context.Context, id uuid.UUID) (*apiclient.Deal, error)
	Categories(ctx context.Context) ([]apiclient.Category, error)
}

// API is everything else the storefront calls. *apiclient.Client satisfies it.
type API interface {
	Cart(ctx context.Context) ([]apiclient.CartItem, error)
	AddToCart(ctx context.Context, dealID uuid.UUID) (uuid.UUID, error)
	UpdateCartQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	RemoveFromCart(ctx context.Context, itemID uuid.UUID) error
	ClearCart(ctx context.Context) error

	Wishlist(ctx context.Context) ([]apiclient.WishlistItem, error)
	AddToWishlist(ctx context.Context, dealID uuid.UUID) error
	RemoveFromWishlist(ctx context.Context, dealID uuid.UUID) error

	MyClaims(ctx context.Context) ([]apiclient.Claim, error)
	ClaimDeal(ctx context.Context, dealID uuid.UUID) (*apiclient.Claim, error)
	Redeem(ctx context.Context, code string) (*apiclient.Redemption, error)
	Verifications(ctx context.Context, dealID uuid.UUID) (*apiclient.Verifications, error)
	VerifyDeal(ctx context.Context, dealID uuid.UUID) error

	Ratings(ctx context.Context, businessID uuid.UUID, cursor string) (*apiclient.RatingPage, error)
	RatingSummary(ctx context.Context, businessID uuid.UUID) (*apiclient.RatingSummary, error)
	SubmitRating(ctx context.Context, req apiclient.RatingRequest) (uuid.UUID, error)

	Business(ctx context.Context, id uuid.UUID) (*apiclient.Business, error)
	RegisterBusiness(ctx context.Context, req apiclient.BusinessRequest) (*apiclient.BusinessRegistration, error)
	CreateDeal(ctx context.Context, req apiclient.DealRequest) (uuid.UUID, error)
	UpdateDeal(ctx context.Context, id uuid.UUID, patch apiclient.DealPatch) error
	DeleteDeal(ctx context.Context, id uuid.UUID) error
	ReportDeal(ctx context.Context, dealID uuid.UUID, reason string) (uuid.UUID, error)
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)

	BusinessesForReview(ctx context.Context, status string) ([]apiclient.Business, error)
	SetBusinessStatus(ctx context.Context, id uuid.UUID, status string) error
	Reports(ctx context.Context, status string) ([]apiclient.Report, error)
	SetReportStatus(ctx context.Context, id uuid.UUID, status string) error
}

type Storefront struct {
	api      API
	deals    DealSource
	session  *session.Store
	cache    *querycache.Cache
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

type Option func(*Storefront)

// WithDealSource reads the catalogue from somewhere other than the API.
func WithDealSource(src DealSource) Option { return func(s *Storefront) { s.deals = src } }

func WithCache(c *querycache.Cache) Option { return func(s *Storefront) { s.cache = c } }

func WithNotifier(n Notifier) Option { return func(s *Storefront) { s.notifier = n } }

func WithClock(c clock.Clock) Option { return func(s *Storefront) { s.clock = c } }

func WithLogger(l *slog.Logger) Option { return func(s *Storefront) { s.logger = l } }

// New wires the storefront. api is also the deal source unless
// WithDealSource says otherwise, so it usually is an *apiclient.Client.
func New(api API, sess *session.Store, opts ...Option) *Storefront {
	s := &Storefront{
		api:     api,
		session: sess,
		clock:   clock.NewRealClock(),
		logger:  slog.Default(),
	}
	if src, ok := api.(DealSource); ok {
		s.deals = src
	}
	for _, o := range opts {
		o(s)
	}
	if s.cache == nil {
		s.cache = querycache.New(querycache.WithClock(s.clock))
	}
	if s.notifier == nil {
		s.notifier = SlogNotifier{Logger: s.logger}
	}
	// Cached reads belong to whoever was signed in when they were made.
	sess.Subscribe(s.cache.Reset)
	return s
}

func (s *Storefront) Cache() *querycache.Cache { return s.cache }

func (s *Storefront) Session() *session.Store { return s.session }

// mutation describes the bookkeeping around one write.
type mutation struct {
	success string
	inv     invalidation
}

// mutate runs fn and then either invalidates and reports success, or reports
// the failure. A cancelled caller gets its error back with no side effects.
func (s *Storefront) mutate(ctx context.Context, m mutation, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		if ctx.Err() != nil {
			return err
		}
		s.notifier.Error(ctx, apiclient.Reason(err))
		return err
	}
	m.inv.apply(s.cache)
	if m.success != "" {
		s.notifier.Success(ctx, m.success)
	}
	return nil
}

// currentUser gates per-user reads and writes.
func (s *Storefront) currentUser() (uuid.UUID, bool) {
	return s.session.UserID()
}

func fetch[T any](ctx context.Context, s *Storefront, key querycache.Key, load func(context.Context) (T, error)) (T, error) {
	return querycache.Fetch(ctx, s.cache, key, load)
}

// fetchMine runs a per-user read. When the server rejects the session the
// token is refreshed once and the read retried; if that fails too the read
// behaves as signed out and returns an empty list.
func fetchMine[T any](ctx context.Context, s *Storefront, key querycache.Key, load func(context.Context) ([]T, error)) ([]T, error) {
	items, err := fetch(ctx, s, key, load)
	if !errors.Is(err, apiclient.ErrUnauthenticated) {
		return items, err
	}
	if rerr := s.session.Refresh(ctx); rerr == nil {
		items, err = fetch(ctx, s, key, load)
		if !errors.Is(err, apiclient.ErrUnauthenticated) {
			return items, err
		}
	} else {
		s.logger.DebugContext(ctx, "session refresh failed", "key", key.String(), "error", rerr)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.logger.InfoContext(ctx, "session rejected by server; read treated as signed out", "key", key.String())
	return []T{}, nil
}
