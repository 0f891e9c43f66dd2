//go:build unit

package storefront_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/session"
	"local-deals/internal/client/storefront"
	"local-deals/internal/pkg/ptr"
	"local-deals/tests/common/fakeapi"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type StorefrontTestSuite struct {
	suite.Suite
	ctx      context.Context
	server   *fakeapi.Server
	storage  *session.MemoryStorage
	session  *session.Store
	notifier *recordingNotifier
	sf       *storefront.Storefront

	customer apiclient.User
	food     apiclient.Category
}

func TestStorefrontTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontTestSuite))
}

func (s *StorefrontTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.server = fakeapi.New(s.T())
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.server.Now = func() time.Time { return fixed }

	s.customer = s.server.AddUser("shopper@example.com", "secret1", "customer")
	s.food = s.server.AddCategory("Food", "food")

	s.storage = &session.MemoryStorage{}
	client := apiclient.New(s.server.BaseURL(), apiclient.WithTokenSource(s.storage))
	s.session = session.NewStore(client, s.storage, nil)
	s.notifier = &recordingNotifier{}
	s.sf = storefront.New(client, s.session, storefront.WithNotifier(s.notifier))
}

func (s *StorefrontTestSuite) signIn() {
	_, err := s.session.SignIn(s.ctx, "shopper@example.com", "secret1")
	s.Require().NoError(err)
}

func (s *StorefrontTestSuite) addDeal(title, discount string, total *int) apiclient.Deal {
	return s.server.AddDeal(apiclient.Deal{
		BusinessID:    uuid.New(),
		BusinessName:  "Corner Cafe",
		CategoryID:    &s.food.ID,
		CategorySlug:  &s.food.Slug,
		Title:         title,
		Description:   title + " for everyone",
		DiscountValue: discount,
		TotalQuantity: total,
	})
}

func (s *StorefrontTestSuite) TestGetCart_未ログインは空でリクエストしない() {
	items, err := s.sf.GetCart(s.ctx)

	s.Require().NoError(err)
	s.Empty(items)
	s.Zero(s.server.TotalHits())
}

func (s *StorefrontTestSuite) TestAddToCart_未ログインはErrUnauthenticated() {
	d := s.addDeal("Pizza", "50%", nil)

	err := s.sf.AddToCart(s.ctx, d.ID)

	s.ErrorIs(err, apiclient.ErrUnauthenticated)
	s.Zero(s.server.Hits("POST /api/cart"))
	s.Len(s.notifier.errors, 1)
}

func (s *StorefrontTestSuite) TestCart_空から追加して再追加() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", nil)

	items, err := s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
	s.False(s.sf.IsInCart(d.ID))

	s.Require().NoError(s.sf.AddToCart(s.ctx, d.ID))
	items, err = s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(1, items[0].Quantity)
	s.Require().NotNil(items[0].Deal)
	s.Equal("Pizza", items[0].Deal.Title)
	s.True(s.sf.IsInCart(d.ID))
	s.Equal(1, s.sf.CartCount())

	s.Require().NoError(s.sf.AddToCart(s.ctx, d.ID))
	items, err = s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 1, "adding twice keeps one row")
	s.Equal(1, items[0].Quantity)

	s.Equal([]string{"Added to cart", "Added to cart"}, s.notifier.successes)
	s.Equal(3, s.server.Hits("GET /api/cart"), "each add invalidates the cached cart")
}

func (s *StorefrontTestSuite) TestGetCart_キャッシュされる() {
	s.signIn()

	for range 3 {
		_, err := s.sf.GetCart(s.ctx)
		s.Require().NoError(err)
	}
	s.Equal(1, s.server.Hits("GET /api/cart"))
}

func (s *StorefrontTestSuite) TestUpdateQuantity_0はリクエストしない() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", nil)
	s.Require().NoError(s.sf.AddToCart(s.ctx, d.ID))
	items, err := s.sf.GetCart(s.ctx)
	s.Require().NoError(err)

	err = s.sf.UpdateQuantity(s.ctx, items[0].ID, 0)

	s.ErrorIs(err, apiclient.ErrValidation)
	s.Zero(s.server.Hits("PUT /api/cart/:id"))
	s.NotEmpty(s.notifier.errors)
}

func (s *StorefrontTestSuite) TestRemoveAndClearCart() {
	s.signIn()
	a := s.addDeal("Pizza", "50%", nil)
	b := s.addDeal("Coffee", "10%", nil)
	s.Require().NoError(s.sf.AddToCart(s.ctx, a.ID))
	s.Require().NoError(s.sf.AddToCart(s.ctx, b.ID))
	items, err := s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 2)

	s.Require().NoError(s.sf.RemoveFromCart(s.ctx, items[0].ID))
	items, err = s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 1)

	s.Require().NoError(s.sf.ClearCart(s.ctx))
	items, err = s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
	s.Zero(s.sf.CartCount())
}

func (s *StorefrontTestSuite) TestRemoveFromCart_存在しない項目はエラー通知() {
	s.signIn()

	err := s.sf.RemoveFromCart(s.ctx, uuid.New())

	s.ErrorIs(err, apiclient.ErrNotFound)
	s.Equal([]string{"cart item not found"}, s.notifier.errors)
	s.Empty(s.notifier.successes)
}

func (s *StorefrontTestSuite) TestWishlist() {
	d := s.addDeal("Pizza", "50%", nil)

	items, err := s.sf.GetWishlist(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
	s.Zero(s.server.TotalHits())

	s.signIn()
	s.Require().NoError(s.sf.AddToWishlist(s.ctx, d.ID))
	s.Require().NoError(s.sf.AddToWishlist(s.ctx, d.ID))
	items, err = s.sf.GetWishlist(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 1)
	s.True(s.sf.IsSaved(d.ID))

	s.Require().NoError(s.sf.RemoveFromWishlist(s.ctx, d.ID))
	items, err = s.sf.GetWishlist(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
	s.False(s.sf.IsSaved(d.ID))
}

func (s *StorefrontTestSuite) TestClaimDeal_上限で失敗しカウントは変わらない() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", ptr.Of(1))

	claimed, err := s.sf.ClaimDeal(s.ctx, d.ID)
	s.Require().NoError(err)
	s.NotEmpty(claimed.Code)
	s.Equal(1, s.server.ClaimedCount(d.ID))

	_, err = s.sf.ClaimDeal(s.ctx, d.ID)
	s.ErrorIs(err, apiclient.ErrConflict)
	s.Equal(1, s.server.ClaimedCount(d.ID))
	s.Equal([]string{"deal has reached its claim limit"}, s.notifier.errors)
}

func (s *StorefrontTestSuite) TestClaimDeal_関連キャッシュを無効化する() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", ptr.Of(5))

	before, err := s.sf.GetDeal(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().NotNil(before.Remaining)
	s.Equal(5, *before.Remaining)
	list, err := s.sf.ListDeals(s.ctx, storefront.DealFilters{})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	_, err = s.sf.ListTrending(s.ctx, 0)
	s.Require().NoError(err)
	claims, err := s.sf.ListMyClaims(s.ctx)
	s.Require().NoError(err)
	s.Empty(claims)

	_, err = s.sf.ClaimDeal(s.ctx, d.ID)
	s.Require().NoError(err)

	after, err := s.sf.GetDeal(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(4, *after.Remaining)
	list, err = s.sf.ListDeals(s.ctx, storefront.DealFilters{})
	s.Require().NoError(err)
	s.Equal(1, list[0].ClaimedCount)
	claims, err = s.sf.ListMyClaims(s.ctx)
	s.Require().NoError(err)
	s.Len(claims, 1)

	s.Equal(2, s.server.Hits("GET /api/deals/:id"))
	s.Equal(2, s.server.Hits("GET /api/deals"))
	s.Equal(1, s.server.Hits("GET /api/deals/trending"), "trending is reloaded lazily")
	_, err = s.sf.ListTrending(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(2, s.server.Hits("GET /api/deals/trending"))
}

func (s *StorefrontTestSuite) TestRedeemByCode_一度だけ() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", nil)
	claimed, err := s.sf.ClaimDeal(s.ctx, d.ID)
	s.Require().NoError(err)

	_, err = s.sf.RedeemByCode(s.ctx, "nope-nope-nope")
	s.ErrorIs(err, apiclient.ErrNotFound)

	r, err := s.sf.RedeemByCode(s.ctx, claimed.Code)
	s.Require().NoError(err)
	s.Equal(claimed.ID, r.ClaimID)

	_, err = s.sf.RedeemByCode(s.ctx, claimed.Code)
	s.ErrorIs(err, apiclient.ErrConflict)

	claims, err := s.sf.ListMyClaims(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(claims, 1)
	s.True(claims[0].IsRedeemed)
}

func (s *StorefrontTestSuite) TestClaimQR() {
	png, err := s.sf.ClaimQR("ABCD-EFGH-JKMN")
	s.Require().NoError(err)
	s.Equal([]byte("\x89PNG"), png[:4])

	_, err = s.sf.ClaimQR("  ")
	s.ErrorIs(err, apiclient.ErrValidation)
}

func (s *StorefrontTestSuite) TestVerifyDeal_重複は成功扱い() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", nil)

	v, err := s.sf.ListVerifications(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Zero(v.Count)
	s.False(v.VerifiedByMe)

	s.Require().NoError(s.sf.VerifyDeal(s.ctx, d.ID))
	s.Require().NoError(s.sf.VerifyDeal(s.ctx, d.ID))

	v, err = s.sf.ListVerifications(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(1, v.Count)
	s.True(v.VerifiedByMe)
}

func (s *StorefrontTestSuite) TestSubmitRating_範囲外はリクエストしない() {
	s.signIn()
	biz := uuid.New()

	for _, score := range []int{0, 6, -1} {
		err := s.sf.SubmitRating(s.ctx, biz, score, "")
		s.ErrorIs(err, apiclient.ErrValidation)
	}
	s.Zero(s.server.Hits("POST /api/ratings"))
	s.Len(s.notifier.errors, 3)

	s.Require().NoError(s.sf.SubmitRating(s.ctx, biz, 5, "great"))
	ratings, err := s.sf.ListRatings(s.ctx, biz)
	s.Require().NoError(err)
	s.Require().Len(ratings, 1)
	s.Equal(5, ratings[0].Score)
}

func (s *StorefrontTestSuite) TestSignOut_キャッシュを破棄する() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", nil)
	s.Require().NoError(s.sf.AddToCart(s.ctx, d.ID))
	_, err := s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, s.sf.CartCount())

	s.Require().NoError(s.session.SignOut(s.ctx))

	s.Zero(s.sf.CartCount())
	s.Zero(s.sf.Cache().Len())
	items, err := s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *StorefrontTestSuite) TestListDeals_フィルタと並び順() {
	s.addDeal("Pizza night", "50%", nil)
	s.addDeal("Coffee morning", "10%", nil)
	s.addDeal("Buy one get one", "abc", nil)
	other := s.server.AddCategory("Fitness", "fitness")
	s.server.AddDeal(apiclient.Deal{Title: "Gym pizza", Description: "x", DiscountValue: "75%", CategoryID: &other.ID, CategorySlug: &other.Slug})
	s.server.AddDeal(apiclient.Deal{Title: "Draft pizza", Description: "x", DiscountValue: "90%", Status: "draft"})

	deals, err := s.sf.ListDeals(s.ctx, storefront.DealFilters{SortBy: "discount", CategoryID: "food"})
	s.Require().NoError(err)
	titles := make([]string, len(deals))
	for i, d := range deals {
		titles[i] = d.Title
	}
	s.Equal([]string{"Pizza night", "Coffee morning", "Buy one get one"}, titles)

	deals, err = s.sf.ListDeals(s.ctx, storefront.DealFilters{Search: "PIZZA"})
	s.Require().NoError(err)
	s.Len(deals, 2, "drafts are excluded by the default status")
}

func (s *StorefrontTestSuite) TestListBusinessDeals_IDなしはリクエストしない() {
	deals, err := s.sf.ListBusinessDeals(s.ctx, uuid.Nil)
	s.Require().NoError(err)
	s.Empty(deals)
	s.Zero(s.server.TotalHits())

	biz := uuid.New()
	s.server.AddDeal(apiclient.Deal{BusinessID: biz, Title: "a", DiscountValue: "5%", Status: "draft"})
	s.server.AddDeal(apiclient.Deal{BusinessID: biz, Title: "b", DiscountValue: "5%"})
	s.addDeal("someone else", "5%", nil)

	deals, err = s.sf.ListBusinessDeals(s.ctx, biz)
	s.Require().NoError(err)
	s.Len(deals, 2)
}

func (s *StorefrontTestSuite) TestListDeals_並び順の既定は人気順() {
	now := s.server.Now()
	s.server.AddDeal(apiclient.Deal{Title: "popular", DiscountValue: "10%", ViewCount: 999, CreatedAt: now.Add(-48 * time.Hour)})
	s.server.AddDeal(apiclient.Deal{Title: "fresh", DiscountValue: "10%", ViewCount: 1, CreatedAt: now})

	for _, sortBy := range []string{"", "cheapest"} {
		deals, err := s.sf.ListDeals(s.ctx, storefront.DealFilters{SortBy: sortBy})
		s.Require().NoError(err)
		s.Require().Len(deals, 2)
		s.Equal("popular", deals[0].Title, "sortBy=%q", sortBy)
	}

	deals, err := s.sf.ListDeals(s.ctx, storefront.DealFilters{SortBy: "newest"})
	s.Require().NoError(err)
	s.Equal("fresh", deals[0].Title)
}

func (s *StorefrontTestSuite) TestListRatings_全ページを取得する() {
	biz := uuid.New()
	total := 2*fakeapi.RatingPageSize + 5
	for i := range total {
		s.server.AddRating(apiclient.Rating{BusinessID: biz, UserID: uuid.New(), Score: i%5 + 1})
	}
	s.server.AddRating(apiclient.Rating{BusinessID: uuid.New(), UserID: uuid.New(), Score: 3})

	ratings, err := s.sf.ListRatings(s.ctx, biz)
	s.Require().NoError(err)
	s.Len(ratings, total)
	s.Equal(3, s.server.Hits("GET /api/ratings/business/:id"))

	seen := map[uuid.UUID]bool{}
	for _, r := range ratings {
		s.False(seen[r.ID], "rating %s listed twice", r.ID)
		seen[r.ID] = true
	}

	_, err = s.sf.ListRatings(s.ctx, biz)
	s.Require().NoError(err)
	s.Equal(3, s.server.Hits("GET /api/ratings/business/:id"), "the whole list is cached")
}

func (s *StorefrontTestSuite) TestPerUserReads_拒否されたセッションは空を返す() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", nil)
	s.Require().NoError(s.sf.AddToCart(s.ctx, d.ID))
	s.Require().NoError(s.sf.AddToWishlist(s.ctx, d.ID))
	s.sf.Cache().Reset()

	s.server.ExpireTokens(true)

	cart, err := s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Empty(cart)
	saved, err := s.sf.GetWishlist(s.ctx)
	s.Require().NoError(err)
	s.Empty(saved)
	claims, err := s.sf.ListMyClaims(s.ctx)
	s.Require().NoError(err)
	s.Empty(claims)
	s.Empty(s.notifier.errors, "quiet reads do not notify")
}

func (s *StorefrontTestSuite) TestPerUserReads_期限切れトークンは更新して再取得() {
	s.signIn()
	d := s.addDeal("Pizza", "50%", nil)
	s.Require().NoError(s.sf.AddToCart(s.ctx, d.ID))
	s.sf.Cache().Reset()
	before, err := s.storage.Load()
	s.Require().NoError(err)

	s.server.ExpireTokens(false)

	cart, err := s.sf.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(cart, 1)
	s.Equal(d.ID, cart[0].DealID)
	s.Equal(1, s.server.Hits("POST /api/auth/refresh"))

	after, err := s.storage.Load()
	s.Require().NoError(err)
	s.NotEqual(before.Token, after.Token)
	s.True(s.session.IsAuthenticated())
}

func TestStorefront_CancelledMutationHasNoSideEffects(t *testing.T) {
	server := fakeapi.New(t)
	server.AddUser("a@example.com", "secret1", "customer")
	d := server.AddDeal(apiclient.Deal{Title: "Pizza", DiscountValue: "50%"})

	storage := &session.MemoryStorage{}
	client := apiclient.New(server.BaseURL(), apiclient.WithTokenSource(storage))
	sess := session.NewStore(client, storage, nil)
	_, err := sess.SignIn(context.Background(), "a@example.com", "secret1")
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	sf := storefront.New(client, sess, storefront.WithNotifier(notifier))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sf.AddToCart(ctx, d.ID)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, notifier.errors)
	assert.Empty(t, notifier.successes)
}
