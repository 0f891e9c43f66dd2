//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"local-deals/internal/domain/business"
	"local-deals/internal/domain/cart"
	"local-deals/internal/domain/claim"
	"local-deals/internal/domain/deal"
	"local-deals/internal/domain/rating"
	"local-deals/internal/domain/report"
	"local-deals/internal/domain/user"
	"local-deals/internal/infra"
	"local-deals/internal/infra/db"
	"local-deals/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore backs every fake repository. Within holds the lock for the whole
// callback, which serializes transactions the way row locks would.
type memStore struct {
	mu sync.Mutex

	users      map[uuid.UUID]*shared.UserSnapshot
	businesses map[uuid.UUID]*shared.BusinessSnapshot // keyed by owner
	deals      map[uuid.UUID]*deal.Deal
	cart       map[[2]uuid.UUID]uuid.UUID
	wishlist   map[[2]uuid.UUID]bool
	claims     map[claim.Code]*shared.ClaimSnapshot
	verified   map[[2]uuid.UUID]bool
	ratings    []*rating.Rating
	reports    map[uuid.UUID]*report.Report

	// collisions makes the next N claim inserts report a code clash.
	collisions int
	now        time.Time
}

func newMemStore(now time.Time) *memStore {
	return &memStore{
		users:      map[uuid.UUID]*shared.UserSnapshot{},
		businesses: map[uuid.UUID]*shared.BusinessSnapshot{},
		deals:      map[uuid.UUID]*deal.Deal{},
		cart:       map[[2]uuid.UUID]uuid.UUID{},
		wishlist:   map[[2]uuid.UUID]bool{},
		claims:     map[claim.Code]*shared.ClaimSnapshot{},
		verified:   map[[2]uuid.UUID]bool{},
		reports:    map[uuid.UUID]*report.Report{},
		now:        now,
	}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func (s *memStore) addUser(role user.Role) uuid.UUID {
	id := uuid.New()
	s.users[id] = &shared.UserSnapshot{ID: id, Email: id.String() + "@example.com", FullName: "Test User", Role: role.String(), IsActive: true}
	return id
}

func (s *memStore) addBusiness(ownerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.businesses[ownerID] = &shared.BusinessSnapshot{ID: id, UserID: ownerID, Name: "Corner Bakery", VerificationStatus: "approved"}
	return id
}

func (s *memStore) addDeal(st deal.State) *deal.Deal {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	d := deal.Restore(st)
	s.deals[d.ID()] = d
	return d
}

type fakeUoW struct{ s *memStore }

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return fn(ctx, &fakeTx{s: u.s})
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct{ s *memStore }

func (t *fakeTx) Users() shared.UserRepository                 { return fakeUsers{t.s} }
func (t *fakeTx) Businesses() shared.BusinessRepository        { return fakeBusinesses{t.s} }
func (t *fakeTx) Deals() shared.DealRepository                 { return fakeDeals{t.s} }
func (t *fakeTx) Cart() shared.CartRepository                  { return fakeCart{t.s} }
func (t *fakeTx) Wishlist() shared.WishlistRepository          { return fakeWishlist{t.s} }
func (t *fakeTx) Claims() shared.ClaimRepository               { return fakeClaims{t.s} }
func (t *fakeTx) Verifications() shared.VerificationRepository { return fakeVerifications{t.s} }
func (t *fakeTx) Ratings() shared.RatingRepository             { return fakeRatings{t.s} }
func (t *fakeTx) Reports() shared.ReportRepository             { return fakeReports{t.s} }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeUsers struct{ s *memStore }

func (r fakeUsers) Create(_ context.Context, _ db.DBTX, u *user.User) error {
	for _, existing := range r.s.users {
		if existing.Email == u.Email().Value() {
			return infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	r.s.users[u.ID()] = &shared.UserSnapshot{ID: u.ID(), Email: u.Email().Value(), FullName: u.FullName(), Role: u.Role().String(), IsActive: true}
	return nil
}

func (r fakeUsers) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (r fakeUsers) UpdateRole(_ context.Context, _ db.DBTX, id uuid.UUID, role user.Role) error {
	u, ok := r.s.users[id]
	if !ok {
		return notFound("user not found")
	}
	u.Role = role.String()
	return nil
}

func (r fakeUsers) UpdateLastLogin(context.Context, db.DBTX, uuid.UUID, time.Time) error {
	return nil
}

type fakeBusinesses struct{ s *memStore }

func (r fakeBusinesses) Create(_ context.Context, _ db.DBTX, b *business.Business) error {
	if _, ok := r.s.users[b.UserID()]; !ok {
		return infra.WrapRepoErr("missing owner", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.s.businesses[b.UserID()]; ok {
		return infra.WrapRepoErr("duplicate business", nil, infra.KindDuplicateKey)
	}
	r.s.businesses[b.UserID()] = &shared.BusinessSnapshot{ID: b.ID(), UserID: b.UserID(), Name: b.Name(), VerificationStatus: b.VerificationStatus().String()}
	return nil
}

func (r fakeBusinesses) FindByUserID(_ context.Context, _ db.DBTX, userID uuid.UUID) (*shared.BusinessSnapshot, error) {
	b, ok := r.s.businesses[userID]
	if !ok {
		return nil, notFound("business not found")
	}
	return b, nil
}

func (r fakeBusinesses) UpdateVerificationStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status business.VerificationStatus) error {
	for _, b := range r.s.businesses {
		if b.ID == id {
			b.VerificationStatus = status.String()
			return nil
		}
	}
	return notFound("business not found")
}

type fakeDeals struct{ s *memStore }

func (r fakeDeals) Create(_ context.Context, _ db.DBTX, d *deal.Deal) error {
	r.s.deals[d.ID()] = d
	return nil
}

func (r fakeDeals) FindForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*deal.Deal, error) {
	d, ok := r.s.deals[id]
	if !ok {
		return nil, notFound("deal not found")
	}
	return d, nil
}

func (r fakeDeals) Update(_ context.Context, _ db.DBTX, d *deal.Deal) error {
	if _, ok := r.s.deals[d.ID()]; !ok {
		return notFound("deal not found")
	}
	r.s.deals[d.ID()] = d
	return nil
}

func (r fakeDeals) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.s.deals[id]; !ok {
		return notFound("deal not found")
	}
	delete(r.s.deals, id)
	return nil
}

func (r fakeDeals) ReserveClaimSlot(_ context.Context, _ db.DBTX, id uuid.UUID) (bool, error) {
	d, ok := r.s.deals[id]
	if !ok || !d.Status().Claimable() || d.Scarcity().SoldOut() {
		return false, nil
	}
	if !d.IsPerpetual() && d.EndDate().Before(r.s.now) {
		return false, nil
	}
	st := stateOf(d)
	st.ClaimedCount++
	r.s.deals[id] = deal.Restore(st)
	return true, nil
}

func (r fakeDeals) IncrementViews(context.Context, db.DBTX, uuid.UUID) error { return nil }

func (r fakeDeals) ExpireOverdue(_ context.Context, _ db.DBTX, now time.Time) (int64, error) {
	var n int64
	for id, d := range r.s.deals {
		if d.Status() == deal.StatusActive && !d.IsPerpetual() && d.EndDate().Before(now) {
			st := stateOf(d)
			st.Status = deal.StatusExpired.String()
			r.s.deals[id] = deal.Restore(st)
			n++
		}
	}
	return n, nil
}

func stateOf(d *deal.Deal) deal.State {
	return deal.State{
		ID:            d.ID(),
		BusinessID:    d.BusinessID(),
		Title:         d.Title(),
		Description:   d.Description(),
		DiscountType:  d.Discount().Kind().String(),
		DiscountValue: d.Discount().Display(),
		StartDate:     d.StartDate(),
		EndDate:       d.EndDate(),
		IsPerpetual:   d.IsPerpetual(),
		Status:        d.Status().String(),
		TotalQuantity: d.TotalQuantity(),
		ClaimedCount:  d.ClaimedCount(),
		CreatedAt:     d.CreatedAt(),
		UpdatedAt:     d.UpdatedAt(),
	}
}

type fakeCart struct{ s *memStore }

func (r fakeCart) Upsert(_ context.Context, _ db.DBTX, item *cart.Item) (uuid.UUID, error) {
	if _, ok := r.s.deals[item.DealID()]; !ok {
		return uuid.Nil, infra.WrapRepoErr("missing deal", nil, infra.KindForeignKeyViolated)
	}
	key := [2]uuid.UUID{item.UserID(), item.DealID()}
	if id, ok := r.s.cart[key]; ok {
		return id, nil
	}
	id := uuid.New()
	r.s.cart[key] = id
	return id, nil
}

func (r fakeCart) find(userID, itemID uuid.UUID) ([2]uuid.UUID, bool) {
	for k, id := range r.s.cart {
		if k[0] == userID && id == itemID {
			return k, true
		}
	}
	return [2]uuid.UUID{}, false
}

func (r fakeCart) UpdateQuantity(_ context.Context, _ db.DBTX, userID, itemID uuid.UUID, _ cart.Quantity) error {
	if _, ok := r.find(userID, itemID); !ok {
		return notFound("cart item not found")
	}
	return nil
}

func (r fakeCart) Delete(_ context.Context, _ db.DBTX, userID, itemID uuid.UUID) error {
	k, ok := r.find(userID, itemID)
	if !ok {
		return notFound("cart item not found")
	}
	delete(r.s.cart, k)
	return nil
}

func (r fakeCart) Clear(_ context.Context, _ db.DBTX, userID uuid.UUID) (int64, error) {
	var n int64
	for k := range r.s.cart {
		if k[0] == userID {
			delete(r.s.cart, k)
			n++
		}
	}
	return n, nil
}

type fakeWishlist struct{ s *memStore }

func (r fakeWishlist) Add(_ context.Context, _ db.DBTX, userID, dealID uuid.UUID) error {
	if _, ok := r.s.deals[dealID]; !ok {
		return infra.WrapRepoErr("missing deal", nil, infra.KindForeignKeyViolated)
	}
	r.s.wishlist[[2]uuid.UUID{userID, dealID}] = true
	return nil
}

func (r fakeWishlist) Remove(_ context.Context, _ db.DBTX, userID, dealID uuid.UUID) error {
	delete(r.s.wishlist, [2]uuid.UUID{userID, dealID})
	return nil
}

type fakeClaims struct{ s *memStore }

func (r fakeClaims) Create(_ context.Context, _ db.DBTX, c *claim.Claim) (bool, error) {
	if r.s.collisions > 0 {
		r.s.collisions--
		return false, nil
	}
	if _, ok := r.s.claims[c.Code()]; ok {
		return false, nil
	}
	var bizUser uuid.UUID
	d := r.s.deals[c.DealID()]
	for owner, b := range r.s.businesses {
		if d != nil && b.ID == d.BusinessID() {
			bizUser = owner
		}
	}
	r.s.claims[c.Code()] = &shared.ClaimSnapshot{
		ID: c.ID(), UserID: c.UserID(), DealID: c.DealID(), Code: c.Code().String(),
		BusinessUserID: bizUser,
	}
	return true, nil
}

func (r fakeClaims) FindByCodeForUpdate(_ context.Context, _ db.DBTX, code claim.Code) (*shared.ClaimSnapshot, error) {
	c, ok := r.s.claims[code]
	if !ok {
		return nil, notFound("claim not found")
	}
	cp := *c
	return &cp, nil
}

func (r fakeClaims) MarkRedeemed(_ context.Context, _ db.DBTX, id uuid.UUID, at time.Time) (bool, error) {
	for _, c := range r.s.claims {
		if c.ID == id && !c.IsRedeemed {
			c.IsRedeemed = true
			c.RedeemedAt = &at
			return true, nil
		}
	}
	return false, nil
}

type fakeVerifications struct{ s *memStore }

func (r fakeVerifications) Add(_ context.Context, _ db.DBTX, userID, dealID uuid.UUID) (bool, error) {
	key := [2]uuid.UUID{userID, dealID}
	if r.s.verified[key] {
		return false, nil
	}
	r.s.verified[key] = true
	return true, nil
}

type fakeRatings struct{ s *memStore }

func (r fakeRatings) Create(_ context.Context, _ db.DBTX, rt *rating.Rating) error {
	for _, b := range r.s.businesses {
		if b.ID == rt.BusinessID() {
			r.s.ratings = append(r.s.ratings, rt)
			return nil
		}
	}
	return infra.WrapRepoErr("missing business", nil, infra.KindForeignKeyViolated)
}

type fakeReports struct{ s *memStore }

func (r fakeReports) Create(_ context.Context, _ db.DBTX, rp *report.Report) error {
	r.s.reports[rp.ID()] = rp
	return nil
}

func (r fakeReports) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, _ report.Status) error {
	if _, ok := r.s.reports[id]; !ok {
		return notFound("report not found")
	}
	return nil
}

type countingCache struct {
	mu            sync.Mutex
	invalidations int
}

func (c *countingCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (c *countingCache) Set(context.Context, string, any) error         { return nil }
func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	c.invalidations++
	c.mu.Unlock()
	return nil
}
