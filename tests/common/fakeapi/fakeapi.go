//go:build unit || e2e

// Package fakeapi is an in-memory stand-in for the HTTP API, for client
// tests that need real round trips without a database.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/domain/claim"
	"local-deals/internal/domain/deal"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type account struct {
	user     apiclient.User
	password string
}

type Server struct {
	*httptest.Server

	Now func() time.Time

	mu         sync.Mutex
	accounts   map[string]*account // by email
	tokens     map[string]uuid.UUID
	refresh    map[string]uuid.UUID
	businesses map[uuid.UUID]*apiclient.Business // by owner user id
	categories []apiclient.Category
	deals      map[uuid.UUID]*apiclient.Deal
	cart       map[uuid.UUID][]*apiclient.CartItem
	wishlist   map[uuid.UUID][]*apiclient.WishlistItem
	claims     []*claimRow
	verified   map[uuid.UUID]map[uuid.UUID]bool // deal -> users
	ratings    []apiclient.Rating
	hits       map[string]int
}

type claimRow struct {
	apiclient.Claim
	userID uuid.UUID
}

// New starts the server; it is closed when the test ends.
func New(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		Now:        time.Now,
		accounts:   map[string]*account{},
		tokens:     map[string]uuid.UUID{},
		refresh:    map[string]uuid.UUID{},
		businesses: map[uuid.UUID]*apiclient.Business{},
		deals:      map[uuid.UUID]*apiclient.Deal{},
		cart:       map[uuid.UUID][]*apiclient.CartItem{},
		wishlist:   map[uuid.UUID][]*apiclient.WishlistItem{},
		verified:   map[uuid.UUID]map[uuid.UUID]bool{},
		hits:       map[string]int{},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to apiclient.New.
func (s *Server) BaseURL() string { return s.URL + "/api" }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.count)
	api := r.Group("/api")

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.POST("/auth/refresh", s.refreshSession)
	api.POST("/auth/logout", s.authed, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	api.GET("/auth/me", s.authed, s.me)
	api.GET("/business/me", s.authed, s.myBusiness)

	api.GET("/categories", s.listCategories)
	api.GET("/deals", s.listDeals)
	api.GET("/deals/trending", s.trending)
	api.GET("/deals/:id", s.getDeal)
	api.GET("/deals/:id/verifications", s.optionalAuth, s.verifications)
	api.POST("/deals/:id/verify", s.authed, s.verify)

	api.GET("/cart", s.authed, s.listCart)
	api.POST("/cart", s.authed, s.addToCart)
	api.DELETE("/cart/clear", s.authed, s.clearCart)
	api.PUT("/cart/:id", s.authed, s.updateCart)
	api.DELETE("/cart/:id", s.authed, s.removeFromCart)

	api.GET("/wishlist", s.authed, s.listWishlist)
	api.POST("/wishlist", s.authed, s.addToWishlist)
	api.DELETE("/wishlist/:dealId", s.authed, s.removeFromWishlist)

	api.GET("/deal-claims/my", s.authed, s.myClaims)
	api.POST("/deal-claims/:id", s.authed, s.claim)
	api.POST("/deal-claims/redeem/:code", s.authed, s.redeem)

	api.GET("/ratings/business/:id", s.listRatings)
	api.POST("/ratings", s.authed, s.rate)
	return r
}

func (s *Server) count(c *gin.Context) {
	s.mu.Lock()
	s.hits[c.Request.Method+" "+c.FullPath()]++
	s.mu.Unlock()
	c.Next()
}

// Hits counts requests that matched route, e.g. "POST /api/cart".
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"message": msg}})
}

// Seeding

func (s *Server) AddUser(email, password, role string) apiclient.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := apiclient.User{ID: uuid.New(), Email: email, FullName: email, Role: role, CreatedAt: s.Now()}
	s.accounts[email] = &account{user: u, password: password}
	return u
}

func (s *Server) AddBusiness(owner uuid.UUID, name string) apiclient.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := apiclient.Business{ID: uuid.New(), UserID: owner, BusinessName: name, VerificationStatus: "approved", CreatedAt: s.Now()}
	s.businesses[owner] = &b
	return b
}

func (s *Server) AddCategory(name, slug string) apiclient.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := apiclient.Category{ID: uuid.New(), Name: name, Slug: slug, DisplayOrder: len(s.categories) + 1}
	s.categories = append(s.categories, cat)
	return cat
}

// AddDeal stores d, filling id, status and timestamps when unset.
func (s *Server) AddDeal(d apiclient.Deal) apiclient.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = string(deal.StatusActive)
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.Now()
	}
	if d.EndDate.IsZero() {
		d.EndDate = s.Now().Add(30 * 24 * time.Hour)
	}
	if d.DiscountAmount == 0 {
		d.DiscountAmount = deal.ParseDiscountValue(d.DiscountValue)
	}
	s.deals[d.ID] = &d
	return d
}

// ClaimedCount reads the stored counter of a deal.
func (s *Server) ClaimedCount(dealID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.deals[dealID]; ok {
		return d.ClaimedCount
	}
	return 0
}

// Auth

func (s *Server) register(c *gin.Context) {
	var req apiclient.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	_, taken := s.accounts[req.Email]
	s.mu.Unlock()
	if taken {
		fail(c, http.StatusConflict, "email is already registered")
		return
	}
	role := req.Role
	if role == "" {
		role = "customer"
	}
	u := s.AddUser(req.Email, req.Password, role)
	c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c *gin.Context) {
	var req apiclient.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		fail(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	u := acc.user
	c.JSON(http.StatusOK, s.issue(&u))
}

// issue must be called with mu held.
func (s *Server) issue(u *apiclient.User) apiclient.Session {
	token := "access-" + uuid.NewString()
	refresh := "refresh-" + uuid.NewString()
	s.tokens[token] = u.ID
	s.refresh[refresh] = u.ID
	return apiclient.Session{Token: token, RefreshToken: refresh, User: u}
}

func (s *Server) refreshSession(c *gin.Context) {
	var req apiclient.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refresh[req.RefreshToken]
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	delete(s.refresh, req.RefreshToken)
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			u := acc.user
			c.JSON(http.StatusOK, s.issue(&u))
			return
		}
	}
	fail(c, http.StatusUnauthorized, "invalid refresh token")
}

// ExpireTokens invalidates every access token. Refresh tokens keep working
// unless revokeRefresh is set.
func (s *Server) ExpireTokens(revokeRefresh bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tokens)
	if revokeRefresh {
		clear(s.refresh)
	}
}

func (s *Server) userFor(c *gin.Context) (uuid.UUID, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return uuid.Nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	return id, ok
}

func (s *Server) authed(c *gin.Context) {
	id, ok := s.userFor(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	c.Set("user_id", id)
}

func (s *Server) optionalAuth(c *gin.Context) {
	if id, ok := s.userFor(c); ok {
		c.Set("user_id", id)
	}
}

func uid(c *gin.Context) uuid.UUID {
	id, _ := c.Get("user_id")
	u, _ := id.(uuid.UUID)
	return u
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID == uid(c) {
			c.JSON(http.StatusOK, acc.user)
			return
		}
	}
	fail(c, http.StatusNotFound, "user not found")
}

func (s *Server) myBusiness(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.businesses[uid(c)]
	if !ok {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	c.JSON(http.StatusOK, b)
}

// Deals

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.categories)
}

func (s *Server) decorated(d apiclient.Deal) apiclient.Deal {
	now := s.Now()
	d.ExpiryText = deal.ExpiryText(d.EndDate, d.IsPerpetual, now)
	sc := deal.Scarcity{Total: d.TotalQuantity, Claimed: d.ClaimedCount}
	d.SoldOut = sc.SoldOut()
	if sc.Limited() {
		r := sc.Remaining()
		d.Remaining = &r
	}
	return d
}

type dealFilter struct {
	search, category, status, business, sortBy string
	limit                                      int
}

func (s *Server) listDeals(c *gin.Context) {
	f := dealFilter{
		search:   strings.ToLower(c.Query("search")),
		category: c.Query("category"),
		status:   c.Query("status"),
		business: c.Query("businessId"),
		sortBy:   c.Query("sortBy"),
	}
	f.limit, _ = strconv.Atoi(c.Query("limit"))
	c.JSON(http.StatusOK, s.filterDeals(f))
}

func (s *Server) filterDeals(f dealFilter) []apiclient.Deal {
	if f.status == "" && f.business == "" {
		f.status = string(deal.StatusActive)
	}

	s.mu.Lock()
	out := make([]apiclient.Deal, 0, len(s.deals))
	for _, d := range s.deals {
		switch {
		case f.status != "" && d.Status != f.status:
			continue
		case f.business != "" && d.BusinessID.String() != f.business:
			continue
		case f.category != "" && !inCategory(d, f.category):
			continue
		case f.search != "" && !strings.Contains(strings.ToLower(d.Title), f.search) &&
			!strings.Contains(strings.ToLower(d.Description), f.search):
			continue
		}
		out = append(out, s.decorated(*d))
	}
	s.mu.Unlock()

	deal.SortBy(out, deal.NewSortKey(f.sortBy), facts)
	if f.limit > 0 && f.limit < len(out) {
		out = out[:f.limit]
	}
	return out
}

func inCategory(d *apiclient.Deal, category string) bool {
	return d.CategoryID != nil && d.CategoryID.String() == category ||
		d.CategorySlug != nil && *d.CategorySlug == category
}

func facts(d apiclient.Deal) deal.Facts {
	return deal.Facts{ID: d.ID, ViewCount: d.ViewCount, CreatedAt: d.CreatedAt, EndDate: d.EndDate, DiscountValue: d.DiscountValue}
}

func (s *Server) trending(c *gin.Context) {
	limit := 4
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = n
	}
	c.JSON(http.StatusOK, s.filterDeals(dealFilter{sortBy: string(deal.SortTrending), limit: limit}))
}

func (s *Server) dealParam(c *gin.Context) (*apiclient.Deal, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid id")
		return nil, false
	}
	d, ok := s.deals[id]
	if !ok {
		fail(c, http.StatusNotFound, "deal not found")
		return nil, false
	}
	return d, true
}

func (s *Server) getDeal(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dealParam(c)
	if !ok {
		return
	}
	d.ViewCount++
	c.JSON(http.StatusOK, s.decorated(*d))
}

// Cart

func (s *Server) listCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := slices.Clone(s.cart[uid(c)])
	slices.SortStableFunc(items, func(a, b *apiclient.CartItem) int { return b.AddedAt.Compare(a.AddedAt) })
	out := make([]apiclient.CartItem, 0, len(items))
	for _, it := range items {
		cp := *it
		if d, ok := s.deals[it.DealID]; ok {
			dd := s.decorated(*d)
			cp.Deal = &dd
		}
		out = append(out, cp)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addToCart(c *gin.Context) {
	var req apiclient.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DealID == uuid.Nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deals[req.DealID]; !ok {
		fail(c, http.StatusNotFound, "deal not found")
		return
	}
	user := uid(c)
	for _, it := range s.cart[user] {
		if it.DealID == req.DealID {
			it.AddedAt = s.Now()
			c.JSON(http.StatusCreated, apiclient.Created{ID: it.ID})
			return
		}
	}
	it := &apiclient.CartItem{ID: uuid.New(), DealID: req.DealID, Quantity: 1, AddedAt: s.Now()}
	s.cart[user] = append(s.cart[user], it)
	c.JSON(http.StatusCreated, apiclient.Created{ID: it.ID})
}

func (s *Server) updateCart(c *gin.Context) {
	var req apiclient.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		fail(c, http.StatusBadRequest, "quantity must be at least 1")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.cart[uid(c)] {
		if it.ID.String() == c.Param("id") {
			it.Quantity = req.Quantity
			c.Status(http.StatusNoContent)
			return
		}
	}
	fail(c, http.StatusNotFound, "cart item not found")
}

func (s *Server) removeFromCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := uid(c)
	before := len(s.cart[user])
	s.cart[user] = slices.DeleteFunc(s.cart[user], func(it *apiclient.CartItem) bool { return it.ID.String() == c.Param("id") })
	if len(s.cart[user]) == before {
		fail(c, http.StatusNotFound, "cart item not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) clearCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cart, uid(c))
	c.Status(http.StatusNoContent)
}

// Wishlist

func (s *Server) listWishlist(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]apiclient.WishlistItem, 0)
	for _, it := range s.wishlist[uid(c)] {
		out = append(out, *it)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addToWishlist(c *gin.Context) {
	var req apiclient.WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user := uid(c)
	for _, it := range s.wishlist[user] {
		if it.DealID == req.DealID {
			c.Status(http.StatusNoContent)
			return
		}
	}
	s.wishlist[user] = append(s.wishlist[user], &apiclient.WishlistItem{ID: uuid.New(), DealID: req.DealID, CreatedAt: s.Now()})
	c.Status(http.StatusNoContent)
}

func (s *Server) removeFromWishlist(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := uid(c)
	s.wishlist[user] = slices.DeleteFunc(s.wishlist[user], func(it *apiclient.WishlistItem) bool {
		return it.DealID.String() == c.Param("dealId")
	})
	c.Status(http.StatusNoContent)
}

// Claims

func (s *Server) myClaims(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]apiclient.Claim, 0)
	for i := len(s.claims) - 1; i >= 0; i-- {
		if s.claims[i].userID == uid(c) {
			out = append(out, s.claims[i].Claim)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) claim(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dealParam(c)
	if !ok {
		return
	}
	if !deal.Status(d.Status).Claimable() {
		fail(c, http.StatusConflict, claim.ErrDealNotClaimable.Error())
		return
	}
	if (deal.Scarcity{Total: d.TotalQuantity, Claimed: d.ClaimedCount}).SoldOut() {
		fail(c, http.StatusConflict, claim.ErrSoldOut.Error())
		return
	}
	code, err := claim.GenerateCode()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	d.ClaimedCount++
	row := &claimRow{userID: uid(c), Claim: apiclient.Claim{
		ID:            uuid.New(),
		DealID:        d.ID,
		Code:          code.String(),
		CreatedAt:     s.Now(),
		DealTitle:     d.Title,
		DiscountValue: d.DiscountValue,
		BusinessName:  d.BusinessName,
		EndDate:       d.EndDate,
		IsPerpetual:   d.IsPerpetual,
		ExpiryText:    deal.ExpiryText(d.EndDate, d.IsPerpetual, s.Now()),
	}}
	s.claims = append(s.claims, row)
	c.Header("Location", "/api/deal-claims/"+row.ID.String()+"/qr")
	c.JSON(http.StatusCreated, row.Claim)
}

func (s *Server) redeem(c *gin.Context) {
	code, err := claim.ParseCode(c.Param("code"))
	if err != nil {
		fail(c, http.StatusNotFound, "claim not found")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.claims {
		if row.Code != code.String() {
			continue
		}
		if row.IsRedeemed {
			fail(c, http.StatusConflict, claim.ErrAlreadyRedeemed.Error())
			return
		}
		now := s.Now()
		row.IsRedeemed = true
		row.RedeemedAt = &now
		c.JSON(http.StatusOK, apiclient.Redemption{ClaimID: row.ID, DealID: row.DealID, Code: row.Code, RedeemedAt: now})
		return
	}
	fail(c, http.StatusNotFound, "claim not found")
}

// Verifications

func (s *Server) verifications(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.verified[id]
	c.JSON(http.StatusOK, apiclient.Verifications{DealID: id, Count: len(users), VerifiedByMe: users[uid(c)]})
}

func (s *Server) verify(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dealParam(c)
	if !ok {
		return
	}
	if s.verified[d.ID] == nil {
		s.verified[d.ID] = map[uuid.UUID]bool{}
	}
	s.verified[d.ID][uid(c)] = true
	c.Status(http.StatusNoContent)
}

// Ratings

// RatingPageSize matches the server's default list limit.
const RatingPageSize = 20

// AddRating seeds a rating without going through the API.
func (s *Server) AddRating(r apiclient.Rating) apiclient.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.Now()
	}
	s.ratings = append(s.ratings, r)
	return r
}

// listRatings pages newest first; the cursor is the offset of the next page.
func (s *Server) listRatings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []apiclient.Rating
	for i := len(s.ratings) - 1; i >= 0; i-- {
		if s.ratings[i].BusinessID.String() == c.Param("id") {
			matched = append(matched, s.ratings[i])
		}
	}
	offset := 0
	if cur := c.Query("cursor"); cur != "" {
		n, err := strconv.Atoi(cur)
		if err != nil || n < 0 || n > len(matched) {
			fail(c, http.StatusBadRequest, "invalid cursor")
			return
		}
		offset = n
	}
	end := min(offset+RatingPageSize, len(matched))
	page := apiclient.RatingPage{Ratings: append([]apiclient.Rating{}, matched[offset:end]...)}
	if end < len(matched) {
		page.NextCursor = strconv.Itoa(end)
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) rate(c *gin.Context) {
	var req apiclient.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Score < 1 || req.Score > 5 {
		fail(c, http.StatusBadRequest, "score must be between 1 and 5")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := apiclient.Rating{ID: uuid.New(), UserID: uid(c), BusinessID: req.BusinessID, Score: req.Score, CreatedAt: s.Now()}
	if req.Comment != "" {
		r.Comment = &req.Comment
	}
	s.ratings = append(s.ratings, r)
	c.JSON(http.StatusCreated, apiclient.Created{ID: r.ID})
}
