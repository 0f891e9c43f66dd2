//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"local-deals/internal/domain/user"
	"local-deals/internal/handler/api"
	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"
	"local-deals/tests/common/builder"
	"local-deals/tests/common/httptest"
	commandsmock "local-deals/tests/mock/commands"
	queriesmock "local-deals/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	cartCommands     *commandsmock.MockCartCommands
	cartQueries      *queriesmock.MockCartQueries
	wishlistCommands *commandsmock.MockWishlistCommands
	wishlistQueries  *queriesmock.MockWishlistQueries
	userID           uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.cartCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.cartQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.wishlistCommands = commandsmock.NewMockWishlistCommands(s.mockCtrl)
	s.wishlistQueries = queriesmock.NewMockWishlistQueries(s.mockCtrl)
	clk := clock.NewMockClock(fixedNow)
	cart := api.NewCartHandler(s.cartCommands, s.cartQueries, clk)
	wishlist := api.NewWishlistHandler(s.wishlistCommands, s.wishlistQueries, clk)
	s.userID = uuid.New()

	auth := asUser(s.userID, user.RoleCustomer)
	s.router.GET("/cart", auth, cart.List)
	s.router.POST("/cart", auth, cart.Add)
	s.router.DELETE("/cart/clear", auth, cart.Clear)
	s.router.PUT("/cart/:id", auth, cart.UpdateQuantity)
	s.router.DELETE("/cart/:id", auth, cart.Remove)
	s.router.GET("/wishlist", auth, wishlist.List)
	s.router.POST("/wishlist", auth, wishlist.Add)
	s.router.DELETE("/wishlist/:dealId", auth, wishlist.Remove)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) TestCart() {
	dealView := builder.NewDealBuilder().BuildView()

	s.Run("正常系: 一覧に案件の詳細を含める", func() {
		s.cartQueries.EXPECT().List(gomock.Any(), s.userID).Return([]*queries.CartItemView{
			{ID: uuid.New(), DealID: dealView.ID, Quantity: 1, AddedAt: fixedNow, Deal: *dealView},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "bearer-token")

		var response []resdto.CartItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal(dealView.Title, response[0].Deal.Title)
	})

	s.Run("正常系: 追加は201", func() {
		itemID := uuid.New()
		s.cartCommands.EXPECT().Add(gomock.Any(), s.userID, dealView.ID).Return(itemID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart", map[string]any{"deal_id": dealView.ID, "quantity": 3}, "bearer-token")

		var response resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(itemID, response.ID)
	})

	s.Run("異常系: deal_idなしは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart", map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("正常系: 数量変更は204", func() {
		itemID := uuid.New()
		s.cartCommands.EXPECT().UpdateQuantity(gomock.Any(), s.userID, itemID, 2).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/cart/"+itemID.String(), map[string]any{"quantity": 2}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("異常系: 数量0は400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/cart/"+uuid.NewString(), map[string]any{"quantity": 0}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("異常系: 他人のアイテム削除は404", func() {
		itemID := uuid.New()
		s.cartCommands.EXPECT().Remove(gomock.Any(), s.userID, itemID).Return(commands.ErrCartItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/"+itemID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "cart item not found")
	})

	s.Run("正常系: クリアは204", func() {
		s.cartCommands.EXPECT().Clear(gomock.Any(), s.userID).Return(int64(3), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/clear", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("異常系: 未認証は401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *CartHandlerTestSuite) TestWishlist() {
	dealView := builder.NewDealBuilder().BuildView()

	s.Run("正常系: 一覧", func() {
		s.wishlistQueries.EXPECT().List(gomock.Any(), s.userID).Return([]*queries.WishlistItemView{
			{ID: uuid.New(), DealID: dealView.ID, CreatedAt: fixedNow, Deal: *dealView},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wishlist", nil, "bearer-token")

		var response []resdto.WishlistItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("正常系: 保存は204", func() {
		s.wishlistCommands.EXPECT().Add(gomock.Any(), s.userID, dealView.ID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/wishlist", map[string]any{"deal_id": dealView.ID}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("正常系: 削除は204", func() {
		s.wishlistCommands.EXPECT().Remove(gomock.Any(), s.userID, dealView.ID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/wishlist/"+dealView.ID.String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("異常系: 不正なIDは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/wishlist/xyz", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid dealId")
	})
}
