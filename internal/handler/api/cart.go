package api

import (
	"net/http"

	reqdto "local-deals/internal/handler/dto/request"
	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	commands commands.CartCommands
	queries  queries.CartQueries
	clock    Clock
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries, clk Clock) *CartHandler {
	return &CartHandler{commands: cmds, queries: q, clock: clk}
}

// @Summary My cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.CartItemResponse
// @Router /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	items, err := h.queries.List(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartItems(items, h.clock.Now()))
}

// @Summary Add to cart
// @Description Adding a deal already in the cart keeps a single line.
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.AddToCartRequest true "Deal"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 404 {object} httperr.Response
// @Router /cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.commands.Add(c.Request.Context(), userID, req.DealID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	created(c, "/api/cart/"+id.String(), id)
}

// @Summary Change quantity
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Param id path string true "Cart item ID"
// @Param request body reqdto.UpdateCartQuantityRequest true "Quantity"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /cart/{id} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateCartQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.commands.UpdateQuantity(c.Request.Context(), userID, id, req.Quantity); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove from cart
// @Tags cart
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /cart/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.commands.Remove(c.Request.Context(), userID, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Clear cart
// @Tags cart
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /cart/clear [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, err := h.commands.Clear(c.Request.Context(), userID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type WishlistHandler struct {
	commands commands.WishlistCommands
	queries  queries.WishlistQueries
	clock    Clock
}

func NewWishlistHandler(cmds commands.WishlistCommands, q queries.WishlistQueries, clk Clock) *WishlistHandler {
	return &WishlistHandler{commands: cmds, queries: q, clock: clk}
}

// @Summary My saved deals
// @Tags wishlist
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.WishlistItemResponse
// @Router /wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	items, err := h.queries.List(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWishlistItems(items, h.clock.Now()))
}

// @Summary Save a deal
// @Description Saving twice is a no-op.
// @Tags wishlist
// @Security BearerAuth
// @Accept json
// @Param request body reqdto.AddToWishlistRequest true "Deal"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /wishlist [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.AddToWishlistRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.commands.Add(c.Request.Context(), userID, req.DealID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Unsave a deal
// @Tags wishlist
// @Security BearerAuth
// @Param dealId path string true "Deal ID"
// @Success 204 "No Content"
// @Router /wishlist/{dealId} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	dealID, ok := uuidParam(c, "dealId")
	if !ok {
		return
	}
	if err := h.commands.Remove(c.Request.Context(), userID, dealID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
