package api

import (
	"net/http"

	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/pkg/qr"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const qrSize = 256

// ClaimObserver is satisfied by *middleware.Metrics.
type ClaimObserver interface {
	ObserveClaim(outcome string)
}

type ClaimHandler struct {
	commands commands.ClaimCommands
	queries  queries.ClaimQueries
	clock    Clock
	observer ClaimObserver
}

func NewClaimHandler(cmds commands.ClaimCommands, q queries.ClaimQueries, clk Clock, observer ClaimObserver) *ClaimHandler {
	return &ClaimHandler{commands: cmds, queries: q, clock: clk, observer: observer}
}

func claimOutcome(err error) string {
	switch {
	case err == nil:
		return "claimed"
	case errs.Is(err, commands.ErrSoldOut):
		return "sold_out"
	case errs.Is(err, commands.ErrDealNotClaimable):
		return "not_claimable"
	case errs.Is(err, errs.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// @Summary My claims
// @Tags claims
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ClaimResponse
// @Router /deal-claims/my [get]
func (h *ClaimHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	views, err := h.queries.ListMine(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromClaimViews(views, h.clock.Now()))
}

// @Summary Claim a deal
// @Description Issues a redemption code. Fails with 409 once the deal's cap is reached.
// @Tags claims
// @Security BearerAuth
// @Produce json
// @Param id path string true "Deal ID"
// @Success 201 {object} resdto.ClaimResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /deal-claims/{id} [post]
func (h *ClaimHandler) Claim(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	dealID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res, err := h.commands.Claim(ctx, userID, dealID)
	h.observer.ObserveClaim(claimOutcome(err))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.queries.GetMine(ctx, res.ClaimID, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/deal-claims/"+res.ClaimID.String()+"/qr")
	c.JSON(http.StatusCreated, resdto.FromClaimView(view, h.clock.Now()))
}

// @Summary Redeem a code
// @Description Marks the claim redeemed. Only the deal's business or an admin may redeem.
// @Tags claims
// @Security BearerAuth
// @Produce json
// @Param code path string true "Redemption code, dashes optional"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /deal-claims/redeem/{code} [post]
func (h *ClaimHandler) Redeem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	res, err := h.commands.Redeem(c.Request.Context(), actor, c.Param("code"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RedeemResponse{
		ClaimID:    res.ClaimID,
		DealID:     res.DealID,
		Code:       res.Code.String(),
		RedeemedAt: res.RedeemedAt,
	})
}

// @Summary Claim QR code
// @Tags claims
// @Security BearerAuth
// @Produce png
// @Param id path string true "Claim ID"
// @Success 200 {file} binary
// @Failure 404 {object} httperr.Response
// @Router /deal-claims/{id}/qr [get]
func (h *ClaimHandler) QR(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.queries.GetMine(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	png, err := qr.PNG(view.Code, qrSize)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
