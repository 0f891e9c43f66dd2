package api

import (
	"net/http"

	reqdto "local-deals/internal/handler/dto/request"
	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/pkg/config"
	"local-deals/internal/pkg/cookie"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	commands  commands.BusinessCommands
	queries   queries.BusinessQueries
	cookies   config.CookieConfig
	lifetimes TokenLifetimes
}

func NewBusinessHandler(cmds commands.BusinessCommands, q queries.BusinessQueries, cookies config.CookieConfig, lifetimes TokenLifetimes) *BusinessHandler {
	return &BusinessHandler{commands: cmds, queries: q, cookies: cookies, lifetimes: lifetimes}
}

// @Summary Register a business
// @Description Creates the caller's business. A customer is promoted and receives a new token pair.
// @Tags business
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBusinessRequest true "Business profile"
// @Success 201 {object} resdto.BusinessRegistrationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /business [post]
func (h *BusinessHandler) Register(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	res, err := h.commands.Register(ctx, userID, req.ToProfile())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.queries.GetByID(ctx, res.BusinessID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	body := resdto.BusinessRegistrationResponse{Business: resdto.FromBusinessView(view)}
	if res.TokenPair != nil {
		cookie.SetTokenCookies(c, h.cookies, res.TokenPair.AccessToken, res.TokenPair.RefreshToken,
			h.lifetimes.AccessDuration(), h.lifetimes.RefreshDuration())
		body.Token = res.TokenPair.AccessToken
		body.RefreshToken = res.TokenPair.RefreshToken
		body.User = resdto.FromUserView(res.User)
	}
	c.Header("Location", "/api/businesses/"+res.BusinessID.String())
	c.JSON(http.StatusCreated, body)
}

// @Summary My business
// @Tags business
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.BusinessResponse
// @Failure 404 {object} httperr.Response
// @Router /business/me [get]
func (h *BusinessHandler) Mine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := h.queries.GetMine(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBusinessView(view))
}

// @Summary Get a business
// @Tags business
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} resdto.BusinessResponse
// @Failure 404 {object} httperr.Response
// @Router /businesses/{id} [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBusinessView(view))
}

// @Summary List businesses for review
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Success 200 {array} resdto.BusinessResponse
// @Router /admin/businesses [get]
func (h *BusinessHandler) ListForReview(c *gin.Context) {
	var q reqdto.ListByStatusQuery
	if !bindQuery(c, &q) {
		return
	}
	views, err := h.queries.ListForReview(c.Request.Context(), q.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBusinessViews(views))
}

// @Summary Set verification status
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Business ID"
// @Param request body reqdto.UpdateVerificationRequest true "Status"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/businesses/{id} [patch]
func (h *BusinessHandler) SetVerification(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateVerificationRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.commands.SetVerificationStatus(c.Request.Context(), id, req.Status); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
