package api

import (
	"log/slog"
	"net/http"

	"local-deals/internal/domain/deal"
	reqdto "local-deals/internal/handler/dto/request"
	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DealHandler struct {
	commands commands.DealCommands
	queries  queries.DealQueries
	clock    Clock
}

func NewDealHandler(cmds commands.DealCommands, q queries.DealQueries, clk Clock) *DealHandler {
	return &DealHandler{commands: cmds, queries: q, clock: clk}
}

// toFilters accepts a category id or slug.
func toFilters(q reqdto.ListDealsQuery) queries.DealFilters {
	f := queries.DealFilters{
		Search: q.Search,
		SortBy: deal.SortKey(q.SortBy),
		Status: q.Status,
		Limit:  q.Limit,
	}
	if q.Category != "" {
		if id, err := uuid.Parse(q.Category); err == nil {
			f.CategoryID = &id
		} else {
			f.CategorySlug = q.Category
		}
	}
	if q.BusinessID != "" {
		if id, err := uuid.Parse(q.BusinessID); err == nil {
			f.BusinessID = &id
		}
	}
	return f
}

// @Summary List deals
// @Description Filters are AND-combined; status defaults to active.
// @Tags deals
// @Produce json
// @Param search query string false "Substring of title or description"
// @Param category query string false "Category id or slug"
// @Param sortBy query string false "newest, trending, ending-soon or discount"
// @Param status query string false "Deal status"
// @Param businessId query string false "Business ID"
// @Param limit query int false "Max results"
// @Success 200 {array} resdto.DealResponse
// @Failure 400 {object} httperr.Response
// @Router /deals [get]
func (h *DealHandler) List(c *gin.Context) {
	var q reqdto.ListDealsQuery
	if !bindQuery(c, &q) {
		return
	}
	views, err := h.queries.List(c.Request.Context(), toFilters(q))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDealViews(views, h.clock.Now()))
}

// @Summary Trending deals
// @Tags deals
// @Produce json
// @Param limit query int false "Max results (default 4)"
// @Success 200 {array} resdto.DealResponse
// @Router /deals/trending [get]
func (h *DealHandler) Trending(c *gin.Context) {
	var q reqdto.TrendingQuery
	if !bindQuery(c, &q) {
		return
	}
	views, err := h.queries.Trending(c.Request.Context(), q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDealViews(views, h.clock.Now()))
}

// @Summary Get a deal
// @Description Also counts a view.
// @Tags deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} resdto.DealResponse
// @Failure 404 {object} httperr.Response
// @Router /deals/{id} [get]
func (h *DealHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	view, err := h.queries.Get(ctx, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if err := h.commands.RecordView(ctx, id); err != nil {
		slog.WarnContext(ctx, "failed to record deal view", "deal_id", id, "error", err.Error())
	}
	c.JSON(http.StatusOK, resdto.FromDealView(view, h.clock.Now()))
}

// @Summary Categories
// @Tags deals
// @Produce json
// @Success 200 {array} resdto.CategoryResponse
// @Router /categories [get]
func (h *DealHandler) Categories(c *gin.Context) {
	views, err := h.queries.Categories(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryViews(views))
}

// @Summary Create a deal
// @Tags deals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateDealRequest true "Deal"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreateDealRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.commands.Create(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	created(c, "/api/deals/"+id.String(), id)
}

// @Summary Update a deal
// @Description Only the fields present are changed.
// @Tags deals
// @Security BearerAuth
// @Accept json
// @Param id path string true "Deal ID"
// @Param request body reqdto.UpdateDealRequest true "Changes"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /deals/{id} [put]
func (h *DealHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateDealRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.commands.Update(c.Request.Context(), actor, id, req.Apply); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete a deal
// @Tags deals
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /deals/{id} [delete]
func (h *DealHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.commands.Delete(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
