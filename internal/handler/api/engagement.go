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

type VerificationHandler struct {
	commands commands.VerificationCommands
	queries  queries.VerificationQueries
}

func NewVerificationHandler(cmds commands.VerificationCommands, q queries.VerificationQueries) *VerificationHandler {
	return &VerificationHandler{commands: cmds, queries: q}
}

// @Summary Deal verifications
// @Description verified_by_me is false for anonymous callers.
// @Tags verifications
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} resdto.VerificationResponse
// @Router /deals/{id}/verifications [get]
func (h *VerificationHandler) Summary(c *gin.Context) {
	dealID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	sum, err := h.queries.Summary(c.Request.Context(), dealID, viewerID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerificationSummary(sum))
}

// @Summary Verify a deal
// @Description Attests that the deal is real. Repeating is a no-op.
// @Tags verifications
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /deals/{id}/verify [post]
func (h *VerificationHandler) Verify(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	dealID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.commands.Verify(c.Request.Context(), userID, dealID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type RatingHandler struct {
	commands commands.RatingCommands
	queries  queries.RatingQueries
}

func NewRatingHandler(cmds commands.RatingCommands, q queries.RatingQueries) *RatingHandler {
	return &RatingHandler{commands: cmds, queries: q}
}

// @Summary Business ratings
// @Description Newest first, keyset paginated.
// @Tags ratings
// @Produce json
// @Param id path string true "Business ID"
// @Param cursor query string false "Cursor from next_cursor"
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} resdto.RatingListResponse
// @Failure 422 {object} httperr.Response
// @Router /ratings/business/{id} [get]
func (h *RatingHandler) ListByBusiness(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.ListRatingsQuery
	if !bindQuery(c, &q) {
		return
	}

	var cursor *queries.Cursor
	if q.Cursor != "" {
		cursor = &queries.Cursor{After: q.Cursor}
	}
	views, next, err := h.queries.ListByBusiness(c.Request.Context(), businessID, cursor, q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRatingViews(views, next))
}

// @Summary Rating summary
// @Tags ratings
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} resdto.RatingSummaryResponse
// @Router /ratings/business/{id}/summary [get]
func (h *RatingHandler) Summary(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	sum, err := h.queries.Summary(c.Request.Context(), businessID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRatingSummary(sum))
}

// @Summary Rate a business
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateRatingRequest true "Rating"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /ratings [post]
func (h *RatingHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.commands.Submit(c.Request.Context(), userID, req.BusinessID, req.Score, req.Comment)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	created(c, "/api/ratings/business/"+req.BusinessID.String(), id)
}

type ReportHandler struct {
	commands commands.ReportCommands
	queries  queries.ReportQueries
}

func NewReportHandler(cmds commands.ReportCommands, q queries.ReportQueries) *ReportHandler {
	return &ReportHandler{commands: cmds, queries: q}
}

// @Summary Report a deal
// @Tags reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param request body reqdto.CreateReportRequest true "Reason"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 404 {object} httperr.Response
// @Router /deals/{id}/report [post]
func (h *ReportHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	dealID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateReportRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.commands.Create(c.Request.Context(), userID, dealID, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	created(c, "/api/admin/reports/"+id.String(), id)
}

// @Summary List reports
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "open, resolved or dismissed"
// @Success 200 {array} resdto.ReportResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	var q reqdto.ListByStatusQuery
	if !bindQuery(c, &q) {
		return
	}
	views, err := h.queries.List(c.Request.Context(), q.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReportViews(views))
}

// @Summary Resolve or dismiss a report
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Report ID"
// @Param request body reqdto.UpdateReportRequest true "Status"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/reports/{id} [patch]
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateReportRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.commands.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
