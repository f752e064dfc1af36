package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/caixa/backend/internal/domain/ledger"
)

// ReportHandler handles projection read endpoints: period summaries, the
// month calendar, schedules and snapshot counts
type ReportHandler struct {
	BaseHandler
	projection *ledgerapp.ProjectionService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(projection *ledgerapp.ProjectionService) *ReportHandler {
	return &ReportHandler{projection: projection}
}

// GetSummary handles GET /reports/summary
func (h *ReportHandler) GetSummary(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.projection.GetPeriodSummary(c.Request.Context(), r)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetCalendar handles GET /calendar/:month
func (h *ReportHandler) GetCalendar(c *gin.Context) {
	ym, err := parseMonthParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	grid, err := h.projection.GetMonthGrid(c.Request.Context(), ym)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grid)
}

// GetReceivables handles GET /receivables
func (h *ReportHandler) GetReceivables(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	events, err := h.projection.ListReceivables(c.Request.Context(), r)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// GetPayables handles GET /payables
func (h *ReportHandler) GetPayables(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	events, err := h.projection.ListPayables(c.Request.Context(), r)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// GetCounts handles GET /reports/counts
func (h *ReportHandler) GetCounts(c *gin.Context) {
	counts, err := h.projection.CountRecords(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// DiffCounts handles POST /reports/counts/diff. The body carries the counts
// a client captured earlier; the response reports per-type additions since
// then, clamped at zero.
func (h *ReportHandler) DiffCounts(c *gin.Context) {
	var previous ledger.RecordCounts
	if err := c.ShouldBindJSON(&previous); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	diff, err := h.projection.DiffCounts(c.Request.Context(), previous)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, diff)
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.GetSummary)
		reports.GET("/counts", h.GetCounts)
		reports.POST("/counts/diff", h.DiffCounts)
	}

	rg.GET("/calendar/:month", h.GetCalendar)
	rg.GET("/receivables", h.GetReceivables)
	rg.GET("/payables", h.GetPayables)
}
