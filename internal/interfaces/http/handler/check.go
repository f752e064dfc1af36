package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/caixa/backend/internal/domain/ledger"
)

// CheckHandler handles check API endpoints, including the clearing and
// anticipation write paths
type CheckHandler struct {
	BaseHandler
	service *ledgerapp.CheckService
}

// NewCheckHandler creates a new CheckHandler
func NewCheckHandler(service *ledgerapp.CheckService) *CheckHandler {
	return &CheckHandler{service: service}
}

// ListChecks handles GET /checks. An optional status query narrows the
// result to one lifecycle state.
func (h *CheckHandler) ListChecks(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		checks, err := h.service.ListChecksByStatus(c.Request.Context(), ledger.CheckStatus(status))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, checks)
		return
	}

	filter, err := parseRecordFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	checks, err := h.service.ListChecks(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checks)
}

// GetCheck handles GET /checks/:id
func (h *CheckHandler) GetCheck(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.GetCheckByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// CreateCheck handles POST /checks
func (h *CheckHandler) CreateCheck(c *gin.Context) {
	var req ledgerapp.CreateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.CreateCheck(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, check)
}

// UpdateCheck handles PUT /checks/:id
func (h *CheckHandler) UpdateCheck(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ledgerapp.UpdateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.UpdateCheck(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// DeleteCheck handles DELETE /checks/:id
func (h *CheckHandler) DeleteCheck(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteCheck(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ClearCheck handles POST /checks/:id/clear
func (h *CheckHandler) ClearCheck(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ledgerapp.ClearCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.MarkCheckCleared(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// AnticipateCheck handles POST /checks/:id/anticipate
func (h *CheckHandler) AnticipateCheck(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ledgerapp.AnticipateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.MarkCheckAnticipated(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// RegisterRoutes registers all check routes
func (h *CheckHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checks := rg.Group("/checks")
	{
		checks.GET("", h.ListChecks)
		checks.GET("/:id", h.GetCheck)
		checks.POST("", h.CreateCheck)
		checks.PUT("/:id", h.UpdateCheck)
		checks.DELETE("/:id", h.DeleteCheck)
		checks.POST("/:id/clear", h.ClearCheck)
		checks.POST("/:id/anticipate", h.AnticipateCheck)
	}
}
