package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/caixa/backend/internal/application/ledger"
)

// DebtHandler handles debt API endpoints
type DebtHandler struct {
	BaseHandler
	service *ledgerapp.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(service *ledgerapp.DebtService) *DebtHandler {
	return &DebtHandler{service: service}
}

// ListDebts handles GET /debts
func (h *DebtHandler) ListDebts(c *gin.Context) {
	filter, err := parseRecordFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	debts, err := h.service.ListDebts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debts)
}

// ListUnpaidDebts handles GET /debts/unpaid
func (h *DebtHandler) ListUnpaidDebts(c *gin.Context) {
	debts, err := h.service.ListUnpaidDebts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debts)
}

// GetDebt handles GET /debts/:id
func (h *DebtHandler) GetDebt(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	debt, err := h.service.GetDebtByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debt)
}

// CreateDebt handles POST /debts
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req ledgerapp.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	debt, err := h.service.CreateDebt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, debt)
}

// UpdateDebt handles PUT /debts/:id
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ledgerapp.UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	debt, err := h.service.UpdateDebt(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debt)
}

// DeleteDebt handles DELETE /debts/:id
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteDebt(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all debt routes
func (h *DebtHandler) RegisterRoutes(rg *gin.RouterGroup) {
	debts := rg.Group("/debts")
	{
		debts.GET("", h.ListDebts)
		debts.GET("/unpaid", h.ListUnpaidDebts)
		debts.GET("/:id", h.GetDebt)
		debts.POST("", h.CreateDebt)
		debts.PUT("/:id", h.UpdateDebt)
		debts.DELETE("/:id", h.DeleteDebt)
	}
}
