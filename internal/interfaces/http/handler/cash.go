package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/caixa/backend/internal/application/ledger"
)

// CashHandler handles cash balance and transaction API endpoints
type CashHandler struct {
	BaseHandler
	service    *ledgerapp.CashService
	projection *ledgerapp.ProjectionService
}

// NewCashHandler creates a new CashHandler
func NewCashHandler(service *ledgerapp.CashService, projection *ledgerapp.ProjectionService) *CashHandler {
	return &CashHandler{service: service, projection: projection}
}

// GetBalance handles GET /cash/balance
func (h *CashHandler) GetBalance(c *gin.Context) {
	balance, err := h.projection.GetCashPosition(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// SetInitialBalance handles PUT /cash/balance
func (h *CashHandler) SetInitialBalance(c *gin.Context) {
	var req ledgerapp.SetInitialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	balance, err := h.service.SetInitialBalance(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// PreviewBalance handles GET /cash/preview
func (h *CashHandler) PreviewBalance(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	preview, err := h.projection.PreviewCash(c.Request.Context(), r)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// ListTransactions handles GET /cash/transactions
func (h *CashHandler) ListTransactions(c *gin.Context) {
	filter, err := parseRecordFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transactions, err := h.service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transactions)
}

// RecordTransaction handles POST /cash/transactions
func (h *CashHandler) RecordTransaction(c *gin.Context) {
	var req ledgerapp.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.service.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// DeleteTransaction handles DELETE /cash/transactions/:id
func (h *CashHandler) DeleteTransaction(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all cash routes
func (h *CashHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cash := rg.Group("/cash")
	{
		cash.GET("/balance", h.GetBalance)
		cash.PUT("/balance", h.SetInitialBalance)
		cash.GET("/preview", h.PreviewBalance)
		cash.GET("/transactions", h.ListTransactions)
		cash.POST("/transactions", h.RecordTransaction)
		cash.DELETE("/transactions/:id", h.DeleteTransaction)
	}
}
