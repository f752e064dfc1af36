package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/caixa/backend/internal/application/ledger"
	"github.com/caixa/backend/internal/domain/ledger"
)

// BoletoHandler handles boleto API endpoints, including the clearing
// write path
type BoletoHandler struct {
	BaseHandler
	service *ledgerapp.BoletoService
}

// NewBoletoHandler creates a new BoletoHandler
func NewBoletoHandler(service *ledgerapp.BoletoService) *BoletoHandler {
	return &BoletoHandler{service: service}
}

// ListBoletos handles GET /boletos. An optional status query narrows the
// result to one lifecycle state.
func (h *BoletoHandler) ListBoletos(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		boletos, err := h.service.ListBoletosByStatus(c.Request.Context(), ledger.BoletoStatus(status))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, boletos)
		return
	}

	filter, err := parseRecordFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	boletos, err := h.service.ListBoletos(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, boletos)
}

// GetBoleto handles GET /boletos/:id
func (h *BoletoHandler) GetBoleto(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	boleto, err := h.service.GetBoletoByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, boleto)
}

// CreateBoleto handles POST /boletos
func (h *BoletoHandler) CreateBoleto(c *gin.Context) {
	var req ledgerapp.CreateBoletoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	boleto, err := h.service.CreateBoleto(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, boleto)
}

// UpdateBoleto handles PUT /boletos/:id
func (h *BoletoHandler) UpdateBoleto(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ledgerapp.UpdateBoletoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	boleto, err := h.service.UpdateBoleto(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, boleto)
}

// DeleteBoleto handles DELETE /boletos/:id
func (h *BoletoHandler) DeleteBoleto(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteBoleto(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ClearBoleto handles POST /boletos/:id/clear
func (h *BoletoHandler) ClearBoleto(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ledgerapp.ClearBoletoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	boleto, err := h.service.MarkBoletoCleared(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, boleto)
}

// RegisterRoutes registers all boleto routes
func (h *BoletoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	boletos := rg.Group("/boletos")
	{
		boletos.GET("", h.ListBoletos)
		boletos.GET("/:id", h.GetBoleto)
		boletos.POST("", h.CreateBoleto)
		boletos.PUT("/:id", h.UpdateBoleto)
		boletos.DELETE("/:id", h.DeleteBoleto)
		boletos.POST("/:id/clear", h.ClearBoleto)
	}
}
