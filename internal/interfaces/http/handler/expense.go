package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/caixa/backend/internal/application/ledger"
)

// ExpenseHandler handles employee payment and pix fee API endpoints
type ExpenseHandler struct {
	BaseHandler
	service *ledgerapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *ledgerapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// ===================== Employee Payments =====================

// ListEmployeePayments handles GET /employee-payments
func (h *ExpenseHandler) ListEmployeePayments(c *gin.Context) {
	filter, err := parseRecordFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, err := h.service.ListEmployeePayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// GetEmployeePayment handles GET /employee-payments/:id
func (h *ExpenseHandler) GetEmployeePayment(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.GetEmployeePaymentByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// CreateEmployeePayment handles POST /employee-payments
func (h *ExpenseHandler) CreateEmployeePayment(c *gin.Context) {
	var req ledgerapp.CreateEmployeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.CreateEmployeePayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// DeleteEmployeePayment handles DELETE /employee-payments/:id
func (h *ExpenseHandler) DeleteEmployeePayment(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteEmployeePayment(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ===================== Pix Fees =====================

// ListPixFees handles GET /pix-fees
func (h *ExpenseHandler) ListPixFees(c *gin.Context) {
	filter, err := parseRecordFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fees, err := h.service.ListPixFees(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fees)
}

// GetPixFee handles GET /pix-fees/:id
func (h *ExpenseHandler) GetPixFee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fee, err := h.service.GetPixFeeByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fee)
}

// CreatePixFee handles POST /pix-fees
func (h *ExpenseHandler) CreatePixFee(c *gin.Context) {
	var req ledgerapp.CreatePixFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fee, err := h.service.CreatePixFee(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, fee)
}

// DeletePixFee handles DELETE /pix-fees/:id
func (h *ExpenseHandler) DeletePixFee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeletePixFee(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers employee payment and pix fee routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/employee-payments")
	{
		payments.GET("", h.ListEmployeePayments)
		payments.GET("/:id", h.GetEmployeePayment)
		payments.POST("", h.CreateEmployeePayment)
		payments.DELETE("/:id", h.DeleteEmployeePayment)
	}

	fees := rg.Group("/pix-fees")
	{
		fees.GET("", h.ListPixFees)
		fees.GET("/:id", h.GetPixFee)
		fees.POST("", h.CreatePixFee)
		fees.DELETE("/:id", h.DeletePixFee)
	}
}
