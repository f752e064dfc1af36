package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

// ExpenseService provides application-level operations for the two atomic
// outflow records: employee salary payments and pix transfer fees
type ExpenseService struct {
	payments ledger.EmployeePaymentRepository
	pixFees  ledger.PixFeeRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(payments ledger.EmployeePaymentRepository, pixFees ledger.PixFeeRepository) *ExpenseService {
	return &ExpenseService{payments: payments, pixFees: pixFees}
}

// ===================== Employee Payment Operations =====================

// CreateEmployeePaymentRequest represents a request to record a salary payment
type CreateEmployeePaymentRequest struct {
	EmployeeID   uuid.UUID       `json:"employee_id" binding:"required"`
	EmployeeName string          `json:"employee_name"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate  ledger.Date     `json:"payment_date" binding:"required"`
	IsPaid       bool            `json:"is_paid"`
	Observations string          `json:"observations"`
}

// CreateEmployeePayment records a salary payment
func (s *ExpenseService) CreateEmployeePayment(ctx context.Context, req CreateEmployeePaymentRequest) (*ledger.EmployeePayment, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}

	payment := &ledger.EmployeePayment{
		BaseEntity:   shared.NewBaseEntity(),
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Amount:       req.Amount,
		PaymentDate:  req.PaymentDate,
		IsPaid:       req.IsPaid,
		Observations: req.Observations,
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetEmployeePaymentByID gets a salary payment by ID
func (s *ExpenseService) GetEmployeePaymentByID(ctx context.Context, id uuid.UUID) (*ledger.EmployeePayment, error) {
	return s.payments.FindByID(ctx, id)
}

// ListEmployeePayments lists salary payments matching the filter
func (s *ExpenseService) ListEmployeePayments(ctx context.Context, filter ledger.RecordFilter) ([]ledger.EmployeePayment, error) {
	return s.payments.FindAll(ctx, filter)
}

// DeleteEmployeePayment deletes a salary payment
func (s *ExpenseService) DeleteEmployeePayment(ctx context.Context, id uuid.UUID) error {
	return s.payments.Delete(ctx, id)
}

// ===================== Pix Fee Operations =====================

// CreatePixFeeRequest represents a request to record a pix transfer fee
type CreatePixFeeRequest struct {
	Date        ledger.Date     `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Bank        string          `json:"bank"`
}

// CreatePixFee records a pix transfer fee
func (s *ExpenseService) CreatePixFee(ctx context.Context, req CreatePixFeeRequest) (*ledger.PixFee, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "fee amount must be positive")
	}

	fee := &ledger.PixFee{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        req.Date,
		Amount:      req.Amount,
		Description: req.Description,
		Bank:        req.Bank,
	}

	if err := s.pixFees.Save(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

// GetPixFeeByID gets a pix fee by ID
func (s *ExpenseService) GetPixFeeByID(ctx context.Context, id uuid.UUID) (*ledger.PixFee, error) {
	return s.pixFees.FindByID(ctx, id)
}

// ListPixFees lists pix fees matching the filter
func (s *ExpenseService) ListPixFees(ctx context.Context, filter ledger.RecordFilter) ([]ledger.PixFee, error) {
	return s.pixFees.FindAll(ctx, filter)
}

// DeletePixFee deletes a pix fee
func (s *ExpenseService) DeletePixFee(ctx context.Context, id uuid.UUID) error {
	return s.pixFees.Delete(ctx, id)
}
