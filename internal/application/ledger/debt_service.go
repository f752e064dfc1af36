package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

// DebtService provides application-level debt operations
type DebtService struct {
	debts ledger.DebtRepository
}

// NewDebtService creates a new DebtService
func NewDebtService(debts ledger.DebtRepository) *DebtService {
	return &DebtService{debts: debts}
}

// CreateDebtRequest represents a request to create a debt
type CreateDebtRequest struct {
	Company        string                `json:"company" binding:"required"`
	Description    string                `json:"description"`
	Date           ledger.Date           `json:"date" binding:"required"`
	TotalValue     decimal.Decimal       `json:"total_value" binding:"required"`
	PaymentMethods ledger.PaymentMethods `json:"payment_methods"`
	IsPaid         bool                  `json:"is_paid"`
	PaidAmount     decimal.Decimal       `json:"paid_amount"`
	PendingAmount  decimal.Decimal       `json:"pending_amount"`
	ChecksUsed     []uuid.UUID           `json:"checks_used"`
}

// UpdateDebtRequest represents a request to update a debt
type UpdateDebtRequest struct {
	Company        string                `json:"company" binding:"required"`
	Description    string                `json:"description"`
	Date           ledger.Date           `json:"date" binding:"required"`
	TotalValue     decimal.Decimal       `json:"total_value" binding:"required"`
	PaymentMethods ledger.PaymentMethods `json:"payment_methods"`
	IsPaid         bool                  `json:"is_paid"`
	PaidAmount     decimal.Decimal       `json:"paid_amount"`
	PendingAmount  decimal.Decimal       `json:"pending_amount"`
	ChecksUsed     []uuid.UUID           `json:"checks_used"`
}

// CreateDebt creates a new debt record
func (s *DebtService) CreateDebt(ctx context.Context, req CreateDebtRequest) (*ledger.Debt, error) {
	if err := validateMethods(req.PaymentMethods); err != nil {
		return nil, err
	}

	debt := &ledger.Debt{
		BaseEntity:     shared.NewBaseEntity(),
		Company:        req.Company,
		Description:    req.Description,
		Date:           req.Date,
		TotalValue:     req.TotalValue,
		PaymentMethods: req.PaymentMethods,
		IsPaid:         req.IsPaid,
		PaidAmount:     req.PaidAmount,
		PendingAmount:  req.PendingAmount,
		ChecksUsed:     req.ChecksUsed,
	}

	if err := s.debts.Save(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// GetDebtByID gets a debt by ID
func (s *DebtService) GetDebtByID(ctx context.Context, id uuid.UUID) (*ledger.Debt, error) {
	return s.debts.FindByID(ctx, id)
}

// ListDebts lists debts matching the filter
func (s *DebtService) ListDebts(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Debt, error) {
	return s.debts.FindAll(ctx, filter)
}

// ListUnpaidDebts lists debts not yet fully paid
func (s *DebtService) ListUnpaidDebts(ctx context.Context) ([]ledger.Debt, error) {
	return s.debts.FindUnpaid(ctx)
}

// UpdateDebt updates an existing debt record
func (s *DebtService) UpdateDebt(ctx context.Context, id uuid.UUID, req UpdateDebtRequest) (*ledger.Debt, error) {
	debt, err := s.debts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateMethods(req.PaymentMethods); err != nil {
		return nil, err
	}

	debt.Company = req.Company
	debt.Description = req.Description
	debt.Date = req.Date
	debt.TotalValue = req.TotalValue
	debt.PaymentMethods = req.PaymentMethods
	debt.IsPaid = req.IsPaid
	debt.PaidAmount = req.PaidAmount
	debt.PendingAmount = req.PendingAmount
	debt.ChecksUsed = req.ChecksUsed

	if err := s.debts.Save(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// DeleteDebt deletes a debt record
func (s *DebtService) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	return s.debts.Delete(ctx, id)
}
