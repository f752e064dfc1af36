package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

// CashService owns the cash write path. Every cash-affecting action appends
// a transaction and replaces the stored balance with the new value whole;
// readers then take the balance at face value.
type CashService struct {
	cash ledger.CashRepository
}

// NewCashService creates a new CashService
func NewCashService(cash ledger.CashRepository) *CashService {
	return &CashService{cash: cash}
}

// RecordTransactionRequest represents a request to record a cash movement
type RecordTransactionRequest struct {
	Date        ledger.Date     `json:"date" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	RelatedID   *uuid.UUID      `json:"related_id"`
}

// SetInitialBalanceRequest represents a request to reset the opening balance
type SetInitialBalanceRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
	InitialDate    ledger.Date     `json:"initial_date" binding:"required"`
}

// RecordTransaction records a manual cash movement and rolls it into the
// stored balance
func (s *CashService) RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*ledger.CashTransaction, error) {
	direction := ledger.CashFlowDirection(req.Type)
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "cash transaction type must be 'inflow' or 'outflow'")
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "cash transaction amount must be positive")
	}

	tx := &ledger.CashTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        req.Date,
		Type:        direction,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		RelatedID:   req.RelatedID,
	}

	if err := s.cash.SaveTransaction(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.shiftBalance(ctx, tx.SignedAmount()); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetTransactionByID gets a cash transaction by ID
func (s *CashService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*ledger.CashTransaction, error) {
	return s.cash.FindTransactionByID(ctx, id)
}

// ListTransactions lists cash transactions matching the filter
func (s *CashService) ListTransactions(ctx context.Context, filter ledger.RecordFilter) ([]ledger.CashTransaction, error) {
	return s.cash.FindTransactions(ctx, filter)
}

// DeleteTransaction removes a cash transaction and backs its effect out of
// the stored balance
func (s *CashService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tx, err := s.cash.FindTransactionByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.cash.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	return s.shiftBalance(ctx, tx.SignedAmount().Neg())
}

// GetBalance returns the stored balance singleton
func (s *CashService) GetBalance(ctx context.Context) (*ledger.CashBalance, error) {
	return s.cash.GetBalance(ctx)
}

// SetInitialBalance resets the opening balance and rebuilds the current
// balance as opening plus the recorded transaction history. This is the one
// write that rederives; from here on the balance only moves by replacement.
func (s *CashService) SetInitialBalance(ctx context.Context, req SetInitialBalanceRequest) (*ledger.CashBalance, error) {
	balance, err := s.cash.GetBalance(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := s.cash.FindTransactions(ctx, ledger.RecordFilter{})
	if err != nil {
		return nil, err
	}

	balance.InitialBalance = req.InitialBalance
	balance.InitialDate = req.InitialDate
	balance.CurrentBalance = req.InitialBalance.Add(ledger.SumTransactions(transactions))
	balance.LastUpdated = time.Now()

	if err := s.cash.ReplaceBalance(ctx, balance); err != nil {
		return nil, err
	}
	return balance, nil
}

// ApplyMovement records a system-generated cash movement tied to a source
// record, e.g. a check or boleto settling. Settlement paths share this so
// the transaction log and the balance always move together.
func (s *CashService) ApplyMovement(ctx context.Context, date ledger.Date, direction ledger.CashFlowDirection, amount decimal.Decimal, description, category string, relatedID *uuid.UUID) error {
	if !amount.IsPositive() {
		return nil
	}

	tx := &ledger.CashTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		Type:        direction,
		Amount:      amount,
		Description: description,
		Category:    category,
		RelatedID:   relatedID,
	}

	if err := s.cash.SaveTransaction(ctx, tx); err != nil {
		return err
	}
	return s.shiftBalance(ctx, tx.SignedAmount())
}

func (s *CashService) shiftBalance(ctx context.Context, delta decimal.Decimal) error {
	balance, err := s.cash.GetBalance(ctx)
	if err != nil {
		return err
	}
	balance.CurrentBalance = balance.CurrentBalance.Add(delta)
	balance.LastUpdated = time.Now()
	return s.cash.ReplaceBalance(ctx, balance)
}
