package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

// CheckService provides application-level check operations, including the
// clearing write path
type CheckService struct {
	checks ledger.CheckRepository
	cash   *CashService
}

// NewCheckService creates a new CheckService
func NewCheckService(checks ledger.CheckRepository, cash *CashService) *CheckService {
	return &CheckService{checks: checks, cash: cash}
}

// CreateCheckRequest represents a request to register a check
type CreateCheckRequest struct {
	Client            string          `json:"client" binding:"required"`
	Value             decimal.Decimal `json:"value" binding:"required"`
	DueDate           ledger.Date     `json:"due_date" binding:"required"`
	Status            string          `json:"status"`
	IsOwnCheck        bool            `json:"is_own_check"`
	SaleID            *uuid.UUID      `json:"sale_id"`
	DebtID            *uuid.UUID      `json:"debt_id"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	UsedFor           string          `json:"used_for"`
	IsCompanyPayable  bool            `json:"is_company_payable"`
	CompanyName       string          `json:"company_name"`
	Observations      string          `json:"observations"`
}

// UpdateCheckRequest represents a request to update a check
type UpdateCheckRequest struct {
	Client            string          `json:"client" binding:"required"`
	Value             decimal.Decimal `json:"value" binding:"required"`
	DueDate           ledger.Date     `json:"due_date" binding:"required"`
	Status            string          `json:"status"`
	IsOwnCheck        bool            `json:"is_own_check"`
	SaleID            *uuid.UUID      `json:"sale_id"`
	DebtID            *uuid.UUID      `json:"debt_id"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	UsedFor           string          `json:"used_for"`
	IsCompanyPayable  bool            `json:"is_company_payable"`
	CompanyName       string          `json:"company_name"`
	Observations      string          `json:"observations"`
}

// ClearCheckRequest represents a request to settle a check
type ClearCheckRequest struct {
	PaymentDate ledger.Date `json:"payment_date" binding:"required"`
}

// AnticipateCheckRequest represents a request to discount a check at the
// bank before its due date
type AnticipateCheckRequest struct {
	DiscountDate    ledger.Date     `json:"discount_date" binding:"required"`
	AnticipationFee decimal.Decimal `json:"anticipation_fee" binding:"required"`
}

// CreateCheck registers a new check
func (s *CheckService) CreateCheck(ctx context.Context, req CreateCheckRequest) (*ledger.Check, error) {
	status := ledger.CheckStatus(req.Status)
	if status == "" {
		status = ledger.CheckStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid check status: "+req.Status)
	}

	check := &ledger.Check{
		BaseEntity:        shared.NewBaseEntity(),
		Client:            req.Client,
		Value:             req.Value,
		DueDate:           req.DueDate,
		Status:            status,
		IsOwnCheck:        req.IsOwnCheck,
		SaleID:            req.SaleID,
		DebtID:            req.DebtID,
		InstallmentNumber: req.InstallmentNumber,
		TotalInstallments: req.TotalInstallments,
		UsedFor:           req.UsedFor,
		IsCompanyPayable:  req.IsCompanyPayable,
		CompanyName:       req.CompanyName,
		Observations:      req.Observations,
	}

	if err := s.checks.Save(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// GetCheckByID gets a check by ID
func (s *CheckService) GetCheckByID(ctx context.Context, id uuid.UUID) (*ledger.Check, error) {
	return s.checks.FindByID(ctx, id)
}

// ListChecks lists checks matching the filter
func (s *CheckService) ListChecks(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Check, error) {
	return s.checks.FindAll(ctx, filter)
}

// ListChecksByStatus lists checks with the given lifecycle status
func (s *CheckService) ListChecksByStatus(ctx context.Context, status ledger.CheckStatus) ([]ledger.Check, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid check status: "+status.String())
	}
	return s.checks.FindByStatus(ctx, status)
}

// UpdateCheck updates an existing check
func (s *CheckService) UpdateCheck(ctx context.Context, id uuid.UUID, req UpdateCheckRequest) (*ledger.Check, error) {
	check, err := s.checks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := ledger.CheckStatus(req.Status)
	if status == "" {
		status = check.Status
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid check status: "+req.Status)
	}

	check.Client = req.Client
	check.Value = req.Value
	check.DueDate = req.DueDate
	check.Status = status
	check.IsOwnCheck = req.IsOwnCheck
	check.SaleID = req.SaleID
	check.DebtID = req.DebtID
	check.InstallmentNumber = req.InstallmentNumber
	check.TotalInstallments = req.TotalInstallments
	check.UsedFor = req.UsedFor
	check.IsCompanyPayable = req.IsCompanyPayable
	check.CompanyName = req.CompanyName
	check.Observations = req.Observations

	if err := s.checks.Save(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// DeleteCheck deletes a check
func (s *CheckService) DeleteCheck(ctx context.Context, id uuid.UUID) error {
	return s.checks.Delete(ctx, id)
}

// MarkCheckCleared settles a check: the status moves to cleared, and the
// cash effect lands as a transaction plus a balance replacement. A payable
// check pays out its face value; a receivable collects its net value
// (face minus anticipation fee when discounted).
func (s *CheckService) MarkCheckCleared(ctx context.Context, id uuid.UUID, req ClearCheckRequest) (*ledger.Check, error) {
	check, err := s.checks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if check.Status == ledger.CheckStatusCleared {
		return nil, shared.ErrAlreadySettled
	}

	check.Status = ledger.CheckStatusCleared
	check.PaymentDate = req.PaymentDate

	if err := s.checks.Save(ctx, check); err != nil {
		return nil, err
	}

	direction := ledger.CashInflow
	amount := check.NetValue()
	description := "Check cleared: " + check.Client
	if check.IsPayable() {
		direction = ledger.CashOutflow
		amount = check.Value
		description = "Own check paid: " + holderName(check)
	}

	id = check.ID
	if err := s.cash.ApplyMovement(ctx, req.PaymentDate, direction, amount, description, ledger.CategoryCheck, &id); err != nil {
		return nil, err
	}
	return check, nil
}

// MarkCheckAnticipated registers a bank discount on a pending check. The
// net value enters cash on the discount date while the check keeps its
// original due date for reference.
func (s *CheckService) MarkCheckAnticipated(ctx context.Context, id uuid.UUID, req AnticipateCheckRequest) (*ledger.Check, error) {
	check, err := s.checks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if check.Status == ledger.CheckStatusCleared {
		return nil, shared.ErrAlreadySettled
	}
	if check.IsPayable() {
		return nil, shared.NewDomainError("INVALID_STATE", "payable checks cannot be anticipated")
	}
	if req.AnticipationFee.IsNegative() || req.AnticipationFee.GreaterThanOrEqual(check.Value) {
		return nil, shared.NewDomainError("INVALID_INPUT", "anticipation fee must be non-negative and below the check value")
	}

	check.Status = ledger.CheckStatusCleared
	check.IsAnticipated = true
	check.DiscountDate = req.DiscountDate
	check.AnticipationFee = req.AnticipationFee
	check.PaymentDate = req.DiscountDate

	if err := s.checks.Save(ctx, check); err != nil {
		return nil, err
	}

	id = check.ID
	description := "Check anticipated: " + check.Client
	if err := s.cash.ApplyMovement(ctx, req.DiscountDate, ledger.CashInflow, check.NetValue(), description, ledger.CategoryCheck, &id); err != nil {
		return nil, err
	}
	return check, nil
}

func holderName(check *ledger.Check) string {
	if check.CompanyName != "" {
		return check.CompanyName
	}
	return check.Client
}
