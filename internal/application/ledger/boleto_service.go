package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

// BoletoService provides application-level boleto operations, including the
// clearing write path
type BoletoService struct {
	boletos ledger.BoletoRepository
	cash    *CashService
}

// NewBoletoService creates a new BoletoService
func NewBoletoService(boletos ledger.BoletoRepository, cash *CashService) *BoletoService {
	return &BoletoService{boletos: boletos, cash: cash}
}

// CreateBoletoRequest represents a request to register a boleto
type CreateBoletoRequest struct {
	Client            string          `json:"client" binding:"required"`
	Value             decimal.Decimal `json:"value" binding:"required"`
	DueDate           ledger.Date     `json:"due_date" binding:"required"`
	Status            string          `json:"status"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	SaleID            *uuid.UUID      `json:"sale_id"`
	DebtID            *uuid.UUID      `json:"debt_id"`
	IsCompanyPayable  bool            `json:"is_company_payable"`
	CompanyName       string          `json:"company_name"`
	Observations      string          `json:"observations"`
}

// UpdateBoletoRequest represents a request to update a boleto
type UpdateBoletoRequest struct {
	Client            string          `json:"client" binding:"required"`
	Value             decimal.Decimal `json:"value" binding:"required"`
	DueDate           ledger.Date     `json:"due_date" binding:"required"`
	Status            string          `json:"status"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	SaleID            *uuid.UUID      `json:"sale_id"`
	DebtID            *uuid.UUID      `json:"debt_id"`
	IsCompanyPayable  bool            `json:"is_company_payable"`
	CompanyName       string          `json:"company_name"`
	Observations      string          `json:"observations"`
}

// ClearBoletoRequest represents a request to settle a boleto. FinalAmount
// and NotaryCosts capture what the bank actually moved when it differs from
// the face value.
type ClearBoletoRequest struct {
	PaymentDate ledger.Date     `json:"payment_date" binding:"required"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	NotaryCosts decimal.Decimal `json:"notary_costs"`
	Interest    decimal.Decimal `json:"interest_amount"`
	Penalty     decimal.Decimal `json:"penalty_amount"`
}

// CreateBoleto registers a new boleto
func (s *BoletoService) CreateBoleto(ctx context.Context, req CreateBoletoRequest) (*ledger.Boleto, error) {
	status := ledger.BoletoStatus(req.Status)
	if status == "" {
		status = ledger.BoletoStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid boleto status: "+req.Status)
	}

	boleto := &ledger.Boleto{
		BaseEntity:        shared.NewBaseEntity(),
		Client:            req.Client,
		Value:             req.Value,
		DueDate:           req.DueDate,
		Status:            status,
		InstallmentNumber: req.InstallmentNumber,
		TotalInstallments: req.TotalInstallments,
		SaleID:            req.SaleID,
		DebtID:            req.DebtID,
		IsCompanyPayable:  req.IsCompanyPayable,
		CompanyName:       req.CompanyName,
		Observations:      req.Observations,
	}

	if err := s.boletos.Save(ctx, boleto); err != nil {
		return nil, err
	}
	return boleto, nil
}

// GetBoletoByID gets a boleto by ID
func (s *BoletoService) GetBoletoByID(ctx context.Context, id uuid.UUID) (*ledger.Boleto, error) {
	return s.boletos.FindByID(ctx, id)
}

// ListBoletos lists boletos matching the filter
func (s *BoletoService) ListBoletos(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Boleto, error) {
	return s.boletos.FindAll(ctx, filter)
}

// ListBoletosByStatus lists boletos with the given lifecycle status
func (s *BoletoService) ListBoletosByStatus(ctx context.Context, status ledger.BoletoStatus) ([]ledger.Boleto, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid boleto status: "+status.String())
	}
	return s.boletos.FindByStatus(ctx, status)
}

// UpdateBoleto updates an existing boleto
func (s *BoletoService) UpdateBoleto(ctx context.Context, id uuid.UUID, req UpdateBoletoRequest) (*ledger.Boleto, error) {
	boleto, err := s.boletos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := ledger.BoletoStatus(req.Status)
	if status == "" {
		status = boleto.Status
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid boleto status: "+req.Status)
	}

	boleto.Client = req.Client
	boleto.Value = req.Value
	boleto.DueDate = req.DueDate
	boleto.Status = status
	boleto.InstallmentNumber = req.InstallmentNumber
	boleto.TotalInstallments = req.TotalInstallments
	boleto.SaleID = req.SaleID
	boleto.DebtID = req.DebtID
	boleto.IsCompanyPayable = req.IsCompanyPayable
	boleto.CompanyName = req.CompanyName
	boleto.Observations = req.Observations

	if err := s.boletos.Save(ctx, boleto); err != nil {
		return nil, err
	}
	return boleto, nil
}

// DeleteBoleto deletes a boleto
func (s *BoletoService) DeleteBoleto(ctx context.Context, id uuid.UUID) error {
	return s.boletos.Delete(ctx, id)
}

// MarkBoletoCleared settles a boleto: the status moves to cleared, and the
// net cash effect lands as a transaction plus a balance replacement. A
// company payable pays out its face value; a receivable collects its net
// amount (final amount if set, minus notary costs).
func (s *BoletoService) MarkBoletoCleared(ctx context.Context, id uuid.UUID, req ClearBoletoRequest) (*ledger.Boleto, error) {
	boleto, err := s.boletos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if boleto.Status == ledger.BoletoStatusCleared {
		return nil, shared.ErrAlreadySettled
	}
	if boleto.Status == ledger.BoletoStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "cancelled boletos cannot be cleared")
	}

	boleto.Status = ledger.BoletoStatusCleared
	boleto.PaymentDate = req.PaymentDate
	boleto.FinalAmount = req.FinalAmount
	boleto.NotaryCosts = req.NotaryCosts
	boleto.InterestAmount = req.Interest
	boleto.PenaltyAmount = req.Penalty

	if err := s.boletos.Save(ctx, boleto); err != nil {
		return nil, err
	}

	direction := ledger.CashInflow
	amount := boleto.NetAmount()
	description := "Boleto cleared: " + boleto.Client
	if boleto.IsCompanyPayable {
		direction = ledger.CashOutflow
		amount = boleto.Value
		description = "Boleto paid: " + payeeName(boleto)
	}

	id = boleto.ID
	if err := s.cash.ApplyMovement(ctx, req.PaymentDate, direction, amount, description, ledger.CategoryBoleto, &id); err != nil {
		return nil, err
	}
	return boleto, nil
}

func payeeName(boleto *ledger.Boleto) string {
	if boleto.CompanyName != "" {
		return boleto.CompanyName
	}
	return boleto.Client
}
