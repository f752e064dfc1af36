package ledger

import (
	"time"

	"github.com/caixa/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The records in this file are immutable snapshots supplied by the store.
// The engine never mutates them; every projection derives fresh output.

// SaleStatus represents the payment status of a sale.
type SaleStatus string

const (
	SaleStatusPaid    SaleStatus = "paid"
	SaleStatusPartial SaleStatus = "partial"
	SaleStatusPending SaleStatus = "pending"
)

// IsValid checks if the status is a valid SaleStatus.
func (s SaleStatus) IsValid() bool {
	return s == SaleStatusPaid || s == SaleStatusPartial || s == SaleStatusPending
}

// String returns the string representation of SaleStatus.
func (s SaleStatus) String() string { return string(s) }

// Sale is a customer sale with one or more payment components.
// ReceivedAmount + PendingAmount is expected to equal TotalValue, but the
// engine must tolerate drift: a violating record still classifies, it is
// never rejected.
type Sale struct {
	shared.BaseEntity
	Client         string          `json:"client"`
	Date           Date            `json:"date"`
	DeliveryDate   Date            `json:"delivery_date,omitzero"`
	TotalValue     decimal.Decimal `json:"total_value"`
	PaymentMethods PaymentMethods  `json:"payment_methods"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	Status         SaleStatus      `json:"status"`
	SellerID       *uuid.UUID      `json:"seller_id,omitempty"`
	Observations   string          `json:"observations,omitempty"`
}

// Debt is money the business owes a supplier or company.
type Debt struct {
	shared.BaseEntity
	Company        string          `json:"company"`
	Description    string          `json:"description"`
	Date           Date            `json:"date"`
	TotalValue     decimal.Decimal `json:"total_value"`
	PaymentMethods PaymentMethods  `json:"payment_methods"`
	IsPaid         bool            `json:"is_paid"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	ChecksUsed     []uuid.UUID     `json:"checks_used,omitempty"`
}

// CheckStatus represents the lifecycle status of a check.
type CheckStatus string

const (
	CheckStatusPending     CheckStatus = "pending"
	CheckStatusCleared     CheckStatus = "cleared"
	CheckStatusReturned    CheckStatus = "returned"
	CheckStatusRepresented CheckStatus = "represented"
)

// IsValid checks if the status is a valid CheckStatus.
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckStatusPending, CheckStatusCleared, CheckStatusReturned, CheckStatusRepresented:
		return true
	}
	return false
}

// String returns the string representation of CheckStatus.
func (s CheckStatus) String() string { return string(s) }

// Check is a future-dated check. Third-party checks received from clients
// are receivables; checks the company itself issued (IsOwnCheck or
// IsCompanyPayable) are payables.
type Check struct {
	shared.BaseEntity
	Client            string          `json:"client"`
	Value             decimal.Decimal `json:"value"`
	DueDate           Date            `json:"due_date"`
	Status            CheckStatus     `json:"status"`
	IsOwnCheck        bool            `json:"is_own_check"`
	SaleID            *uuid.UUID      `json:"sale_id,omitempty"`
	DebtID            *uuid.UUID      `json:"debt_id,omitempty"`
	InstallmentNumber int             `json:"installment_number,omitempty"`
	TotalInstallments int             `json:"total_installments,omitempty"`
	UsedFor           string          `json:"used_for,omitempty"`
	DiscountDate      Date            `json:"discount_date,omitzero"`
	IsAnticipated     bool            `json:"is_anticipated,omitempty"`
	AnticipationFee   decimal.Decimal `json:"anticipation_fee,omitempty"`
	IsCompanyPayable  bool            `json:"is_company_payable,omitempty"`
	CompanyName       string          `json:"company_name,omitempty"`
	PaymentDate       Date            `json:"payment_date,omitzero"`
	Observations      string          `json:"observations,omitempty"`
}

// IsPayable reports whether the check is a company obligation rather than
// a receivable.
func (c *Check) IsPayable() bool {
	return c.IsOwnCheck || c.IsCompanyPayable
}

// NetValue returns the cash actually collected for an anticipated check
// (face value minus the discount fee); the plain value otherwise.
func (c *Check) NetValue() decimal.Decimal {
	if c.IsAnticipated && c.AnticipationFee.IsPositive() {
		return c.Value.Sub(c.AnticipationFee)
	}
	return c.Value
}

// BoletoStatus represents the lifecycle status of a boleto.
type BoletoStatus string

const (
	BoletoStatusPending   BoletoStatus = "pending"
	BoletoStatusCleared   BoletoStatus = "cleared"
	BoletoStatusOverdue   BoletoStatus = "overdue"
	BoletoStatusCancelled BoletoStatus = "cancelled"
	BoletoStatusUnpaid    BoletoStatus = "unpaid"
)

// IsValid checks if the status is a valid BoletoStatus.
func (s BoletoStatus) IsValid() bool {
	switch s {
	case BoletoStatusPending, BoletoStatusCleared, BoletoStatusOverdue,
		BoletoStatusCancelled, BoletoStatusUnpaid:
		return true
	}
	return false
}

// String returns the string representation of BoletoStatus.
func (s BoletoStatus) String() string { return string(s) }

// Boleto is a bank-issued payment slip with a fixed maturity.
// FinalAmount (when set) and NotaryCosts net against the nominal value to
// produce the true cash effect.
type Boleto struct {
	shared.BaseEntity
	Client            string          `json:"client"`
	Value             decimal.Decimal `json:"value"`
	DueDate           Date            `json:"due_date"`
	Status            BoletoStatus    `json:"status"`
	InstallmentNumber int             `json:"installment_number,omitempty"`
	TotalInstallments int             `json:"total_installments,omitempty"`
	SaleID            *uuid.UUID      `json:"sale_id,omitempty"`
	DebtID            *uuid.UUID      `json:"debt_id,omitempty"`
	FinalAmount       decimal.Decimal `json:"final_amount,omitempty"`
	NotaryCosts       decimal.Decimal `json:"notary_costs,omitempty"`
	InterestAmount    decimal.Decimal `json:"interest_amount,omitempty"`
	PenaltyAmount     decimal.Decimal `json:"penalty_amount,omitempty"`
	IsCompanyPayable  bool            `json:"is_company_payable,omitempty"`
	CompanyName       string          `json:"company_name,omitempty"`
	PaymentDate       Date            `json:"payment_date,omitzero"`
	Observations      string          `json:"observations,omitempty"`
}

// NetAmount returns the true cash effect of the boleto:
// (finalAmount if set, else value) minus notary costs.
func (b *Boleto) NetAmount() decimal.Decimal {
	amount := b.Value
	if b.FinalAmount.IsPositive() {
		amount = b.FinalAmount
	}
	return amount.Sub(b.NotaryCosts)
}

// EmployeePayment is a single atomic salary payment. It is never expanded
// into installments.
type EmployeePayment struct {
	shared.BaseEntity
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  Date            `json:"payment_date"`
	IsPaid       bool            `json:"is_paid"`
	Observations string          `json:"observations,omitempty"`
}

// PixFee is a bank fee charged on a pix transfer.
type PixFee struct {
	shared.BaseEntity
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Bank        string          `json:"bank,omitempty"`
}

// CashFlowDirection is the direction of a manual cash transaction.
type CashFlowDirection string

const (
	CashInflow  CashFlowDirection = "inflow"
	CashOutflow CashFlowDirection = "outflow"
)

// IsValid checks if the direction is valid.
func (d CashFlowDirection) IsValid() bool {
	return d == CashInflow || d == CashOutflow
}

// CashTransaction is a manually recorded cash movement.
type CashTransaction struct {
	shared.BaseEntity
	Date        Date              `json:"date"`
	Type        CashFlowDirection `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Category    string            `json:"category,omitempty"`
	RelatedID   *uuid.UUID        `json:"related_id,omitempty"`
}

// SignedAmount returns the transaction amount with its cash-flow sign.
func (t *CashTransaction) SignedAmount() decimal.Decimal {
	if t.Type == CashOutflow {
		return t.Amount.Neg()
	}
	return t.Amount
}

// CashBalance is the singleton running balance snapshot. It is maintained
// by the write path (each cash-affecting action replaces the value whole);
// the engine only reads it and never rederives it from history.
type CashBalance struct {
	shared.BaseEntity
	CurrentBalance decimal.Decimal `json:"current_balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	InitialDate    Date            `json:"initial_date"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// RecordSet is the in-memory snapshot of every record type the engine
// consumes. Fetching it is the store's concern; the engine only reads.
type RecordSet struct {
	Sales            []Sale
	Debts            []Debt
	Checks           []Check
	Boletos          []Boleto
	EmployeePayments []EmployeePayment
	PixFees          []PixFee
	CashTransactions []CashTransaction
}
