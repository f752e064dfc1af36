package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UUIDArray stores a list of UUIDs as JSONB.
type UUIDArray []uuid.UUID

// Value implements driver.Valuer for JSONB storage
func (a UUIDArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval
func (a *UUIDArray) Scan(value interface{}) error {
	if value == nil {
		*a = UUIDArray{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into UUIDArray", value)
	}
	return json.Unmarshal(bytes, a)
}

// Dates are stored as DATE columns and converted at the model boundary so
// the domain only ever sees civil dates.

func toCivil(t time.Time) ledger.Date {
	return ledger.Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func toColumn(d ledger.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func toCivilPtr(t *time.Time) ledger.Date {
	if t == nil {
		return ledger.Date{}
	}
	return toCivil(*t)
}

func toColumnPtr(d ledger.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := toColumn(d)
	return &t
}

// SaleModel is the GORM model for sales
type SaleModel struct {
	BaseModel
	Client         string                `gorm:"type:varchar(255);not null;index"`
	Date           time.Time             `gorm:"type:date;not null;index"`
	DeliveryDate   *time.Time            `gorm:"type:date;index"`
	TotalValue     decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	PaymentMethods ledger.PaymentMethods `gorm:"type:jsonb;default:'[]'"`
	ReceivedAmount decimal.Decimal       `gorm:"type:decimal(15,2);not null;default:0"`
	PendingAmount  decimal.Decimal       `gorm:"type:decimal(15,2);not null;default:0"`
	Status         string                `gorm:"type:varchar(20);not null;index"`
	SellerID       *uuid.UUID            `gorm:"type:uuid;index"`
	Observations   string                `gorm:"type:text"`
}

// TableName specifies the table name for SaleModel
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts SaleModel to domain Sale
func (m *SaleModel) ToDomain() *ledger.Sale {
	return &ledger.Sale{
		BaseEntity:     m.BaseModel.ToDomain(),
		Client:         m.Client,
		Date:           toCivil(m.Date),
		DeliveryDate:   toCivilPtr(m.DeliveryDate),
		TotalValue:     m.TotalValue,
		PaymentMethods: m.PaymentMethods,
		ReceivedAmount: m.ReceivedAmount,
		PendingAmount:  m.PendingAmount,
		Status:         ledger.SaleStatus(m.Status),
		SellerID:       m.SellerID,
		Observations:   m.Observations,
	}
}

// FromDomain populates SaleModel from domain Sale
func (m *SaleModel) FromDomain(s *ledger.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Client = s.Client
	m.Date = toColumn(s.Date)
	m.DeliveryDate = toColumnPtr(s.DeliveryDate)
	m.TotalValue = s.TotalValue
	m.PaymentMethods = s.PaymentMethods
	m.ReceivedAmount = s.ReceivedAmount
	m.PendingAmount = s.PendingAmount
	m.Status = s.Status.String()
	m.SellerID = s.SellerID
	m.Observations = s.Observations
}

// DebtModel is the GORM model for debts
type DebtModel struct {
	BaseModel
	Company        string                `gorm:"type:varchar(255);not null;index"`
	Description    string                `gorm:"type:text"`
	Date           time.Time             `gorm:"type:date;not null;index"`
	TotalValue     decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	PaymentMethods ledger.PaymentMethods `gorm:"type:jsonb;default:'[]'"`
	IsPaid         bool                  `gorm:"not null;default:false;index"`
	PaidAmount     decimal.Decimal       `gorm:"type:decimal(15,2);not null;default:0"`
	PendingAmount  decimal.Decimal       `gorm:"type:decimal(15,2);not null;default:0"`
	ChecksUsed     UUIDArray             `gorm:"type:jsonb;default:'[]'"`
}

// TableName specifies the table name for DebtModel
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts DebtModel to domain Debt
func (m *DebtModel) ToDomain() *ledger.Debt {
	return &ledger.Debt{
		BaseEntity:     m.BaseModel.ToDomain(),
		Company:        m.Company,
		Description:    m.Description,
		Date:           toCivil(m.Date),
		TotalValue:     m.TotalValue,
		PaymentMethods: m.PaymentMethods,
		IsPaid:         m.IsPaid,
		PaidAmount:     m.PaidAmount,
		PendingAmount:  m.PendingAmount,
		ChecksUsed:     m.ChecksUsed,
	}
}

// FromDomain populates DebtModel from domain Debt
func (m *DebtModel) FromDomain(d *ledger.Debt) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.Company = d.Company
	m.Description = d.Description
	m.Date = toColumn(d.Date)
	m.TotalValue = d.TotalValue
	m.PaymentMethods = d.PaymentMethods
	m.IsPaid = d.IsPaid
	m.PaidAmount = d.PaidAmount
	m.PendingAmount = d.PendingAmount
	m.ChecksUsed = d.ChecksUsed
}

// CheckModel is the GORM model for checks
type CheckModel struct {
	BaseModel
	Client            string          `gorm:"type:varchar(255);not null;index"`
	Value             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate           time.Time       `gorm:"type:date;not null;index"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	IsOwnCheck        bool            `gorm:"not null;default:false"`
	SaleID            *uuid.UUID      `gorm:"type:uuid;index"`
	DebtID            *uuid.UUID      `gorm:"type:uuid;index"`
	InstallmentNumber int             `gorm:"not null;default:0"`
	TotalInstallments int             `gorm:"not null;default:0"`
	UsedFor           string          `gorm:"type:varchar(255)"`
	DiscountDate      *time.Time      `gorm:"type:date"`
	IsAnticipated     bool            `gorm:"not null;default:false"`
	AnticipationFee   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsCompanyPayable  bool            `gorm:"not null;default:false"`
	CompanyName       string          `gorm:"type:varchar(255)"`
	PaymentDate       *time.Time      `gorm:"type:date"`
	Observations      string          `gorm:"type:text"`
}

// TableName specifies the table name for CheckModel
func (CheckModel) TableName() string {
	return "checks"
}

// ToDomain converts CheckModel to domain Check
func (m *CheckModel) ToDomain() *ledger.Check {
	return &ledger.Check{
		BaseEntity:        m.BaseModel.ToDomain(),
		Client:            m.Client,
		Value:             m.Value,
		DueDate:           toCivil(m.DueDate),
		Status:            ledger.CheckStatus(m.Status),
		IsOwnCheck:        m.IsOwnCheck,
		SaleID:            m.SaleID,
		DebtID:            m.DebtID,
		InstallmentNumber: m.InstallmentNumber,
		TotalInstallments: m.TotalInstallments,
		UsedFor:           m.UsedFor,
		DiscountDate:      toCivilPtr(m.DiscountDate),
		IsAnticipated:     m.IsAnticipated,
		AnticipationFee:   m.AnticipationFee,
		IsCompanyPayable:  m.IsCompanyPayable,
		CompanyName:       m.CompanyName,
		PaymentDate:       toCivilPtr(m.PaymentDate),
		Observations:      m.Observations,
	}
}

// FromDomain populates CheckModel from domain Check
func (m *CheckModel) FromDomain(c *ledger.Check) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Client = c.Client
	m.Value = c.Value
	m.DueDate = toColumn(c.DueDate)
	m.Status = c.Status.String()
	m.IsOwnCheck = c.IsOwnCheck
	m.SaleID = c.SaleID
	m.DebtID = c.DebtID
	m.InstallmentNumber = c.InstallmentNumber
	m.TotalInstallments = c.TotalInstallments
	m.UsedFor = c.UsedFor
	m.DiscountDate = toColumnPtr(c.DiscountDate)
	m.IsAnticipated = c.IsAnticipated
	m.AnticipationFee = c.AnticipationFee
	m.IsCompanyPayable = c.IsCompanyPayable
	m.CompanyName = c.CompanyName
	m.PaymentDate = toColumnPtr(c.PaymentDate)
	m.Observations = c.Observations
}

// BoletoModel is the GORM model for boletos
type BoletoModel struct {
	BaseModel
	Client            string          `gorm:"type:varchar(255);not null;index"`
	Value             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate           time.Time       `gorm:"type:date;not null;index"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	InstallmentNumber int             `gorm:"not null;default:0"`
	TotalInstallments int             `gorm:"not null;default:0"`
	SaleID            *uuid.UUID      `gorm:"type:uuid;index"`
	DebtID            *uuid.UUID      `gorm:"type:uuid;index"`
	FinalAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	NotaryCosts       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	InterestAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PenaltyAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsCompanyPayable  bool            `gorm:"not null;default:false"`
	CompanyName       string          `gorm:"type:varchar(255)"`
	PaymentDate       *time.Time      `gorm:"type:date"`
	Observations      string          `gorm:"type:text"`
}

// TableName specifies the table name for BoletoModel
func (BoletoModel) TableName() string {
	return "boletos"
}

// ToDomain converts BoletoModel to domain Boleto
func (m *BoletoModel) ToDomain() *ledger.Boleto {
	return &ledger.Boleto{
		BaseEntity:        m.BaseModel.ToDomain(),
		Client:            m.Client,
		Value:             m.Value,
		DueDate:           toCivil(m.DueDate),
		Status:            ledger.BoletoStatus(m.Status),
		InstallmentNumber: m.InstallmentNumber,
		TotalInstallments: m.TotalInstallments,
		SaleID:            m.SaleID,
		DebtID:            m.DebtID,
		FinalAmount:       m.FinalAmount,
		NotaryCosts:       m.NotaryCosts,
		InterestAmount:    m.InterestAmount,
		PenaltyAmount:     m.PenaltyAmount,
		IsCompanyPayable:  m.IsCompanyPayable,
		CompanyName:       m.CompanyName,
		PaymentDate:       toCivilPtr(m.PaymentDate),
		Observations:      m.Observations,
	}
}

// FromDomain populates BoletoModel from domain Boleto
func (m *BoletoModel) FromDomain(b *ledger.Boleto) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Client = b.Client
	m.Value = b.Value
	m.DueDate = toColumn(b.DueDate)
	m.Status = b.Status.String()
	m.InstallmentNumber = b.InstallmentNumber
	m.TotalInstallments = b.TotalInstallments
	m.SaleID = b.SaleID
	m.DebtID = b.DebtID
	m.FinalAmount = b.FinalAmount
	m.NotaryCosts = b.NotaryCosts
	m.InterestAmount = b.InterestAmount
	m.PenaltyAmount = b.PenaltyAmount
	m.IsCompanyPayable = b.IsCompanyPayable
	m.CompanyName = b.CompanyName
	m.PaymentDate = toColumnPtr(b.PaymentDate)
	m.Observations = b.Observations
}

// EmployeePaymentModel is the GORM model for salary payments
type EmployeePaymentModel struct {
	BaseModel
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeName string          `gorm:"type:varchar(255)"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentDate  time.Time       `gorm:"type:date;not null;index"`
	IsPaid       bool            `gorm:"not null;default:false"`
	Observations string          `gorm:"type:text"`
}

// TableName specifies the table name for EmployeePaymentModel
func (EmployeePaymentModel) TableName() string {
	return "employee_payments"
}

// ToDomain converts EmployeePaymentModel to domain EmployeePayment
func (m *EmployeePaymentModel) ToDomain() *ledger.EmployeePayment {
	return &ledger.EmployeePayment{
		BaseEntity:   m.BaseModel.ToDomain(),
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		Amount:       m.Amount,
		PaymentDate:  toCivil(m.PaymentDate),
		IsPaid:       m.IsPaid,
		Observations: m.Observations,
	}
}

// FromDomain populates EmployeePaymentModel from domain EmployeePayment
func (m *EmployeePaymentModel) FromDomain(p *ledger.EmployeePayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.EmployeeID = p.EmployeeID
	m.EmployeeName = p.EmployeeName
	m.Amount = p.Amount
	m.PaymentDate = toColumn(p.PaymentDate)
	m.IsPaid = p.IsPaid
	m.Observations = p.Observations
}

// PixFeeModel is the GORM model for pix fees
type PixFeeModel struct {
	BaseModel
	Date        time.Time       `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
	Bank        string          `gorm:"type:varchar(255)"`
}

// TableName specifies the table name for PixFeeModel
func (PixFeeModel) TableName() string {
	return "pix_fees"
}

// ToDomain converts PixFeeModel to domain PixFee
func (m *PixFeeModel) ToDomain() *ledger.PixFee {
	return &ledger.PixFee{
		BaseEntity:  m.BaseModel.ToDomain(),
		Date:        toCivil(m.Date),
		Amount:      m.Amount,
		Description: m.Description,
		Bank:        m.Bank,
	}
}

// FromDomain populates PixFeeModel from domain PixFee
func (m *PixFeeModel) FromDomain(f *ledger.PixFee) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.Date = toColumn(f.Date)
	m.Amount = f.Amount
	m.Description = f.Description
	m.Bank = f.Bank
}

// CashTransactionModel is the GORM model for manual cash movements
type CashTransactionModel struct {
	BaseModel
	Date        time.Time       `gorm:"type:date;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Category    string          `gorm:"type:varchar(100);index"`
	RelatedID   *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName specifies the table name for CashTransactionModel
func (CashTransactionModel) TableName() string {
	return "cash_transactions"
}

// ToDomain converts CashTransactionModel to domain CashTransaction
func (m *CashTransactionModel) ToDomain() *ledger.CashTransaction {
	return &ledger.CashTransaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		Date:        toCivil(m.Date),
		Type:        ledger.CashFlowDirection(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		Category:    m.Category,
		RelatedID:   m.RelatedID,
	}
}

// FromDomain populates CashTransactionModel from domain CashTransaction
func (m *CashTransactionModel) FromDomain(t *ledger.CashTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Date = toColumn(t.Date)
	m.Type = string(t.Type)
	m.Amount = t.Amount
	m.Description = t.Description
	m.Category = t.Category
	m.RelatedID = t.RelatedID
}

// CashBalanceModel is the GORM model for the cash balance singleton
type CashBalanceModel struct {
	BaseModel
	CurrentBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	InitialDate    time.Time       `gorm:"type:date;not null"`
	LastUpdated    time.Time       `gorm:"not null"`
}

// TableName specifies the table name for CashBalanceModel
func (CashBalanceModel) TableName() string {
	return "cash_balances"
}

// ToDomain converts CashBalanceModel to domain CashBalance
func (m *CashBalanceModel) ToDomain() *ledger.CashBalance {
	return &ledger.CashBalance{
		BaseEntity:     m.BaseModel.ToDomain(),
		CurrentBalance: m.CurrentBalance,
		InitialBalance: m.InitialBalance,
		InitialDate:    toCivil(m.InitialDate),
		LastUpdated:    m.LastUpdated,
	}
}

// FromDomain populates CashBalanceModel from domain CashBalance
func (m *CashBalanceModel) FromDomain(b *ledger.CashBalance) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.CurrentBalance = b.CurrentBalance
	m.InitialBalance = b.InitialBalance
	m.InitialDate = toColumn(b.InitialDate)
	m.LastUpdated = b.LastUpdated
}
