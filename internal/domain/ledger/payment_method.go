package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// PaymentMethodType enumerates the supported payment method kinds.
// Using a closed enum removes the "is this field present" sniffing the
// records otherwise need to distinguish instant money from future-dated
// instruments.
type PaymentMethodType string

const (
	PaymentCash       PaymentMethodType = "cash"
	PaymentPix        PaymentMethodType = "pix"
	PaymentDebitCard  PaymentMethodType = "debit_card"
	PaymentCreditCard PaymentMethodType = "credit_card"
	PaymentCheck      PaymentMethodType = "check"
	PaymentBoleto     PaymentMethodType = "boleto"
	PaymentTransfer   PaymentMethodType = "transfer"
	PaymentBarter     PaymentMethodType = "barter"
	PaymentSettlement PaymentMethodType = "settlement"
)

// IsValid checks if the type is a known payment method kind.
func (t PaymentMethodType) IsValid() bool {
	switch t {
	case PaymentCash, PaymentPix, PaymentDebitCard, PaymentCreditCard,
		PaymentCheck, PaymentBoleto, PaymentTransfer, PaymentBarter, PaymentSettlement:
		return true
	}
	return false
}

// String returns the string representation of the payment method type.
func (t PaymentMethodType) String() string {
	return string(t)
}

// IsInstant reports whether the method settles at the moment of the sale
// (cash, pix, debit card). Credit card with a single installment is also
// treated as instant, but that depends on the method's installment count
// and is decided at the classification site.
func (t PaymentMethodType) IsInstant() bool {
	return t == PaymentCash || t == PaymentPix || t == PaymentDebitCard
}

// IsInstrument reports whether the method produces future-dated payment
// instruments tracked as their own records (checks, boletos). Their cash
// effect is recognized through those records, never through the method
// itself, to avoid double counting.
func (t PaymentMethodType) IsInstrument() bool {
	return t == PaymentCheck || t == PaymentBoleto
}

// SettlesDebtImmediately reports whether a debt paid through this method
// is recognized at the debt date (cash, pix, debit card, transfer).
func (t PaymentMethodType) SettlesDebtImmediately() bool {
	return t == PaymentCash || t == PaymentPix || t == PaymentDebitCard || t == PaymentTransfer
}

// PaymentMethod is one payment component of a Sale or Debt.
// Installment fields are meaningful only when Installments > 1; a zero
// InstallmentValue means "unset" and falls back per the expander options.
type PaymentMethod struct {
	Type                PaymentMethodType `json:"type"`
	Amount              decimal.Decimal   `json:"amount"`
	Installments        int               `json:"installments,omitempty"`
	InstallmentValue    decimal.Decimal   `json:"installment_value,omitempty"`
	InstallmentInterval int               `json:"installment_interval,omitempty"`
	StartDate           Date              `json:"start_date,omitzero"`
	FirstDueDate        Date              `json:"first_due_date,omitzero"`
	IsOwnCheck          bool              `json:"is_own_check,omitempty"`
}

// PaymentMethods is stored as a JSONB column on sales and debts.
type PaymentMethods []PaymentMethod

// Value implements driver.Valuer for JSONB storage.
func (p PaymentMethods) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (p *PaymentMethods) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentMethods{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentMethods: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PaymentMethods{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}
