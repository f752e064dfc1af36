package ledger

import "github.com/shopspring/decimal"

// DefaultInstallmentInterval is the spacing in days between installments
// when the payment method does not carry an explicit interval.
const DefaultInstallmentInterval = 30

// Installment is one scheduled portion of a multi-payment method.
type Installment struct {
	Sequence int             `json:"sequence"`
	DueDate  Date            `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`
}

// AmountFallback selects the per-installment amount when InstallmentValue
// is unset on a multi-installment method. The source data is inconsistent
// here, so both interpretations are supported; FallbackMethodAmount is the
// default (over-counts the total when summed across installments).
type AmountFallback int

const (
	// FallbackMethodAmount uses the method's full Amount for every installment.
	FallbackMethodAmount AmountFallback = iota
	// FallbackZero emits zero-amount installments.
	FallbackZero
)

// ExpandOptions configures installment expansion.
type ExpandOptions struct {
	Fallback AmountFallback
}

// ExpandInstallments expands a payment method into its ordered schedule of
// installments anchored at anchorDate, using default options.
func ExpandInstallments(m PaymentMethod, anchorDate Date) []Installment {
	return ExpandInstallmentsWith(m, anchorDate, ExpandOptions{})
}

// ExpandInstallmentsWith expands a payment method into its ordered schedule
// of installments. The expansion is a pure function of its inputs: the same
// method and anchor always yield the identical sequence.
//
// A method with installments absent, zero, or negative degrades to a single
// installment due at the base date; a broken record must still render as
// one event rather than disappear.
func ExpandInstallmentsWith(m PaymentMethod, anchorDate Date, opts ExpandOptions) []Installment {
	base := m.FirstDueDate
	if base.IsZero() {
		base = m.StartDate
	}
	if base.IsZero() {
		base = anchorDate
	}

	count := m.Installments
	if count < 1 {
		count = 1
	}

	if count == 1 {
		return []Installment{{Sequence: 1, DueDate: base, Amount: m.Amount}}
	}

	interval := m.InstallmentInterval
	if interval <= 0 {
		interval = DefaultInstallmentInterval
	}

	amount := m.InstallmentValue
	if amount.IsZero() && opts.Fallback == FallbackMethodAmount {
		amount = m.Amount
	}

	installments := make([]Installment, count)
	for i := 0; i < count; i++ {
		installments[i] = Installment{
			Sequence: i + 1,
			DueDate:  base.AddDays(i * interval),
			Amount:   amount,
		}
	}
	return installments
}
