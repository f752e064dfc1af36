package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventKind buckets a monetary event for aggregation.
type EventKind string

const (
	// EventReceived is money actually collected.
	EventReceived EventKind = "received"
	// EventPaid is money actually disbursed.
	EventPaid EventKind = "paid"
	// EventPending is a scheduled receivable or payable not yet settled.
	// Pending events feed calendar and receivables views, never totals.
	EventPending EventKind = "pending"
	// EventCalendar is an informational schedule entry (due dates,
	// deliveries). Calendar events never participate in totals.
	EventCalendar EventKind = "calendar"
)

// Event variants refine a kind without adding new buckets.
const (
	VariantAnticipated = "anticipated"
	VariantUsedForDebt = "used_for_debt"
	VariantDelivery    = "delivery"
	VariantReceivable  = "receivable"
	VariantPayable     = "payable"
	VariantOverdue     = "overdue"
	VariantOwnCheck    = "own_check"
)

// Event categories group events for reporting.
const (
	CategorySale       = "sale"
	CategoryDebt       = "debt"
	CategoryCheck      = "check"
	CategoryBoleto     = "boleto"
	CategoryCreditCard = "credit_card"
	CategorySalary     = "salary"
	CategoryPixFee     = "pix_fee"
	CategoryDelivery   = "delivery"
)

// Source types identify the record an event derives from.
const (
	SourceSale            = "sale"
	SourceDebt            = "debt"
	SourceCheck           = "check"
	SourceBoleto          = "boleto"
	SourceEmployeePayment = "employee_payment"
	SourcePixFee          = "pix_fee"
)

// FinancialEvent is one classified monetary event derived from a record.
// Events are transient: they are rebuilt from the record snapshot on every
// query and never persisted.
type FinancialEvent struct {
	ID            string            `json:"id"`
	Date          Date              `json:"date"`
	Kind          EventKind         `json:"kind"`
	Variant       string            `json:"variant,omitempty"`
	Category      string            `json:"category"`
	Amount        decimal.Decimal   `json:"amount"`
	PaymentMethod PaymentMethodType `json:"payment_method,omitempty"`
	SourceType    string            `json:"source_type"`
	SourceID      uuid.UUID         `json:"source_id"`
	Label         string            `json:"label"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Classifier maps raw records onto financial events. It is stateless and
// safe for concurrent use; every call takes its inputs explicitly and
// returns new output.
type Classifier struct {
	opts ExpandOptions
}

// NewClassifier creates a classifier with default expansion options.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// NewClassifierWith creates a classifier with explicit expansion options.
func NewClassifierWith(opts ExpandOptions) *Classifier {
	return &Classifier{opts: opts}
}

// Classify maps every record in the snapshot onto zero or more financial
// events whose date falls inside the range. Output order is deterministic
// (input order per record type, record types in a fixed sequence), so two
// calls with identical inputs produce identical output.
//
// Malformed records contribute nothing; one bad row must not blank an
// entire report. An inverted range matches nothing.
func (c *Classifier) Classify(set RecordSet, r DateRange) []FinancialEvent {
	if !r.IsValid() {
		return []FinancialEvent{}
	}

	events := make([]FinancialEvent, 0, 64)
	for i := range set.Sales {
		events = append(events, c.classifySale(&set.Sales[i], r)...)
	}
	for i := range set.Debts {
		events = append(events, c.classifyDebt(&set.Debts[i], r)...)
	}
	for i := range set.Checks {
		events = append(events, c.classifyCheck(&set.Checks[i], r)...)
	}
	for i := range set.Boletos {
		events = append(events, c.classifyBoleto(&set.Boletos[i], r)...)
	}
	for i := range set.EmployeePayments {
		events = append(events, c.classifyEmployeePayment(&set.EmployeePayments[i], r)...)
	}
	for i := range set.PixFees {
		events = append(events, c.classifyPixFee(&set.PixFees[i], r)...)
	}
	return events
}

// ClassifyOn classifies the snapshot against a single day.
func (c *Classifier) ClassifyOn(set RecordSet, day Date) []FinancialEvent {
	return c.Classify(set, SingleDay(day))
}

func (c *Classifier) classifySale(s *Sale, r DateRange) []FinancialEvent {
	if s == nil || s.Date.IsZero() {
		return nil
	}

	var events []FinancialEvent

	for i := range s.PaymentMethods {
		m := s.PaymentMethods[i]

		switch {
		case m.Type.IsInstant(), m.Type == PaymentCreditCard && m.Installments <= 1:
			// Instant methods are folded into receivedAmount at the sale
			// date; one received event per method.
			if !r.Contains(s.Date) {
				continue
			}
			events = append(events, FinancialEvent{
				ID:            fmt.Sprintf("sale-%s-m%d", s.ID, i),
				Date:          s.Date,
				Kind:          EventReceived,
				Category:      CategorySale,
				Amount:        m.Amount,
				PaymentMethod: m.Type,
				SourceType:    SourceSale,
				SourceID:      s.ID,
				Label:         fmt.Sprintf("Sale - %s", s.Client),
			})

		case m.Type == PaymentCreditCard && m.Installments > 1:
			// The first installment is assumed already folded into
			// receivedAmount; only later installments project as
			// receivables.
			installments := ExpandInstallmentsWith(m, s.Date, c.opts)
			for _, inst := range installments {
				if inst.Sequence == 1 || !r.Contains(inst.DueDate) {
					continue
				}
				events = append(events, FinancialEvent{
					ID:            fmt.Sprintf("sale-%s-m%d-i%d", s.ID, i, inst.Sequence),
					Date:          inst.DueDate,
					Kind:          EventPending,
					Variant:       VariantReceivable,
					Category:      CategoryCreditCard,
					Amount:        inst.Amount,
					PaymentMethod: m.Type,
					SourceType:    SourceSale,
					SourceID:      s.ID,
					Label:         fmt.Sprintf("%s - Installment %d/%d", s.Client, inst.Sequence, len(installments)),
					Metadata: map[string]string{
						"installment":        fmt.Sprintf("%d/%d", inst.Sequence, len(installments)),
						"installment_number": fmt.Sprintf("%d", inst.Sequence),
					},
				})
			}

		default:
			// Check/boleto components materialize as their own records
			// and are classified there; barter and settlement never move
			// cash directly.
		}
	}

	if !s.DeliveryDate.IsZero() && r.Contains(s.DeliveryDate) {
		events = append(events, FinancialEvent{
			ID:         fmt.Sprintf("sale-%s-delivery", s.ID),
			Date:       s.DeliveryDate,
			Kind:       EventCalendar,
			Variant:    VariantDelivery,
			Category:   CategoryDelivery,
			Amount:     s.TotalValue,
			SourceType: SourceSale,
			SourceID:   s.ID,
			Label:      fmt.Sprintf("Delivery - %s", s.Client),
		})
	}

	return events
}

func (c *Classifier) classifyDebt(d *Debt, r DateRange) []FinancialEvent {
	if d == nil || d.Date.IsZero() {
		return nil
	}

	var events []FinancialEvent

	for i := range d.PaymentMethods {
		m := d.PaymentMethods[i]

		// Every installment due in range is a schedule entry regardless of
		// payment state; the agenda shows what falls due, not what cleared.
		installments := ExpandInstallmentsWith(m, d.Date, c.opts)
		for _, inst := range installments {
			if !r.Contains(inst.DueDate) {
				continue
			}
			events = append(events, FinancialEvent{
				ID:            fmt.Sprintf("debt-%s-m%d-i%d", d.ID, i, inst.Sequence),
				Date:          inst.DueDate,
				Kind:          EventCalendar,
				Variant:       VariantPayable,
				Category:      CategoryDebt,
				Amount:        inst.Amount,
				PaymentMethod: m.Type,
				SourceType:    SourceDebt,
				SourceID:      d.ID,
				Label:         fmt.Sprintf("%s - Installment %d/%d", d.Company, inst.Sequence, len(installments)),
				Metadata: map[string]string{
					"installment": fmt.Sprintf("%d/%d", inst.Sequence, len(installments)),
					"description": d.Description,
				},
			})
		}

		// Paid recognition covers only the immediate components; check,
		// boleto and credit-card components are recognized through their
		// own records to avoid double counting.
		if d.IsPaid && m.Type.SettlesDebtImmediately() && r.Contains(d.Date) {
			events = append(events, FinancialEvent{
				ID:            fmt.Sprintf("debt-%s-m%d", d.ID, i),
				Date:          d.Date,
				Kind:          EventPaid,
				Category:      CategoryDebt,
				Amount:        m.Amount,
				PaymentMethod: m.Type,
				SourceType:    SourceDebt,
				SourceID:      d.ID,
				Label:         fmt.Sprintf("Payment - %s", d.Company),
			})
		}
	}

	return events
}

func (c *Classifier) classifyCheck(ck *Check, r DateRange) []FinancialEvent {
	if ck == nil || ck.DueDate.IsZero() || !r.Contains(ck.DueDate) {
		return nil
	}

	label := ck.Client
	if ck.IsPayable() && ck.CompanyName != "" {
		label = ck.CompanyName
	}

	base := FinancialEvent{
		Date:          ck.DueDate,
		Category:      CategoryCheck,
		Amount:        ck.Value,
		PaymentMethod: PaymentCheck,
		SourceType:    SourceCheck,
		SourceID:      ck.ID,
	}
	if ck.InstallmentNumber > 0 && ck.TotalInstallments > 0 {
		base.Metadata = map[string]string{
			"installment": fmt.Sprintf("%d/%d", ck.InstallmentNumber, ck.TotalInstallments),
		}
	}

	switch ck.Status {
	case CheckStatusCleared:
		ev := base
		if ck.IsPayable() {
			ev.ID = fmt.Sprintf("check-%s-paid", ck.ID)
			ev.Kind = EventPaid
			ev.Variant = VariantOwnCheck
			ev.Label = fmt.Sprintf("Own check paid - %s", label)
			return []FinancialEvent{ev}
		}
		if ck.IsAnticipated && ck.AnticipationFee.IsPositive() {
			ev.ID = fmt.Sprintf("check-%s-anticipated", ck.ID)
			ev.Kind = EventReceived
			ev.Variant = VariantAnticipated
			ev.Amount = ck.NetValue()
			ev.Label = fmt.Sprintf("Check anticipated - %s", label)
			if ev.Metadata == nil {
				ev.Metadata = map[string]string{}
			}
			ev.Metadata["original_amount"] = ck.Value.String()
			ev.Metadata["fee"] = ck.AnticipationFee.String()
			ev.Metadata["net_amount"] = ck.NetValue().String()
			return []FinancialEvent{ev}
		}
		ev.ID = fmt.Sprintf("check-%s-received", ck.ID)
		ev.Kind = EventReceived
		ev.Label = fmt.Sprintf("Check cleared - %s", label)
		return []FinancialEvent{ev}

	case CheckStatusPending:
		ev := base
		if ck.DebtID != nil && !ck.IsPayable() {
			// A third-party check handed over to settle a debt: tracked
			// for information, never counted as received.
			ev.ID = fmt.Sprintf("check-%s-used", ck.ID)
			ev.Kind = EventPending
			ev.Variant = VariantUsedForDebt
			ev.Label = fmt.Sprintf("Check used for debt - %s", label)
			if ck.UsedFor != "" {
				if ev.Metadata == nil {
					ev.Metadata = map[string]string{}
				}
				ev.Metadata["used_for"] = ck.UsedFor
			}
			return []FinancialEvent{ev}
		}
		ev.ID = fmt.Sprintf("check-%s-pending", ck.ID)
		ev.Kind = EventPending
		if ck.IsPayable() {
			ev.Variant = VariantPayable
			ev.Label = fmt.Sprintf("Check due - %s", label)
		} else {
			ev.Variant = VariantReceivable
			ev.Label = fmt.Sprintf("Check pending - %s", label)
		}
		return []FinancialEvent{ev}

	default:
		// Returned and represented checks have no cash effect until they
		// re-enter a settled state.
		return nil
	}
}

func (c *Classifier) classifyBoleto(b *Boleto, r DateRange) []FinancialEvent {
	if b == nil || b.DueDate.IsZero() || !r.Contains(b.DueDate) {
		return nil
	}

	label := b.Client
	if b.IsCompanyPayable && b.CompanyName != "" {
		label = b.CompanyName
	}

	base := FinancialEvent{
		Date:          b.DueDate,
		Category:      CategoryBoleto,
		Amount:        b.Value,
		PaymentMethod: PaymentBoleto,
		SourceType:    SourceBoleto,
		SourceID:      b.ID,
	}
	if b.InstallmentNumber > 0 && b.TotalInstallments > 0 {
		base.Metadata = map[string]string{
			"installment": fmt.Sprintf("%d/%d", b.InstallmentNumber, b.TotalInstallments),
		}
	}

	switch b.Status {
	case BoletoStatusCleared:
		ev := base
		if b.IsCompanyPayable {
			ev.ID = fmt.Sprintf("boleto-%s-paid", b.ID)
			ev.Kind = EventPaid
			ev.Label = fmt.Sprintf("Boleto paid - %s", label)
			return []FinancialEvent{ev}
		}
		ev.ID = fmt.Sprintf("boleto-%s-received", b.ID)
		ev.Kind = EventReceived
		ev.Amount = b.NetAmount()
		ev.Label = fmt.Sprintf("Boleto received - %s", label)
		if ev.Metadata == nil {
			ev.Metadata = map[string]string{}
		}
		ev.Metadata["original_value"] = b.Value.String()
		if b.FinalAmount.IsPositive() {
			ev.Metadata["final_amount"] = b.FinalAmount.String()
		}
		if b.NotaryCosts.IsPositive() {
			ev.Metadata["notary_costs"] = b.NotaryCosts.String()
		}
		return []FinancialEvent{ev}

	case BoletoStatusPending, BoletoStatusOverdue:
		ev := base
		ev.Kind = EventPending
		overdue := b.Status == BoletoStatusOverdue

		// Which side of the ledger wins over the overdue marker: a company
		// obligation stays a payable no matter how late it is.
		switch {
		case b.IsCompanyPayable:
			ev.ID = fmt.Sprintf("boleto-%s-pending", b.ID)
			ev.Variant = VariantPayable
			ev.Label = fmt.Sprintf("Boleto due - %s", label)
		case b.DebtID != nil:
			// A boleto committed to a debt: a payable-side schedule entry,
			// like a check handed over to settle a debt.
			ev.ID = fmt.Sprintf("boleto-%s-used", b.ID)
			ev.Variant = VariantUsedForDebt
			ev.Label = fmt.Sprintf("Boleto used for debt - %s", label)
		case overdue:
			ev.ID = fmt.Sprintf("boleto-%s-overdue", b.ID)
			ev.Variant = VariantOverdue
			ev.Label = fmt.Sprintf("Boleto overdue - %s", label)
		default:
			ev.ID = fmt.Sprintf("boleto-%s-pending", b.ID)
			ev.Variant = VariantReceivable
			ev.Label = fmt.Sprintf("Boleto pending - %s", label)
		}

		if overdue && ev.Variant != VariantOverdue {
			ev.ID = fmt.Sprintf("boleto-%s-overdue", b.ID)
			ev.Label = fmt.Sprintf("Boleto overdue - %s", label)
			if ev.Metadata == nil {
				ev.Metadata = map[string]string{}
			}
			ev.Metadata["overdue"] = "true"
		}
		return []FinancialEvent{ev}

	default:
		// Cancelled and written-off boletos contribute nothing.
		return nil
	}
}

func (c *Classifier) classifyEmployeePayment(p *EmployeePayment, r DateRange) []FinancialEvent {
	if p == nil || p.PaymentDate.IsZero() || !r.Contains(p.PaymentDate) {
		return nil
	}
	label := p.EmployeeName
	if label == "" {
		label = "Employee"
	}
	return []FinancialEvent{{
		ID:         fmt.Sprintf("employee-payment-%s", p.ID),
		Date:       p.PaymentDate,
		Kind:       EventPaid,
		Category:   CategorySalary,
		Amount:     p.Amount,
		SourceType: SourceEmployeePayment,
		SourceID:   p.ID,
		Label:      fmt.Sprintf("Salary payment - %s", label),
	}}
}

func (c *Classifier) classifyPixFee(f *PixFee, r DateRange) []FinancialEvent {
	if f == nil || f.Date.IsZero() || !r.Contains(f.Date) {
		return nil
	}
	label := f.Bank
	if label == "" {
		label = f.Description
	}
	return []FinancialEvent{{
		ID:            fmt.Sprintf("pix-fee-%s", f.ID),
		Date:          f.Date,
		Kind:          EventPaid,
		Category:      CategoryPixFee,
		Amount:        f.Amount,
		PaymentMethod: PaymentPix,
		SourceType:    SourcePixFee,
		SourceID:      f.ID,
		Label:         fmt.Sprintf("Pix fee - %s", label),
	}}
}
