package ledger

import "github.com/shopspring/decimal"

// CashProjector exposes the running cash position. The stored balance is
// authoritative: it is replaced wholesale by the write path whenever a
// cash-affecting action is confirmed, and the projector never recomputes
// it from history. Doing so would double-apply deltas on retried writes.
type CashProjector struct{}

// NewCashProjector creates a cash projector.
func NewCashProjector() *CashProjector {
	return &CashProjector{}
}

// CurrentBalance reads the stored balance as-is.
func (p *CashProjector) CurrentBalance(balance CashBalance) decimal.Decimal {
	return balance.CurrentBalance
}

// WouldChangeBy returns the delta the event would apply to the balance if
// its underlying action were confirmed. Pending and calendar events move
// nothing.
func (p *CashProjector) WouldChangeBy(ev FinancialEvent) decimal.Decimal {
	switch ev.Kind {
	case EventReceived:
		return ev.Amount
	case EventPaid:
		return ev.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// PreviewBalance returns the balance the events would produce if all of
// their underlying actions were confirmed. This is a UI preview only; the
// write path persists the new balance as a single atomic replacement.
func (p *CashProjector) PreviewBalance(balance CashBalance, events []FinancialEvent) decimal.Decimal {
	result := balance.CurrentBalance
	for _, ev := range events {
		result = result.Add(p.WouldChangeBy(ev))
	}
	return result
}

// SumTransactions folds manual cash transactions into a signed total,
// inflows positive and outflows negative.
func SumTransactions(transactions []CashTransaction) decimal.Decimal {
	total := decimal.Zero
	for i := range transactions {
		total = total.Add(transactions[i].SignedAmount())
	}
	return total
}
