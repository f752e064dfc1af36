package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Totals carries the headline numbers for a period.
type Totals struct {
	Sales     decimal.Decimal `json:"sales"`
	Received  decimal.Decimal `json:"received"`
	Debts     decimal.Decimal `json:"debts"`
	Paid      decimal.Decimal `json:"paid"`
	NetResult decimal.Decimal `json:"net_result"`
}

// DaySummary is the per-day slice of a period summary.
type DaySummary struct {
	Date     Date            `json:"date"`
	Received decimal.Decimal `json:"received"`
	Paid     decimal.Decimal `json:"paid"`
	Net      decimal.Decimal `json:"net"`
	Count    int             `json:"count"`
}

// PeriodSummary is the aggregated view of a date range. Only received and
// paid events move money; pending and calendar events ride along in Events
// for drill-down but never touch the totals.
type PeriodSummary struct {
	Range           DateRange                  `json:"range"`
	Totals          Totals                     `json:"totals"`
	ByCategory      map[string]decimal.Decimal `json:"by_category"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
	ByDay           []DaySummary               `json:"by_day"`
	Events          []FinancialEvent           `json:"events"`
}

// Aggregator folds classified events into period summaries.
type Aggregator struct {
	classifier *Classifier
}

// NewAggregator creates an aggregator over the given classifier.
func NewAggregator(classifier *Classifier) *Aggregator {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Aggregator{classifier: classifier}
}

// Aggregate classifies the snapshot against the range and folds the events
// into a summary. Gross sales and debts come straight from the records
// dated in range; received and paid come from the settled events, so
// netResult = received - paid always holds.
func (a *Aggregator) Aggregate(set RecordSet, r DateRange) PeriodSummary {
	summary := a.Fold(a.classifier.Classify(set, r), r)

	for i := range set.Sales {
		if r.Contains(set.Sales[i].Date) {
			summary.Totals.Sales = summary.Totals.Sales.Add(set.Sales[i].TotalValue)
		}
	}
	for i := range set.Debts {
		if r.Contains(set.Debts[i].Date) {
			summary.Totals.Debts = summary.Totals.Debts.Add(set.Debts[i].TotalValue)
		}
	}
	return summary
}

// Fold aggregates an already-classified event stream. Events outside the
// range are ignored so callers may reuse a wider classification.
func (a *Aggregator) Fold(events []FinancialEvent, r DateRange) PeriodSummary {
	summary := PeriodSummary{
		Range:           r,
		ByCategory:      map[string]decimal.Decimal{},
		ByPaymentMethod: map[string]decimal.Decimal{},
		ByDay:           []DaySummary{},
		Events:          []FinancialEvent{},
	}
	if !r.IsValid() {
		return summary
	}

	byDay := map[Date]*DaySummary{}

	for _, ev := range events {
		if !r.Contains(ev.Date) {
			continue
		}
		summary.Events = append(summary.Events, ev)

		// Only settled events move money; days with schedule entries
		// alone stay out of the daily series.
		if ev.Kind != EventReceived && ev.Kind != EventPaid {
			continue
		}

		day, ok := byDay[ev.Date]
		if !ok {
			day = &DaySummary{Date: ev.Date}
			byDay[ev.Date] = day
		}
		day.Count++

		if ev.Kind == EventReceived {
			summary.Totals.Received = summary.Totals.Received.Add(ev.Amount)
			day.Received = day.Received.Add(ev.Amount)
		} else {
			summary.Totals.Paid = summary.Totals.Paid.Add(ev.Amount)
			day.Paid = day.Paid.Add(ev.Amount)
		}

		summary.ByCategory[ev.Category] = summary.ByCategory[ev.Category].Add(ev.Amount)
		if ev.PaymentMethod != "" {
			summary.ByPaymentMethod[string(ev.PaymentMethod)] = summary.ByPaymentMethod[string(ev.PaymentMethod)].Add(ev.Amount)
		}
	}

	summary.Totals.NetResult = summary.Totals.Received.Sub(summary.Totals.Paid)

	for _, day := range byDay {
		day.Net = day.Received.Sub(day.Paid)
		summary.ByDay = append(summary.ByDay, *day)
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date.Before(summary.ByDay[j].Date)
	})

	// Newest first for drill-down lists; stable so same-day events keep
	// classification order.
	sort.SliceStable(summary.Events, func(i, j int) bool {
		return summary.Events[j].Date.Before(summary.Events[i].Date)
	})

	return summary
}
