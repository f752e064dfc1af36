package ledger

// RecordCounts is a point-in-time census of the record store, used to
// surface "N new records since last view" badges. The host persists the
// previous census; the engine only computes deltas.
type RecordCounts struct {
	Sales            int `json:"sales"`
	Debts            int `json:"debts"`
	Checks           int `json:"checks"`
	Boletos          int `json:"boletos"`
	EmployeePayments int `json:"employee_payments"`
	PixFees          int `json:"pix_fees"`
	CashTransactions int `json:"cash_transactions"`
}

// Total returns the sum across all record types.
func (c RecordCounts) Total() int {
	return c.Sales + c.Debts + c.Checks + c.Boletos +
		c.EmployeePayments + c.PixFees + c.CashTransactions
}

// CountRecords takes the census of a snapshot.
func CountRecords(set RecordSet) RecordCounts {
	return RecordCounts{
		Sales:            len(set.Sales),
		Debts:            len(set.Debts),
		Checks:           len(set.Checks),
		Boletos:          len(set.Boletos),
		EmployeePayments: len(set.EmployeePayments),
		PixFees:          len(set.PixFees),
		CashTransactions: len(set.CashTransactions),
	}
}

// DiffCounts returns how many records of each type were added between two
// censuses. Deletions clamp to zero rather than going negative; a badge
// never shows "-2 new sales".
func DiffCounts(previous, current RecordCounts) RecordCounts {
	return RecordCounts{
		Sales:            clampDelta(previous.Sales, current.Sales),
		Debts:            clampDelta(previous.Debts, current.Debts),
		Checks:           clampDelta(previous.Checks, current.Checks),
		Boletos:          clampDelta(previous.Boletos, current.Boletos),
		EmployeePayments: clampDelta(previous.EmployeePayments, current.EmployeePayments),
		PixFees:          clampDelta(previous.PixFees, current.PixFees),
		CashTransactions: clampDelta(previous.CashTransactions, current.CashTransactions),
	}
}

func clampDelta(previous, current int) int {
	if current <= previous {
		return 0
	}
	return current - previous
}
