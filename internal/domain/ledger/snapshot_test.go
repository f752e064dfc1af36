package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountRecords(t *testing.T) {
	set := RecordSet{
		Sales:   make([]Sale, 3),
		Debts:   make([]Debt, 1),
		Checks:  make([]Check, 2),
		PixFees: make([]PixFee, 4),
	}
	counts := CountRecords(set)
	assert.Equal(t, 3, counts.Sales)
	assert.Equal(t, 1, counts.Debts)
	assert.Equal(t, 2, counts.Checks)
	assert.Equal(t, 0, counts.Boletos)
	assert.Equal(t, 4, counts.PixFees)
	assert.Equal(t, 10, counts.Total())
}

func TestDiffCounts(t *testing.T) {
	t.Run("additions show as positive deltas", func(t *testing.T) {
		previous := RecordCounts{Sales: 10, Checks: 5}
		current := RecordCounts{Sales: 13, Checks: 5, Boletos: 2}
		diff := DiffCounts(previous, current)
		assert.Equal(t, 3, diff.Sales)
		assert.Equal(t, 0, diff.Checks)
		assert.Equal(t, 2, diff.Boletos)
		assert.Equal(t, 5, diff.Total())
	})

	t.Run("deletions clamp to zero", func(t *testing.T) {
		previous := RecordCounts{Sales: 10, Debts: 4}
		current := RecordCounts{Sales: 7, Debts: 4}
		diff := DiffCounts(previous, current)
		assert.Equal(t, 0, diff.Sales)
		assert.Equal(t, 0, diff.Total())
	})

	t.Run("identical censuses diff to zero", func(t *testing.T) {
		counts := RecordCounts{Sales: 2, Debts: 2, Checks: 2, Boletos: 2, EmployeePayments: 2, PixFees: 2, CashTransactions: 2}
		assert.Equal(t, RecordCounts{}, DiffCounts(counts, counts))
	})
}
