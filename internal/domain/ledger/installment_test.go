package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandInstallments(t *testing.T) {
	anchor := MustParseDate("2024-01-01")

	t.Run("N installments with sequence 1..N", func(t *testing.T) {
		m := PaymentMethod{
			Type:             PaymentBoleto,
			Amount:           decimal.NewFromInt(300),
			Installments:     3,
			InstallmentValue: decimal.NewFromInt(100),
		}
		installments := ExpandInstallments(m, anchor)
		require.Len(t, installments, 3)
		for i, inst := range installments {
			assert.Equal(t, i+1, inst.Sequence)
			assert.True(t, decimal.NewFromInt(100).Equal(inst.Amount))
		}
	})

	t.Run("spacing uses explicit interval", func(t *testing.T) {
		m := PaymentMethod{
			Type:                PaymentBoleto,
			Amount:              decimal.NewFromInt(300),
			Installments:        3,
			InstallmentValue:    decimal.NewFromInt(100),
			InstallmentInterval: 15,
		}
		installments := ExpandInstallments(m, anchor)
		require.Len(t, installments, 3)
		assert.Equal(t, MustParseDate("2024-01-01"), installments[0].DueDate)
		assert.Equal(t, MustParseDate("2024-01-16"), installments[1].DueDate)
		assert.Equal(t, MustParseDate("2024-01-31"), installments[2].DueDate)
	})

	t.Run("spacing defaults to 30 days", func(t *testing.T) {
		m := PaymentMethod{
			Type:             PaymentCreditCard,
			Amount:           decimal.NewFromInt(600),
			Installments:     3,
			InstallmentValue: decimal.NewFromInt(200),
		}
		installments := ExpandInstallments(m, anchor)
		require.Len(t, installments, 3)
		assert.Equal(t, MustParseDate("2024-01-31"), installments[1].DueDate)
		assert.Equal(t, MustParseDate("2024-03-01"), installments[2].DueDate)
	})

	t.Run("base date precedence: firstDueDate over startDate over anchor", func(t *testing.T) {
		m := PaymentMethod{
			Type:         PaymentBoleto,
			Amount:       decimal.NewFromInt(100),
			FirstDueDate: MustParseDate("2024-02-15"),
			StartDate:    MustParseDate("2024-02-01"),
		}
		installments := ExpandInstallments(m, anchor)
		require.Len(t, installments, 1)
		assert.Equal(t, MustParseDate("2024-02-15"), installments[0].DueDate)

		m.FirstDueDate = Date{}
		assert.Equal(t, MustParseDate("2024-02-01"), ExpandInstallments(m, anchor)[0].DueDate)

		m.StartDate = Date{}
		assert.Equal(t, anchor, ExpandInstallments(m, anchor)[0].DueDate)
	})

	t.Run("zero or negative count degrades to a single installment", func(t *testing.T) {
		for _, count := range []int{0, -2} {
			m := PaymentMethod{
				Type:         PaymentCash,
				Amount:       decimal.NewFromInt(250),
				Installments: count,
			}
			installments := ExpandInstallments(m, anchor)
			require.Len(t, installments, 1)
			assert.Equal(t, 1, installments[0].Sequence)
			assert.Equal(t, anchor, installments[0].DueDate)
			assert.True(t, decimal.NewFromInt(250).Equal(installments[0].Amount))
		}
	})

	t.Run("single installment always carries the method amount", func(t *testing.T) {
		m := PaymentMethod{
			Type:             PaymentCash,
			Amount:           decimal.NewFromInt(80),
			Installments:     1,
			InstallmentValue: decimal.NewFromInt(999),
		}
		installments := ExpandInstallments(m, anchor)
		require.Len(t, installments, 1)
		assert.True(t, decimal.NewFromInt(80).Equal(installments[0].Amount))
	})
}

func TestExpandInstallmentsAmountFallback(t *testing.T) {
	anchor := MustParseDate("2024-01-01")
	m := PaymentMethod{
		Type:         PaymentCreditCard,
		Amount:       decimal.NewFromInt(900),
		Installments: 3,
	}

	t.Run("default falls back to the full method amount", func(t *testing.T) {
		for _, inst := range ExpandInstallments(m, anchor) {
			assert.True(t, decimal.NewFromInt(900).Equal(inst.Amount))
		}
	})

	t.Run("zero fallback emits zero-amount installments", func(t *testing.T) {
		installments := ExpandInstallmentsWith(m, anchor, ExpandOptions{Fallback: FallbackZero})
		require.Len(t, installments, 3)
		for _, inst := range installments {
			assert.True(t, inst.Amount.IsZero())
		}
	})

	t.Run("explicit installment value wins under either option", func(t *testing.T) {
		withValue := m
		withValue.InstallmentValue = decimal.NewFromInt(300)
		for _, opts := range []ExpandOptions{{}, {Fallback: FallbackZero}} {
			for _, inst := range ExpandInstallmentsWith(withValue, anchor, opts) {
				assert.True(t, decimal.NewFromInt(300).Equal(inst.Amount))
			}
		}
	})
}
