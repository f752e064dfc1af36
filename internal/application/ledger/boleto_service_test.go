package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

func pendingBoleto(value int64) *ledger.Boleto {
	return &ledger.Boleto{
		BaseEntity: shared.NewBaseEntity(),
		Client:     "Cliente A",
		Value:      decimal.NewFromInt(value),
		DueDate:    day(20),
		Status:     ledger.BoletoStatusPending,
	}
}

func TestBoletoService_MarkBoletoCleared(t *testing.T) {
	ctx := context.Background()

	t.Run("net amount enters cash", func(t *testing.T) {
		boleto := pendingBoleto(1000)
		repo := new(MockBoletoRepository)
		repo.On("FindByID", ctx, boleto.ID).Return(boleto, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*ledger.Boleto")).Return(nil)

		store := newFakeCashStore()
		service := NewBoletoService(repo, NewCashService(store))

		cleared, err := service.MarkBoletoCleared(ctx, boleto.ID, ClearBoletoRequest{
			PaymentDate: day(21),
			FinalAmount: decimal.NewFromInt(1050),
			NotaryCosts: decimal.NewFromInt(30),
		})
		require.NoError(t, err)

		assert.Equal(t, ledger.BoletoStatusCleared, cleared.Status)

		balance, _ := store.GetBalance(ctx)
		assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(1020)), "final amount minus notary costs")
	})

	t.Run("company payable pays out its face value", func(t *testing.T) {
		boleto := pendingBoleto(400)
		boleto.IsCompanyPayable = true
		boleto.CompanyName = "Banco X"

		repo := new(MockBoletoRepository)
		repo.On("FindByID", ctx, boleto.ID).Return(boleto, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		store := newFakeCashStore()
		store.balance.CurrentBalance = decimal.NewFromInt(500)
		service := NewBoletoService(repo, NewCashService(store))

		_, err := service.MarkBoletoCleared(ctx, boleto.ID, ClearBoletoRequest{PaymentDate: day(20)})
		require.NoError(t, err)

		balance, _ := store.GetBalance(ctx)
		assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(100)))

		transactions, _ := store.FindTransactions(ctx, ledger.RecordFilter{})
		require.Len(t, transactions, 1)
		assert.Equal(t, ledger.CashOutflow, transactions[0].Type)
	})

	t.Run("clearing twice is rejected", func(t *testing.T) {
		boleto := pendingBoleto(400)
		boleto.Status = ledger.BoletoStatusCleared

		repo := new(MockBoletoRepository)
		repo.On("FindByID", ctx, boleto.ID).Return(boleto, nil)

		service := NewBoletoService(repo, NewCashService(newFakeCashStore()))

		_, err := service.MarkBoletoCleared(ctx, boleto.ID, ClearBoletoRequest{PaymentDate: day(21)})
		assert.ErrorIs(t, err, shared.ErrAlreadySettled)
	})

	t.Run("cancelled boletos cannot be cleared", func(t *testing.T) {
		boleto := pendingBoleto(400)
		boleto.Status = ledger.BoletoStatusCancelled

		repo := new(MockBoletoRepository)
		repo.On("FindByID", ctx, boleto.ID).Return(boleto, nil)

		service := NewBoletoService(repo, NewCashService(newFakeCashStore()))

		_, err := service.MarkBoletoCleared(ctx, boleto.ID, ClearBoletoRequest{PaymentDate: day(21)})
		assert.Error(t, err)
	})
}

func TestBoletoService_CreateBoleto(t *testing.T) {
	ctx := context.Background()

	t.Run("overdue boletos can be registered directly", func(t *testing.T) {
		repo := new(MockBoletoRepository)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		service := NewBoletoService(repo, NewCashService(newFakeCashStore()))

		boleto, err := service.CreateBoleto(ctx, CreateBoletoRequest{
			Client:  "Cliente C",
			Value:   decimal.NewFromInt(80),
			DueDate: day(5),
			Status:  "overdue",
		})
		require.NoError(t, err)
		assert.Equal(t, ledger.BoletoStatusOverdue, boleto.Status)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		service := NewBoletoService(new(MockBoletoRepository), NewCashService(newFakeCashStore()))

		_, err := service.CreateBoleto(ctx, CreateBoletoRequest{
			Client:  "Cliente C",
			Value:   decimal.NewFromInt(80),
			DueDate: day(5),
			Status:  "lost",
		})
		assert.Error(t, err)
	})
}
