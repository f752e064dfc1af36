package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/infrastructure/cache"
)

func day(d int) ledger.Date {
	return ledger.Date{Year: 2024, Month: time.March, Day: d}
}

func marchRange() ledger.DateRange {
	return ledger.NewDateRange(day(1), day(31))
}

func projectionRecordSet() ledger.RecordSet {
	return ledger.RecordSet{
		Sales: []ledger.Sale{
			{
				BaseEntity: shared.NewBaseEntity(),
				Client:     "Maria",
				Date:       day(10),
				TotalValue: decimal.NewFromInt(300),
				PaymentMethods: ledger.PaymentMethods{
					{Type: ledger.PaymentCash, Amount: decimal.NewFromInt(300)},
				},
				Status: ledger.SaleStatusPaid,
			},
		},
		Checks: []ledger.Check{
			{
				BaseEntity: shared.NewBaseEntity(),
				Client:     "Joao",
				Value:      decimal.NewFromInt(500),
				DueDate:    day(15),
				Status:     ledger.CheckStatusCleared,
			},
			{
				BaseEntity: shared.NewBaseEntity(),
				Client:     "Pedro",
				Value:      decimal.NewFromInt(200),
				DueDate:    day(20),
				Status:     ledger.CheckStatusPending,
			},
			{
				BaseEntity: shared.NewBaseEntity(),
				Client:     "Own",
				Value:      decimal.NewFromInt(150),
				DueDate:    day(25),
				Status:     ledger.CheckStatusPending,
				IsOwnCheck: true,
			},
		},
		Boletos: []ledger.Boleto{
			{
				BaseEntity: shared.NewBaseEntity(),
				Client:     "Atrasado",
				Value:      decimal.NewFromInt(80),
				DueDate:    day(5),
				Status:     ledger.BoletoStatusOverdue,
			},
		},
	}
}

func TestProjectionService_GetPeriodSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates the snapshot over the range", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("RecordsVersion", ctx).Return("", errors.New("unavailable"))
		snapshots.On("LoadRecordSet", ctx).Return(projectionRecordSet(), nil)

		service := NewProjectionService(snapshots, newFakeCashStore())

		summary, err := service.GetPeriodSummary(ctx, marchRange())
		require.NoError(t, err)

		assert.True(t, summary.Totals.Sales.Equal(decimal.NewFromInt(300)))
		assert.True(t, summary.Totals.Received.Equal(decimal.NewFromInt(800)), "cash sale plus cleared check")
		assert.True(t, summary.Totals.Paid.IsZero())
		assert.True(t, summary.Totals.NetResult.Equal(decimal.NewFromInt(800)))
	})

	t.Run("propagates snapshot load failures", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("RecordsVersion", ctx).Return("v1", nil)
		snapshots.On("LoadRecordSet", ctx).Return(ledger.RecordSet{}, errors.New("db down"))

		service := NewProjectionService(snapshots, newFakeCashStore())

		_, err := service.GetPeriodSummary(ctx, marchRange())
		assert.Error(t, err)
	})

	t.Run("serves repeated queries from the cache", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("RecordsVersion", ctx).Return("v1", nil)
		snapshots.On("LoadRecordSet", ctx).Return(projectionRecordSet(), nil)

		memo := cache.NewInMemorySummaryCache()
		defer memo.Close()

		service := NewProjectionService(snapshots, newFakeCashStore(), WithSummaryCache(memo))

		first, err := service.GetPeriodSummary(ctx, marchRange())
		require.NoError(t, err)
		second, err := service.GetPeriodSummary(ctx, marchRange())
		require.NoError(t, err)

		assert.True(t, first.Totals.Received.Equal(second.Totals.Received))
		snapshots.AssertNumberOfCalls(t, "LoadRecordSet", 1)
	})

	t.Run("recomputes when the records version changes", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("RecordsVersion", ctx).Return("v1", nil).Once()
		snapshots.On("RecordsVersion", ctx).Return("v2", nil).Once()
		snapshots.On("LoadRecordSet", ctx).Return(projectionRecordSet(), nil)

		memo := cache.NewInMemorySummaryCache()
		defer memo.Close()

		service := NewProjectionService(snapshots, newFakeCashStore(), WithSummaryCache(memo))

		_, err := service.GetPeriodSummary(ctx, marchRange())
		require.NoError(t, err)
		_, err = service.GetPeriodSummary(ctx, marchRange())
		require.NoError(t, err)

		snapshots.AssertNumberOfCalls(t, "LoadRecordSet", 2)
	})
}

func TestProjectionService_GetMonthGrid(t *testing.T) {
	ctx := context.Background()

	snapshots := new(MockSnapshotRepository)
	snapshots.On("RecordsVersion", ctx).Return("v1", nil)
	snapshots.On("LoadRecordSet", ctx).Return(projectionRecordSet(), nil)

	service := NewProjectionService(snapshots, newFakeCashStore())

	grid, err := service.GetMonthGrid(ctx, ledger.YearMonth{Year: 2024, Month: time.March})
	require.NoError(t, err)

	assert.Len(t, grid.Days, ledger.MonthGridCells)
	assert.Equal(t, ledger.YearMonth{Year: 2024, Month: time.March}, grid.Month)
}

func TestProjectionService_Schedules(t *testing.T) {
	ctx := context.Background()

	newService := func() *ProjectionService {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("RecordsVersion", ctx).Return("v1", nil)
		snapshots.On("LoadRecordSet", ctx).Return(projectionRecordSet(), nil)
		return NewProjectionService(snapshots, newFakeCashStore())
	}

	t.Run("receivables keep pending inflows only", func(t *testing.T) {
		events, err := newService().ListReceivables(ctx, marchRange())
		require.NoError(t, err)

		require.Len(t, events, 2, "pending third-party check and overdue boleto")
		for _, ev := range events {
			assert.NotEqual(t, ledger.VariantPayable, ev.Variant)
			assert.NotEqual(t, ledger.EventReceived, ev.Kind)
		}
	})

	t.Run("payables keep company obligations only", func(t *testing.T) {
		events, err := newService().ListPayables(ctx, marchRange())
		require.NoError(t, err)

		require.Len(t, events, 1)
		assert.Equal(t, ledger.VariantPayable, events[0].Variant)
		assert.True(t, events[0].Amount.Equal(decimal.NewFromInt(150)))
	})
}

func TestProjectionService_PayableBoletos(t *testing.T) {
	ctx := context.Background()

	debtID := uuid.New()
	set := ledger.RecordSet{
		Boletos: []ledger.Boleto{
			{
				BaseEntity:       shared.NewBaseEntity(),
				Value:            decimal.NewFromInt(600),
				DueDate:          day(12),
				Status:           ledger.BoletoStatusOverdue,
				IsCompanyPayable: true,
				CompanyName:      "Fornecedor XYZ",
			},
			{
				BaseEntity: shared.NewBaseEntity(),
				Client:     "Cliente G",
				Value:      decimal.NewFromInt(300),
				DueDate:    day(18),
				Status:     ledger.BoletoStatusPending,
				DebtID:     &debtID,
			},
		},
	}

	newService := func() *ProjectionService {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("RecordsVersion", ctx).Return("v1", nil)
		snapshots.On("LoadRecordSet", ctx).Return(set, nil)
		store := newFakeCashStore()
		store.balance.CurrentBalance = decimal.NewFromInt(1000)
		return NewProjectionService(snapshots, store)
	}

	t.Run("company obligations never surface as receivables", func(t *testing.T) {
		events, err := newService().ListReceivables(ctx, marchRange())
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("overdue and debt-linked boletos land in payables", func(t *testing.T) {
		events, err := newService().ListPayables(ctx, marchRange())
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, ledger.VariantPayable, events[0].Variant)
		assert.Equal(t, ledger.VariantUsedForDebt, events[1].Variant)
	})

	t.Run("preview projects the obligations as cash out", func(t *testing.T) {
		preview, err := newService().PreviewCash(ctx, marchRange())
		require.NoError(t, err)

		// 1000 - 600 (overdue payable) - 300 (boleto committed to a debt)
		assert.Equal(t, "1000", preview.CurrentBalance)
		assert.Equal(t, "100", preview.ProjectedBalance)
	})
}

func TestProjectionService_Cash(t *testing.T) {
	ctx := context.Background()

	t.Run("cash position is the stored balance as-is", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		store := newFakeCashStore()
		store.balance.CurrentBalance = decimal.NewFromInt(1234)

		service := NewProjectionService(snapshots, store)

		balance, err := service.GetCashPosition(ctx)
		require.NoError(t, err)
		assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(1234)))
	})

	t.Run("preview settles the schedule hypothetically", func(t *testing.T) {
		snapshots := new(MockSnapshotRepository)
		snapshots.On("RecordsVersion", ctx).Return("v1", nil)
		snapshots.On("LoadRecordSet", ctx).Return(projectionRecordSet(), nil)

		store := newFakeCashStore()
		store.balance.CurrentBalance = decimal.NewFromInt(1000)

		service := NewProjectionService(snapshots, store)

		preview, err := service.PreviewCash(ctx, marchRange())
		require.NoError(t, err)

		// 1000 + 200 (pending check) + 80 (overdue boleto) - 150 (own check)
		assert.Equal(t, "1000", preview.CurrentBalance)
		assert.Equal(t, "1130", preview.ProjectedBalance)
		assert.Len(t, preview.Events, 3)
		assert.Zero(t, store.replacements, "preview must not write")
	})
}

func TestProjectionService_DiffCounts(t *testing.T) {
	ctx := context.Background()

	snapshots := new(MockSnapshotRepository)
	snapshots.On("LoadRecordSet", ctx).Return(projectionRecordSet(), nil)

	service := NewProjectionService(snapshots, newFakeCashStore())

	current, err := service.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Sales)
	assert.Equal(t, 3, current.Checks)
	assert.Equal(t, 1, current.Boletos)

	diff, err := service.DiffCounts(ctx, ledger.RecordCounts{Sales: 0, Checks: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, diff.Sales)
	assert.Equal(t, 0, diff.Checks, "shrinkage clamps to zero")
}
