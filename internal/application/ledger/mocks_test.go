package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockSnapshotRepository is a mock implementation of ledger.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) LoadRecordSet(ctx context.Context) (ledger.RecordSet, error) {
	args := m.Called(ctx)
	return args.Get(0).(ledger.RecordSet), args.Error(1)
}

func (m *MockSnapshotRepository) RecordsVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockCheckRepository is a mock implementation of ledger.CheckRepository
type MockCheckRepository struct {
	mock.Mock
}

func (m *MockCheckRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Check, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Check), args.Error(1)
}

func (m *MockCheckRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Check, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Check), args.Error(1)
}

func (m *MockCheckRepository) FindByDueDateRange(ctx context.Context, r ledger.DateRange) ([]ledger.Check, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]ledger.Check), args.Error(1)
}

func (m *MockCheckRepository) FindByStatus(ctx context.Context, status ledger.CheckStatus) ([]ledger.Check, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]ledger.Check), args.Error(1)
}

func (m *MockCheckRepository) Save(ctx context.Context, check *ledger.Check) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockCheckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCheckRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockBoletoRepository is a mock implementation of ledger.BoletoRepository
type MockBoletoRepository struct {
	mock.Mock
}

func (m *MockBoletoRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Boleto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Boleto), args.Error(1)
}

func (m *MockBoletoRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Boleto, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Boleto), args.Error(1)
}

func (m *MockBoletoRepository) FindByDueDateRange(ctx context.Context, r ledger.DateRange) ([]ledger.Boleto, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]ledger.Boleto), args.Error(1)
}

func (m *MockBoletoRepository) FindByStatus(ctx context.Context, status ledger.BoletoStatus) ([]ledger.Boleto, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]ledger.Boleto), args.Error(1)
}

func (m *MockBoletoRepository) Save(ctx context.Context, boleto *ledger.Boleto) error {
	args := m.Called(ctx, boleto)
	return args.Error(0)
}

func (m *MockBoletoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoletoRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSaleRepository is a mock implementation of ledger.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByDateRange(ctx context.Context, r ledger.DateRange) ([]ledger.Sale, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]ledger.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *ledger.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// =============================================================================
// In-Memory Cash Store
// =============================================================================

// fakeCashStore is an in-memory ledger.CashRepository. The cash write path
// mutates the balance across calls, which is awkward to express with
// expectation-based mocks.
type fakeCashStore struct {
	transactions map[uuid.UUID]*ledger.CashTransaction
	balance      *ledger.CashBalance
	replacements int
}

func newFakeCashStore() *fakeCashStore {
	return &fakeCashStore{
		transactions: make(map[uuid.UUID]*ledger.CashTransaction),
		balance: &ledger.CashBalance{
			BaseEntity:     shared.NewBaseEntity(),
			CurrentBalance: decimal.Zero,
			InitialBalance: decimal.Zero,
		},
	}
}

func (f *fakeCashStore) FindTransactionByID(_ context.Context, id uuid.UUID) (*ledger.CashTransaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

func (f *fakeCashStore) FindTransactions(_ context.Context, _ ledger.RecordFilter) ([]ledger.CashTransaction, error) {
	out := make([]ledger.CashTransaction, 0, len(f.transactions))
	for _, tx := range f.transactions {
		out = append(out, *tx)
	}
	return out, nil
}

func (f *fakeCashStore) FindTransactionsByDateRange(_ context.Context, r ledger.DateRange) ([]ledger.CashTransaction, error) {
	out := make([]ledger.CashTransaction, 0)
	for _, tx := range f.transactions {
		if r.Contains(tx.Date) {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (f *fakeCashStore) SaveTransaction(_ context.Context, tx *ledger.CashTransaction) error {
	f.transactions[tx.ID] = tx
	return nil
}

func (f *fakeCashStore) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	if _, ok := f.transactions[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.transactions, id)
	return nil
}

func (f *fakeCashStore) CountTransactions(_ context.Context) (int64, error) {
	return int64(len(f.transactions)), nil
}

func (f *fakeCashStore) GetBalance(_ context.Context) (*ledger.CashBalance, error) {
	copied := *f.balance
	return &copied, nil
}

func (f *fakeCashStore) ReplaceBalance(_ context.Context, balance *ledger.CashBalance) error {
	copied := *balance
	f.balance = &copied
	f.replacements++
	return nil
}
