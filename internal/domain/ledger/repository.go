package ledger

import (
	"context"

	"github.com/google/uuid"
)

// RecordFilter defines common filtering options for record queries
type RecordFilter struct {
	From   *Date // Filter by record date range start
	To     *Date // Filter by record date range end
	Limit  int
	Offset int
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter RecordFilter) ([]Sale, error)
	FindByDateRange(ctx context.Context, r DateRange) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// DebtRepository defines the interface for debt persistence
type DebtRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)
	FindAll(ctx context.Context, filter RecordFilter) ([]Debt, error)
	FindByDateRange(ctx context.Context, r DateRange) ([]Debt, error)
	FindUnpaid(ctx context.Context) ([]Debt, error)
	Save(ctx context.Context, debt *Debt) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// CheckRepository defines the interface for check persistence
type CheckRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Check, error)
	FindAll(ctx context.Context, filter RecordFilter) ([]Check, error)
	FindByDueDateRange(ctx context.Context, r DateRange) ([]Check, error)
	FindByStatus(ctx context.Context, status CheckStatus) ([]Check, error)
	Save(ctx context.Context, check *Check) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// BoletoRepository defines the interface for boleto persistence
type BoletoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Boleto, error)
	FindAll(ctx context.Context, filter RecordFilter) ([]Boleto, error)
	FindByDueDateRange(ctx context.Context, r DateRange) ([]Boleto, error)
	FindByStatus(ctx context.Context, status BoletoStatus) ([]Boleto, error)
	Save(ctx context.Context, boleto *Boleto) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// EmployeePaymentRepository defines the interface for salary payment persistence
type EmployeePaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeePayment, error)
	FindAll(ctx context.Context, filter RecordFilter) ([]EmployeePayment, error)
	FindByDateRange(ctx context.Context, r DateRange) ([]EmployeePayment, error)
	Save(ctx context.Context, payment *EmployeePayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// PixFeeRepository defines the interface for pix fee persistence
type PixFeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PixFee, error)
	FindAll(ctx context.Context, filter RecordFilter) ([]PixFee, error)
	FindByDateRange(ctx context.Context, r DateRange) ([]PixFee, error)
	Save(ctx context.Context, fee *PixFee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// CashRepository defines the interface for cash transactions and the
// balance singleton
type CashRepository interface {
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*CashTransaction, error)
	FindTransactions(ctx context.Context, filter RecordFilter) ([]CashTransaction, error)
	FindTransactionsByDateRange(ctx context.Context, r DateRange) ([]CashTransaction, error)
	SaveTransaction(ctx context.Context, tx *CashTransaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	CountTransactions(ctx context.Context) (int64, error)

	// GetBalance returns the balance singleton, creating a zero-value row
	// on first access.
	GetBalance(ctx context.Context) (*CashBalance, error)

	// ReplaceBalance overwrites the stored balance with the given value.
	// The write is a whole-value replacement, never a delta.
	ReplaceBalance(ctx context.Context, balance *CashBalance) error
}

// SnapshotRepository loads the full record snapshot the projection engine
// consumes
type SnapshotRepository interface {
	// LoadRecordSet fetches every record type in one snapshot.
	LoadRecordSet(ctx context.Context) (RecordSet, error)

	// RecordsVersion returns a token that changes whenever any record
	// changes, used to key memoized summaries.
	RecordsVersion(ctx context.Context) (string, error)
}
