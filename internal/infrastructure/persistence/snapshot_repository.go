package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormSnapshotRepository implements ledger.SnapshotRepository using GORM.
// It loads the full record snapshot the projection engine consumes in a
// single pass.
type GormSnapshotRepository struct {
	db       *gorm.DB
	sales    *GormSaleRepository
	debts    *GormDebtRepository
	checks   *GormCheckRepository
	boletos  *GormBoletoRepository
	payments *GormEmployeePaymentRepository
	pixFees  *GormPixFeeRepository
	cash     *GormCashRepository
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{
		db:       db,
		sales:    NewGormSaleRepository(db),
		debts:    NewGormDebtRepository(db),
		checks:   NewGormCheckRepository(db),
		boletos:  NewGormBoletoRepository(db),
		payments: NewGormEmployeePaymentRepository(db),
		pixFees:  NewGormPixFeeRepository(db),
		cash:     NewGormCashRepository(db),
	}
}

// LoadRecordSet fetches every record type in one snapshot.
func (r *GormSnapshotRepository) LoadRecordSet(ctx context.Context) (ledger.RecordSet, error) {
	var (
		set ledger.RecordSet
		err error
	)
	if set.Sales, err = r.sales.FindAll(ctx, ledger.RecordFilter{}); err != nil {
		return ledger.RecordSet{}, fmt.Errorf("loading sales: %w", err)
	}
	if set.Debts, err = r.debts.FindAll(ctx, ledger.RecordFilter{}); err != nil {
		return ledger.RecordSet{}, fmt.Errorf("loading debts: %w", err)
	}
	if set.Checks, err = r.checks.FindAll(ctx, ledger.RecordFilter{}); err != nil {
		return ledger.RecordSet{}, fmt.Errorf("loading checks: %w", err)
	}
	if set.Boletos, err = r.boletos.FindAll(ctx, ledger.RecordFilter{}); err != nil {
		return ledger.RecordSet{}, fmt.Errorf("loading boletos: %w", err)
	}
	if set.EmployeePayments, err = r.payments.FindAll(ctx, ledger.RecordFilter{}); err != nil {
		return ledger.RecordSet{}, fmt.Errorf("loading employee payments: %w", err)
	}
	if set.PixFees, err = r.pixFees.FindAll(ctx, ledger.RecordFilter{}); err != nil {
		return ledger.RecordSet{}, fmt.Errorf("loading pix fees: %w", err)
	}
	if set.CashTransactions, err = r.cash.FindTransactions(ctx, ledger.RecordFilter{}); err != nil {
		return ledger.RecordSet{}, fmt.Errorf("loading cash transactions: %w", err)
	}
	return set, nil
}

// RecordsVersion returns a token derived from per-table row counts and
// latest modification times. Any insert, update or delete changes it, so
// it is safe to key memoized summaries on.
func (r *GormSnapshotRepository) RecordsVersion(ctx context.Context) (string, error) {
	tables := []string{
		"sales", "debts", "checks", "boletos",
		"employee_payments", "pix_fees", "cash_transactions",
	}

	var parts []string
	for _, table := range tables {
		var row struct {
			Count   int64
			Updated *time.Time
		}
		query := fmt.Sprintf("SELECT COUNT(*) AS count, MAX(updated_at) AS updated FROM %s", table)
		if err := r.db.WithContext(ctx).Raw(query).Scan(&row).Error; err != nil {
			return "", fmt.Errorf("versioning %s: %w", table, err)
		}
		updated := ""
		if row.Updated != nil {
			updated = row.Updated.UTC().Format(time.RFC3339Nano)
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%s", table, row.Count, updated))
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:8]), nil
}
