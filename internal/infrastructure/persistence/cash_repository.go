package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashRepository implements ledger.CashRepository using GORM
type GormCashRepository struct {
	db *gorm.DB
}

// NewGormCashRepository creates a new GormCashRepository
func NewGormCashRepository(db *gorm.DB) *GormCashRepository {
	return &GormCashRepository{db: db}
}

// FindTransactionByID finds a cash transaction by its ID
func (r *GormCashRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*ledger.CashTransaction, error) {
	var model models.CashTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindTransactions finds all cash transactions matching the filter
func (r *GormCashRepository) FindTransactions(ctx context.Context, filter ledger.RecordFilter) ([]ledger.CashTransaction, error) {
	var txModels []models.CashTransactionModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.CashTransactionModel{}), "date", filter)
	if err := query.Order("date DESC").Find(&txModels).Error; err != nil {
		return nil, err
	}
	return cashTransactionsToDomain(txModels), nil
}

// FindTransactionsByDateRange finds cash transactions dated inside the range
func (r *GormCashRepository) FindTransactionsByDateRange(ctx context.Context, rng ledger.DateRange) ([]ledger.CashTransaction, error) {
	if !rng.IsValid() {
		return []ledger.CashTransaction{}, nil
	}
	var txModels []models.CashTransactionModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", rng.Start.String(), rng.End.String()).
		Order("date ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	return cashTransactionsToDomain(txModels), nil
}

// SaveTransaction creates or updates a cash transaction
func (r *GormCashRepository) SaveTransaction(ctx context.Context, tx *ledger.CashTransaction) error {
	var model models.CashTransactionModel
	model.FromDomain(tx)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteTransaction removes a cash transaction by ID
func (r *GormCashRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CashTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountTransactions returns the total number of cash transactions
func (r *GormCashRepository) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CashTransactionModel{}).Count(&count).Error
	return count, err
}

// GetBalance returns the balance singleton, creating a zero-value row on
// first access.
func (r *GormCashRepository) GetBalance(ctx context.Context) (*ledger.CashBalance, error) {
	var model models.CashBalanceModel
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		balance := &ledger.CashBalance{
			BaseEntity:     shared.NewBaseEntity(),
			CurrentBalance: decimal.Zero,
			InitialBalance: decimal.Zero,
			InitialDate:    ledger.Date{Year: now.Year(), Month: now.Month(), Day: now.Day()},
			LastUpdated:    now,
		}
		model.FromDomain(balance)
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return nil, err
		}
		return balance, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// ReplaceBalance overwrites the stored balance with the given value. The
// write replaces the whole row so retried writes cannot compound deltas.
func (r *GormCashRepository) ReplaceBalance(ctx context.Context, balance *ledger.CashBalance) error {
	var model models.CashBalanceModel
	model.FromDomain(balance)
	model.LastUpdated = time.Now()
	return r.db.WithContext(ctx).Save(&model).Error
}

func cashTransactionsToDomain(txModels []models.CashTransactionModel) []ledger.CashTransaction {
	transactions := make([]ledger.CashTransaction, len(txModels))
	for i := range txModels {
		transactions[i] = *txModels[i].ToDomain()
	}
	return transactions
}
