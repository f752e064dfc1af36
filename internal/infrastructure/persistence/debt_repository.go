package persistence

import (
	"context"
	"errors"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDebtRepository implements ledger.DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByID finds a debt by its ID
func (r *GormDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all debts matching the filter
func (r *GormDebtRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Debt, error) {
	var debtModels []models.DebtModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.DebtModel{}), "date", filter)
	if err := query.Order("date DESC").Find(&debtModels).Error; err != nil {
		return nil, err
	}
	return debtsToDomain(debtModels), nil
}

// FindByDateRange finds debts dated inside the range
func (r *GormDebtRepository) FindByDateRange(ctx context.Context, rng ledger.DateRange) ([]ledger.Debt, error) {
	if !rng.IsValid() {
		return []ledger.Debt{}, nil
	}
	var debtModels []models.DebtModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", rng.Start.String(), rng.End.String()).
		Order("date ASC").
		Find(&debtModels).Error; err != nil {
		return nil, err
	}
	return debtsToDomain(debtModels), nil
}

// FindUnpaid finds all debts not yet marked paid
func (r *GormDebtRepository) FindUnpaid(ctx context.Context) ([]ledger.Debt, error) {
	var debtModels []models.DebtModel
	if err := r.db.WithContext(ctx).
		Where("is_paid = ?", false).
		Order("date ASC").
		Find(&debtModels).Error; err != nil {
		return nil, err
	}
	return debtsToDomain(debtModels), nil
}

// Save creates or updates a debt
func (r *GormDebtRepository) Save(ctx context.Context, debt *ledger.Debt) error {
	var model models.DebtModel
	model.FromDomain(debt)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a debt by ID
func (r *GormDebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DebtModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of debts
func (r *GormDebtRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DebtModel{}).Count(&count).Error
	return count, err
}

func debtsToDomain(debtModels []models.DebtModel) []ledger.Debt {
	debts := make([]ledger.Debt, len(debtModels))
	for i := range debtModels {
		debts[i] = *debtModels[i].ToDomain()
	}
	return debts
}
