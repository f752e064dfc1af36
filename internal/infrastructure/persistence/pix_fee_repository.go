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

// GormPixFeeRepository implements ledger.PixFeeRepository using GORM
type GormPixFeeRepository struct {
	db *gorm.DB
}

// NewGormPixFeeRepository creates a new GormPixFeeRepository
func NewGormPixFeeRepository(db *gorm.DB) *GormPixFeeRepository {
	return &GormPixFeeRepository{db: db}
}

// FindByID finds a pix fee by its ID
func (r *GormPixFeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PixFee, error) {
	var model models.PixFeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all pix fees matching the filter
func (r *GormPixFeeRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.PixFee, error) {
	var feeModels []models.PixFeeModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.PixFeeModel{}), "date", filter)
	if err := query.Order("date DESC").Find(&feeModels).Error; err != nil {
		return nil, err
	}
	return pixFeesToDomain(feeModels), nil
}

// FindByDateRange finds pix fees dated inside the range
func (r *GormPixFeeRepository) FindByDateRange(ctx context.Context, rng ledger.DateRange) ([]ledger.PixFee, error) {
	if !rng.IsValid() {
		return []ledger.PixFee{}, nil
	}
	var feeModels []models.PixFeeModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", rng.Start.String(), rng.End.String()).
		Order("date ASC").
		Find(&feeModels).Error; err != nil {
		return nil, err
	}
	return pixFeesToDomain(feeModels), nil
}

// Save creates or updates a pix fee
func (r *GormPixFeeRepository) Save(ctx context.Context, fee *ledger.PixFee) error {
	var model models.PixFeeModel
	model.FromDomain(fee)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a pix fee by ID
func (r *GormPixFeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PixFeeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of pix fees
func (r *GormPixFeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PixFeeModel{}).Count(&count).Error
	return count, err
}

func pixFeesToDomain(feeModels []models.PixFeeModel) []ledger.PixFee {
	fees := make([]ledger.PixFee, len(feeModels))
	for i := range feeModels {
		fees[i] = *feeModels[i].ToDomain()
	}
	return fees
}
