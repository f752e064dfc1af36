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

// GormCheckRepository implements ledger.CheckRepository using GORM
type GormCheckRepository struct {
	db *gorm.DB
}

// NewGormCheckRepository creates a new GormCheckRepository
func NewGormCheckRepository(db *gorm.DB) *GormCheckRepository {
	return &GormCheckRepository{db: db}
}

// FindByID finds a check by its ID
func (r *GormCheckRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Check, error) {
	var model models.CheckModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all checks matching the filter
func (r *GormCheckRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Check, error) {
	var checkModels []models.CheckModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.CheckModel{}), "due_date", filter)
	if err := query.Order("due_date ASC").Find(&checkModels).Error; err != nil {
		return nil, err
	}
	return checksToDomain(checkModels), nil
}

// FindByDueDateRange finds checks due inside the range
func (r *GormCheckRepository) FindByDueDateRange(ctx context.Context, rng ledger.DateRange) ([]ledger.Check, error) {
	if !rng.IsValid() {
		return []ledger.Check{}, nil
	}
	var checkModels []models.CheckModel
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ?", rng.Start.String(), rng.End.String()).
		Order("due_date ASC").
		Find(&checkModels).Error; err != nil {
		return nil, err
	}
	return checksToDomain(checkModels), nil
}

// FindByStatus finds checks with the given status
func (r *GormCheckRepository) FindByStatus(ctx context.Context, status ledger.CheckStatus) ([]ledger.Check, error) {
	var checkModels []models.CheckModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("due_date ASC").
		Find(&checkModels).Error; err != nil {
		return nil, err
	}
	return checksToDomain(checkModels), nil
}

// Save creates or updates a check
func (r *GormCheckRepository) Save(ctx context.Context, check *ledger.Check) error {
	var model models.CheckModel
	model.FromDomain(check)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a check by ID
func (r *GormCheckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CheckModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of checks
func (r *GormCheckRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CheckModel{}).Count(&count).Error
	return count, err
}

func checksToDomain(checkModels []models.CheckModel) []ledger.Check {
	checks := make([]ledger.Check, len(checkModels))
	for i := range checkModels {
		checks[i] = *checkModels[i].ToDomain()
	}
	return checks
}
