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

// GormBoletoRepository implements ledger.BoletoRepository using GORM
type GormBoletoRepository struct {
	db *gorm.DB
}

// NewGormBoletoRepository creates a new GormBoletoRepository
func NewGormBoletoRepository(db *gorm.DB) *GormBoletoRepository {
	return &GormBoletoRepository{db: db}
}

// FindByID finds a boleto by its ID
func (r *GormBoletoRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Boleto, error) {
	var model models.BoletoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all boletos matching the filter
func (r *GormBoletoRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Boleto, error) {
	var boletoModels []models.BoletoModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.BoletoModel{}), "due_date", filter)
	if err := query.Order("due_date ASC").Find(&boletoModels).Error; err != nil {
		return nil, err
	}
	return boletosToDomain(boletoModels), nil
}

// FindByDueDateRange finds boletos due inside the range
func (r *GormBoletoRepository) FindByDueDateRange(ctx context.Context, rng ledger.DateRange) ([]ledger.Boleto, error) {
	if !rng.IsValid() {
		return []ledger.Boleto{}, nil
	}
	var boletoModels []models.BoletoModel
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ?", rng.Start.String(), rng.End.String()).
		Order("due_date ASC").
		Find(&boletoModels).Error; err != nil {
		return nil, err
	}
	return boletosToDomain(boletoModels), nil
}

// FindByStatus finds boletos with the given status
func (r *GormBoletoRepository) FindByStatus(ctx context.Context, status ledger.BoletoStatus) ([]ledger.Boleto, error) {
	var boletoModels []models.BoletoModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("due_date ASC").
		Find(&boletoModels).Error; err != nil {
		return nil, err
	}
	return boletosToDomain(boletoModels), nil
}

// Save creates or updates a boleto
func (r *GormBoletoRepository) Save(ctx context.Context, boleto *ledger.Boleto) error {
	var model models.BoletoModel
	model.FromDomain(boleto)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a boleto by ID
func (r *GormBoletoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BoletoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of boletos
func (r *GormBoletoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BoletoModel{}).Count(&count).Error
	return count, err
}

func boletosToDomain(boletoModels []models.BoletoModel) []ledger.Boleto {
	boletos := make([]ledger.Boleto, len(boletoModels))
	for i := range boletoModels {
		boletos[i] = *boletoModels[i].ToDomain()
	}
	return boletos
}
