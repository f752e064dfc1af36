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

// GormSaleRepository implements ledger.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Sale, error) {
	var saleModels []models.SaleModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), "date", filter)
	if err := query.Order("date DESC").Find(&saleModels).Error; err != nil {
		return nil, err
	}
	sales := make([]ledger.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	return sales, nil
}

// FindByDateRange finds sales dated inside the range
func (r *GormSaleRepository) FindByDateRange(ctx context.Context, rng ledger.DateRange) ([]ledger.Sale, error) {
	if !rng.IsValid() {
		return []ledger.Sale{}, nil
	}
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", rng.Start.String(), rng.End.String()).
		Order("date ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	sales := make([]ledger.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	return sales, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *ledger.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a sale by ID
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of sales
func (r *GormSaleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SaleModel{}).Count(&count).Error
	return count, err
}

// applyRecordFilter applies the common date-range and pagination filter on
// the named date column.
func applyRecordFilter(query *gorm.DB, dateColumn string, filter ledger.RecordFilter) *gorm.DB {
	if filter.From != nil {
		query = query.Where(dateColumn+" >= ?", filter.From.String())
	}
	if filter.To != nil {
		query = query.Where(dateColumn+" <= ?", filter.To.String())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	return query
}
