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

// GormEmployeePaymentRepository implements ledger.EmployeePaymentRepository using GORM
type GormEmployeePaymentRepository struct {
	db *gorm.DB
}

// NewGormEmployeePaymentRepository creates a new GormEmployeePaymentRepository
func NewGormEmployeePaymentRepository(db *gorm.DB) *GormEmployeePaymentRepository {
	return &GormEmployeePaymentRepository{db: db}
}

// FindByID finds a salary payment by its ID
func (r *GormEmployeePaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.EmployeePayment, error) {
	var model models.EmployeePaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all salary payments matching the filter
func (r *GormEmployeePaymentRepository) FindAll(ctx context.Context, filter ledger.RecordFilter) ([]ledger.EmployeePayment, error) {
	var paymentModels []models.EmployeePaymentModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.EmployeePaymentModel{}), "payment_date", filter)
	if err := query.Order("payment_date DESC").Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return employeePaymentsToDomain(paymentModels), nil
}

// FindByDateRange finds salary payments dated inside the range
func (r *GormEmployeePaymentRepository) FindByDateRange(ctx context.Context, rng ledger.DateRange) ([]ledger.EmployeePayment, error) {
	if !rng.IsValid() {
		return []ledger.EmployeePayment{}, nil
	}
	var paymentModels []models.EmployeePaymentModel
	if err := r.db.WithContext(ctx).
		Where("payment_date >= ? AND payment_date <= ?", rng.Start.String(), rng.End.String()).
		Order("payment_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return employeePaymentsToDomain(paymentModels), nil
}

// Save creates or updates a salary payment
func (r *GormEmployeePaymentRepository) Save(ctx context.Context, payment *ledger.EmployeePayment) error {
	var model models.EmployeePaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a salary payment by ID
func (r *GormEmployeePaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeePaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of salary payments
func (r *GormEmployeePaymentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmployeePaymentModel{}).Count(&count).Error
	return count, err
}

func employeePaymentsToDomain(paymentModels []models.EmployeePaymentModel) []ledger.EmployeePayment {
	payments := make([]ledger.EmployeePayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments
}
