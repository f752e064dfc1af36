package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
)

// SaleService provides application-level sale operations
type SaleService struct {
	sales ledger.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(sales ledger.SaleRepository) *SaleService {
	return &SaleService{sales: sales}
}

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	Client         string                `json:"client" binding:"required"`
	Date           ledger.Date           `json:"date" binding:"required"`
	DeliveryDate   ledger.Date           `json:"delivery_date"`
	TotalValue     decimal.Decimal       `json:"total_value" binding:"required"`
	PaymentMethods ledger.PaymentMethods `json:"payment_methods"`
	ReceivedAmount decimal.Decimal       `json:"received_amount"`
	PendingAmount  decimal.Decimal       `json:"pending_amount"`
	Status         string                `json:"status"`
	SellerID       *uuid.UUID            `json:"seller_id"`
	Observations   string                `json:"observations"`
}

// UpdateSaleRequest represents a request to update a sale
type UpdateSaleRequest struct {
	Client         string                `json:"client" binding:"required"`
	Date           ledger.Date           `json:"date" binding:"required"`
	DeliveryDate   ledger.Date           `json:"delivery_date"`
	TotalValue     decimal.Decimal       `json:"total_value" binding:"required"`
	PaymentMethods ledger.PaymentMethods `json:"payment_methods"`
	ReceivedAmount decimal.Decimal       `json:"received_amount"`
	PendingAmount  decimal.Decimal       `json:"pending_amount"`
	Status         string                `json:"status"`
	SellerID       *uuid.UUID            `json:"seller_id"`
	Observations   string                `json:"observations"`
}

// CreateSale creates a new sale record
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*ledger.Sale, error) {
	status := ledger.SaleStatus(req.Status)
	if status == "" {
		status = ledger.SaleStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid sale status: "+req.Status)
	}
	if err := validateMethods(req.PaymentMethods); err != nil {
		return nil, err
	}

	sale := &ledger.Sale{
		BaseEntity:     shared.NewBaseEntity(),
		Client:         req.Client,
		Date:           req.Date,
		DeliveryDate:   req.DeliveryDate,
		TotalValue:     req.TotalValue,
		PaymentMethods: req.PaymentMethods,
		ReceivedAmount: req.ReceivedAmount,
		PendingAmount:  req.PendingAmount,
		Status:         status,
		SellerID:       req.SellerID,
		Observations:   req.Observations,
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSaleByID gets a sale by ID
func (s *SaleService) GetSaleByID(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	return s.sales.FindByID(ctx, id)
}

// ListSales lists sales matching the filter
func (s *SaleService) ListSales(ctx context.Context, filter ledger.RecordFilter) ([]ledger.Sale, error) {
	return s.sales.FindAll(ctx, filter)
}

// UpdateSale updates an existing sale record
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (*ledger.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := ledger.SaleStatus(req.Status)
	if status == "" {
		status = sale.Status
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid sale status: "+req.Status)
	}
	if err := validateMethods(req.PaymentMethods); err != nil {
		return nil, err
	}

	sale.Client = req.Client
	sale.Date = req.Date
	sale.DeliveryDate = req.DeliveryDate
	sale.TotalValue = req.TotalValue
	sale.PaymentMethods = req.PaymentMethods
	sale.ReceivedAmount = req.ReceivedAmount
	sale.PendingAmount = req.PendingAmount
	sale.Status = status
	sale.SellerID = req.SellerID
	sale.Observations = req.Observations

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale deletes a sale record
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return s.sales.Delete(ctx, id)
}

func validateMethods(methods ledger.PaymentMethods) error {
	for _, m := range methods {
		if !m.Type.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", "invalid payment method type: "+m.Type.String())
		}
	}
	return nil
}
