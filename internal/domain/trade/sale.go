package trade

import (
	"time"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a direct (counter) sale recorded by the back office
type Sale struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID
	ProductName string // populated on read
	Quantity    int
	TotalAmount decimal.Decimal
	CustomerID  *uuid.UUID
	SaleDate    time.Time
}

// NewSale creates a sale dated now
func NewSale(productID uuid.UUID, quantity int, totalAmount decimal.Decimal, customerID *uuid.UUID) (*Sale, error) {
	if productID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Product is required")
	}
	if quantity < 1 {
		return nil, shared.NewInvalidInputError("Quantity must be at least 1")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewInvalidInputError("Total amount cannot be negative")
	}
	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          quantity,
		TotalAmount:       totalAmount,
		CustomerID:        customerID,
	}
	sale.SaleDate = sale.CreatedAt
	sale.AddDomainEvent(NewSaleRecordedEvent(sale))
	return sale, nil
}

// SalesSummary aggregates recorded sales
type SalesSummary struct {
	TotalRevenue decimal.Decimal
	Count        int64
}
