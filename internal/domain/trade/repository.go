package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	// FindContainingProducts returns orders with at least one line for any of the products
	FindContainingProducts(ctx context.Context, productIDs []uuid.UUID) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindAll(ctx context.Context) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	Summary(ctx context.Context) (SalesSummary, error)
}
