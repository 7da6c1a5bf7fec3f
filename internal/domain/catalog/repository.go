package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductFilter narrows product listings
type ProductFilter struct {
	CategoryID *uuid.UUID
	FarmerID   *uuid.UUID
	Keyword    string // case-insensitive substring match on name
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	FindIDsByFarmer(ctx context.Context, farmerID uuid.UUID) ([]uuid.UUID, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// DecrementStock atomically takes quantity units from stock. It returns
	// ErrInsufficientStock when fewer than quantity units remain.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	// IncrementStock returns quantity units to stock
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
