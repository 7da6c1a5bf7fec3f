package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)
	FindAll(ctx context.Context) ([]Customer, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
