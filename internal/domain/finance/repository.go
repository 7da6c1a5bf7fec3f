package finance

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
}
