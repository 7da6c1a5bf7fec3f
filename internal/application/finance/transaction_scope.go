package finance

import (
	"context"

	"github.com/freshmart/backend/internal/domain/finance"
	"github.com/freshmart/backend/internal/domain/trade"
)

// TransactionScope runs payment recording and the order update it implies
// atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories available inside a payment
// transaction.
type TransactionalRepositories interface {
	PaymentRepo() finance.PaymentRepository
	OrderRepo() trade.OrderRepository
}
