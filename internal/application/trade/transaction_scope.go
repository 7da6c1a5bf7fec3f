package trade

import (
	"context"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work whose repositories share one database
// transaction. Returning an error from fn rolls back every write made
// through the provided repositories.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories available inside a trade
// transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	OrderRepo() trade.OrderRepository
	SaleRepo() trade.SaleRepository
}
