package persistence

import (
	"context"

	appfinance "github.com/freshmart/backend/internal/application/finance"
	apptrade "github.com/freshmart/backend/internal/application/trade"
	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/finance"
	"github.com/freshmart/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the trade TransactionScope using GORM
// transactions.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope.
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute commits when fn succeeds and rolls back when it returns an error.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepositories{tx: tx})
	})
}

// GormFinanceTransactionScope implements the finance TransactionScope using
// GORM transactions.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope.
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute commits when fn succeeds and rolls back when it returns an error.
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepositories{tx: tx})
	})
}

// gormTxRepositories hands out repositories bound to the open transaction.
type gormTxRepositories struct {
	tx *gorm.DB
}

func (r *gormTxRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTxRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTxRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTxRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var (
	_ apptrade.TransactionScope            = (*GormTradeTransactionScope)(nil)
	_ appfinance.TransactionScope          = (*GormFinanceTransactionScope)(nil)
	_ apptrade.TransactionalRepositories   = (*gormTxRepositories)(nil)
	_ appfinance.TransactionalRepositories = (*gormTxRepositories)(nil)
)
