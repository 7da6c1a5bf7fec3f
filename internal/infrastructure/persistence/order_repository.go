package persistence

import (
	"context"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/freshmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.position ASC")
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var m models.OrderModel
	if err := r.withItems(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Order")
	}
	return m.ToDomain(), nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]trade.Order, error) {
	var rows []models.OrderModel
	if err := r.withItems(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]trade.Order, error) {
	var rows []models.OrderModel
	if err := r.withItems(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

func (r *GormOrderRepository) FindContainingProducts(ctx context.Context, productIDs []uuid.UUID) ([]trade.Order, error) {
	if len(productIDs) == 0 {
		return []trade.Order{}, nil
	}
	sub := r.db.Model(&models.OrderItemModel{}).Select("order_id").Where("product_id IN ?", productIDs)

	var rows []models.OrderModel
	if err := r.withItems(ctx).Where("id IN (?)", sub).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// Save upserts the order header. Lines are immutable and only inserted the
// first time an order is saved.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	var m models.OrderModel
	m.FromDomain(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return err
		}
		if len(m.Items) == 0 {
			return nil
		}
		var existing int64
		if err := tx.Model(&models.OrderItemModel{}).Where("order_id = ?", m.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}
		return tx.Create(&m.Items).Error
	})
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItemModel{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("Order")
		}
		return nil
	})
}

func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Count(&count).Error
	return count, err
}

func toOrders(rows []models.OrderModel) []trade.Order {
	orders := make([]trade.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) FindAll(ctx context.Context) ([]trade.Sale, error) {
	var rows []models.SaleModel
	err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("sales.*, products.name AS product_name").
		Joins("LEFT JOIN products ON products.id = sales.product_id").
		Order("sales.sale_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	sales := make([]trade.Sale, len(rows))
	for i := range rows {
		sales[i] = *rows[i].ToDomain()
	}
	return sales, nil
}

func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	var m models.SaleModel
	m.FromDomain(sale)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *GormSaleRepository) Summary(ctx context.Context) (trade.SalesSummary, error) {
	var row struct {
		TotalRevenue decimal.Decimal
		Count        int64
	}
	err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_revenue, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return trade.SalesSummary{}, err
	}
	return trade.SalesSummary{
		TotalRevenue: row.TotalRevenue,
		Count:        row.Count,
	}, nil
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
