package persistence

import (
	"context"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withCategory selects product columns plus the joined category name.
func (r *GormProductRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.withCategory(ctx).Where("products.id = ?", id).Take(&m).Error; err != nil {
		return nil, notFound(err, "Product")
	}
	return m.ToDomain(), nil
}

func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.withCategory(ctx).Where("products.id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	query := r.withCategory(ctx)
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.FarmerID != nil {
		query = query.Where("products.farmer_id = ?", *filter.FarmerID)
	}
	if filter.Keyword != "" {
		query = query.Where(`LOWER(products.name) LIKE ? ESCAPE '\'`, containsPattern(filter.Keyword))
	}

	var rows []models.ProductModel
	if err := query.Order("products.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (r *GormProductRepository) FindIDsByFarmer(ctx context.Context, farmerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("farmer_id = ?", farmerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var m models.ProductModel
	m.FromDomain(product)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Product")
	}
	return nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// DecrementStock is a conditional update; concurrent callers can never drive
// count_in_stock below zero. Zero affected rows means the product is gone or
// short, which a follow-up read distinguishes.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.NewInvalidInputError("Quantity must be at least 1")
	}
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ? AND count_in_stock >= ?", id, quantity).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var m models.ProductModel
	if err := r.db.WithContext(ctx).Select("name", "count_in_stock").First(&m, "id = ?", id).Error; err != nil {
		return notFound(err, "Product")
	}
	return catalog.NewInsufficientStockError(m.Name, quantity, m.CountInStock)
}

func (r *GormProductRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 1 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock + ?", quantity)).Error
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
