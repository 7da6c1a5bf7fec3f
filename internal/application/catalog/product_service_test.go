package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, categoryID uuid.UUID) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Tomato", "Red", decimal.RequireFromString("2.50"), categoryID, 10)
	require.NoError(t, err)
	p.CategoryName = "Vegetables"
	return p
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, new(MockCategoryRepository))

	product := newTestProduct(t, categoryID)
	productRepo.On("FindAll", ctx, catalog.ProductFilter{CategoryID: &categoryID, Keyword: "tom"}).
		Return([]catalog.Product{*product}, nil)

	list, err := svc.List(ctx, ProductListFilter{CategoryID: &categoryID, Keyword: "tom"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tomato", list[0].Name)
	assert.Equal(t, CategoryRef{ID: categoryID, Name: "Vegetables"}, list[0].Category)
	assert.Equal(t, []string{}, list[0].Images)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	category := newTestCategory(t, "Vegetables")

	t.Run("farmer product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)
		farmerID := uuid.New()

		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		productRepo.On("Save", ctx, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.IsOwnedBy(farmerID) && p.IsAvailable && p.CountInStock == 4
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			Name:         "Kale",
			Price:        decimal.NewFromInt(3),
			Images:       []string{"/uploads/images/kale.jpg", " "},
			Category:     category.ID,
			CountInStock: 4,
		}, &farmerID)
		require.NoError(t, err)
		assert.Equal(t, "Vegetables", resp.Category.Name)
		assert.Equal(t, []string{"/uploads/images/kale.jpg"}, resp.Images)
		assert.Equal(t, &farmerID, resp.Farmer)
		productRepo.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)
		missing := uuid.New()
		categoryRepo.On("FindByID", ctx, missing).Return(nil, shared.NewNotFoundError("Category"))

		_, err := svc.Create(ctx, CreateProductRequest{Name: "Kale", Category: missing}, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Equal(t, "Category not found", err.Error())
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative price", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(new(MockProductRepository), categoryRepo)
		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)

		_, err := svc.Create(ctx, CreateProductRequest{Name: "Kale", Category: category.ID, Price: decimal.NewFromInt(-1)}, nil)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestProductService_Update_AppliesZeroValues(t *testing.T) {
	ctx := context.Background()
	product := newTestProduct(t, uuid.New())
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, new(MockCategoryRepository))

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	zero := 0
	unavailable := false
	free := decimal.Zero
	resp, err := svc.Update(ctx, product.ID, UpdateProductRequest{
		Price:        &free,
		CountInStock: &zero,
		IsAvailable:  &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tomato", resp.Name)
	assert.True(t, resp.Price.IsZero())
	assert.Equal(t, 0, resp.CountInStock)
	assert.False(t, resp.IsAvailable)
}

func TestProductService_Update_ChangesCategory(t *testing.T) {
	ctx := context.Background()
	product := newTestProduct(t, uuid.New())
	fruit := newTestCategory(t, "Fruit")
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := NewProductService(productRepo, categoryRepo)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	categoryRepo.On("FindByID", ctx, fruit.ID).Return(fruit, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	resp, err := svc.Update(ctx, product.ID, UpdateProductRequest{Category: &fruit.ID, Images: []string{"/uploads/a.png"}})
	require.NoError(t, err)
	assert.Equal(t, CategoryRef{ID: fruit.ID, Name: "Fruit"}, resp.Category)
	assert.Equal(t, []string{"/uploads/a.png"}, resp.Images)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, new(MockCategoryRepository))

	missing := uuid.New()
	productRepo.On("FindByID", ctx, missing).Return(nil, shared.NewNotFoundError("Product"))
	err := svc.Delete(ctx, missing)
	require.Error(t, err)
	assert.Equal(t, "Product not found", err.Error())

	product := newTestProduct(t, uuid.New())
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Delete", ctx, product.ID).Return(nil)
	require.NoError(t, svc.Delete(ctx, product.ID))
}
