package catalog

import (
	"context"
	"errors"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// List returns products matching the filter, with category names populated
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{
		CategoryID: filter.CategoryID,
		FarmerID:   filter.FarmerID,
		Keyword:    filter.Keyword,
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListByFarmer returns the products owned by a farmer
func (s *ProductService) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]ProductResponse, error) {
	return s.List(ctx, ProductListFilter{FarmerID: &farmerID})
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create creates a product. A non-nil farmerID makes the farmer its owner.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, farmerID *uuid.UUID) (*ProductResponse, error) {
	category, err := s.requireCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, category.ID, req.CountInStock)
	if err != nil {
		return nil, err
	}
	if len(req.Images) > 0 {
		product.SetImages(req.Images)
	}
	if farmerID != nil {
		product.AssignFarmer(*farmerID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	product.CategoryName = category.Name
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update applies a partial update
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil && *req.Category != uuid.Nil && *req.Category != product.CategoryID {
		category, err := s.requireCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryName = category.Name
	}

	if err := product.Apply(catalog.ProductUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CategoryID:   req.Category,
		CountInStock: req.CountInStock,
		IsAvailable:  req.IsAvailable,
		Images:       req.Images,
	}); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) requireCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	if id == uuid.Nil {
		return nil, shared.NewInvalidInputError("Category is required")
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewInvalidInputError("Category not found")
		}
		return nil, err
	}
	return category, nil
}
