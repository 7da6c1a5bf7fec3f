package catalog

import (
	"time"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateProductRequest represents a request to create a product.
// Category carries the category id.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Description  string          `json:"description" binding:"max=5000"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	Category     uuid.UUID       `json:"category" binding:"required"`
	CountInStock int             `json:"countInStock" binding:"min=0"`
}

// UpdateProductRequest represents a partial product update. Pointer fields
// are applied whenever present, including zero values.
type UpdateProductRequest struct {
	Name         string           `json:"name" binding:"max=200"`
	Description  string           `json:"description" binding:"max=5000"`
	Price        *decimal.Decimal `json:"price"`
	Images       []string         `json:"images"`
	Category     *uuid.UUID       `json:"category"`
	CountInStock *int             `json:"countInStock" binding:"omitempty,min=0"`
	IsAvailable  *bool            `json:"isAvailable"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	CategoryID *uuid.UUID
	FarmerID   *uuid.UUID
	Keyword    string
}

// CategoryRef is the populated category of a product
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	Category     CategoryRef     `json:"category"`
	IsAvailable  bool            `json:"isAvailable"`
	CountInStock int             `json:"countInStock"`
	Farmer       *uuid.UUID      `json:"farmer,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Images:       images,
		Category:     CategoryRef{ID: p.CategoryID, Name: p.CategoryName},
		IsAvailable:  p.IsAvailable,
		CountInStock: p.CountInStock,
		Farmer:       p.FarmerID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// UploadResponse is returned after an image upload
type UploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
