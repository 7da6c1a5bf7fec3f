package catalog

import (
	"fmt"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. CountInStock is the authoritative on-hand quantity.
type Product struct {
	shared.BaseEntity
	Name         string
	Description  string
	Price        decimal.Decimal
	Images       []string
	CategoryID   uuid.UUID
	CategoryName string // populated on read
	IsAvailable  bool
	CountInStock int
	FarmerID     *uuid.UUID
}

// NewProduct creates an available product
func NewProduct(name, description string, price decimal.Decimal, categoryID uuid.UUID, countInStock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewInvalidInputError("Product name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewInvalidInputError("Product name cannot exceed 200 characters")
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateStock(countInStock); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Category is required")
	}

	return &Product{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Description:  strings.TrimSpace(description),
		Price:        price,
		Images:       []string{},
		CategoryID:   categoryID,
		IsAvailable:  true,
		CountInStock: countInStock,
	}, nil
}

// AssignFarmer marks the product as owned by a farmer
func (p *Product) AssignFarmer(farmerID uuid.UUID) {
	p.FarmerID = &farmerID
}

// SetImages replaces the image list
func (p *Product) SetImages(images []string) {
	cleaned := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			cleaned = append(cleaned, img)
		}
	}
	p.Images = cleaned
	p.Touch()
}

// ProductUpdate describes a partial update. Nil pointers and empty strings
// leave the field untouched; explicit zero and false values are applied.
type ProductUpdate struct {
	Name         string
	Description  string
	Price        *decimal.Decimal
	CategoryID   *uuid.UUID
	CountInStock *int
	IsAvailable  *bool
	Images       []string
}

// Apply applies the update to the product
func (p *Product) Apply(u ProductUpdate) error {
	if name := strings.TrimSpace(u.Name); name != "" {
		p.Name = name
	}
	if desc := strings.TrimSpace(u.Description); desc != "" {
		p.Description = desc
	}
	if u.Price != nil {
		if err := validatePrice(*u.Price); err != nil {
			return err
		}
		p.Price = *u.Price
	}
	if u.CategoryID != nil && *u.CategoryID != uuid.Nil {
		p.CategoryID = *u.CategoryID
	}
	if u.CountInStock != nil {
		if err := validateStock(*u.CountInStock); err != nil {
			return err
		}
		p.CountInStock = *u.CountInStock
	}
	if u.IsAvailable != nil {
		p.IsAvailable = *u.IsAvailable
	}
	if len(u.Images) > 0 {
		p.SetImages(u.Images)
	}
	p.Touch()
	return nil
}

// CheckOrderable verifies that quantity units can be taken from stock
func (p *Product) CheckOrderable(quantity int) error {
	if quantity < 1 {
		return shared.NewInvalidInputError("Quantity must be at least 1")
	}
	if !p.IsAvailable {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Product %s is not available", p.Name))
	}
	if p.CountInStock < quantity {
		return NewInsufficientStockError(p.Name, quantity, p.CountInStock)
	}
	return nil
}

// IsOwnedBy reports whether the farmer owns this product
func (p *Product) IsOwnedBy(farmerID uuid.UUID) bool {
	return p.FarmerID != nil && *p.FarmerID == farmerID
}

// NewInsufficientStockError builds the error returned when a stock decrement cannot be satisfied
func NewInsufficientStockError(name string, requested, available int) *shared.DomainError {
	return shared.NewDomainError(shared.CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", name, requested, available))
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewInvalidInputError("Price cannot be negative")
	}
	return nil
}

func validateStock(count int) error {
	if count < 0 {
		return shared.NewInvalidInputError("Count in stock cannot be negative")
	}
	return nil
}
