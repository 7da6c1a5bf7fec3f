package catalog

import (
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Category groups products in the storefront
type Category struct {
	shared.BaseEntity
	Name        string
	Description string
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: strings.TrimSpace(description),
	}, nil
}

// Update applies a partial update; empty values keep the current ones
func (c *Category) Update(name, description string) error {
	if name = strings.TrimSpace(name); name != "" {
		if err := validateCategoryName(name); err != nil {
			return err
		}
		c.Name = name
	}
	if description = strings.TrimSpace(description); description != "" {
		c.Description = description
	}
	c.Touch()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewInvalidInputError("Category name is required")
	}
	if len(name) > 100 {
		return shared.NewInvalidInputError("Category name cannot exceed 100 characters")
	}
	return nil
}
