package models

import (
	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for catalog.Category.
type CategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:  m.toEntity(),
		Name:        m.Name,
		Description: m.Description,
	}
}

func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.fromEntity(c.BaseEntity)
	m.Name = c.Name
	m.Description = c.Description
}

// ProductModel is the persistence model for catalog.Product. CategoryName is
// filled by the category join on reads and never written.
type ProductModel struct {
	BaseModel
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Images       StringList      `gorm:"type:text"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsAvailable  bool            `gorm:"not null;default:true"`
	CountInStock int             `gorm:"not null;default:0"`
	FarmerID     *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryName string          `gorm:"->;-:migration"`
}

func (ProductModel) TableName() string {
	return "products"
}

func (m *ProductModel) ToDomain() *catalog.Product {
	images := []string(m.Images)
	if images == nil {
		images = []string{}
	}
	return &catalog.Product{
		BaseEntity:   m.toEntity(),
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Images:       images,
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		IsAvailable:  m.IsAvailable,
		CountInStock: m.CountInStock,
		FarmerID:     m.FarmerID,
	}
}

func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.fromEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Images = StringList(p.Images)
	m.CategoryID = p.CategoryID
	m.IsAvailable = p.IsAvailable
	m.CountInStock = p.CountInStock
	m.FarmerID = p.FarmerID
}
