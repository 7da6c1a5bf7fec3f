package models

import (
	"time"

	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for trade.Order.
type OrderModel struct {
	BaseModel
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID        *uuid.UUID       `gorm:"type:uuid;index"`
	ShippingAddress   string           `gorm:"type:varchar(255);not null"`
	ShippingCity      string           `gorm:"type:varchar(100);not null"`
	ShippingPostal    string           `gorm:"column:shipping_postal_code;type:varchar(20)"`
	ShippingCountry   string           `gorm:"type:varchar(100)"`
	TotalPrice        decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Status            string           `gorm:"type:varchar(20);not null;default:'Pending';index"`
	PaymentStatus     string           `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	Items             []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) ToDomain() *trade.Order {
	items := make([]trade.OrderItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = it.ToDomain()
	}
	return &trade.Order{
		BaseAggregateRoot: m.toAggregate(),
		UserID:            m.UserID,
		CustomerID:        m.CustomerID,
		Items:             items,
		ShippingAddress: trade.ShippingAddress{
			Address:    m.ShippingAddress,
			City:       m.ShippingCity,
			PostalCode: m.ShippingPostal,
			Country:    m.ShippingCountry,
		},
		TotalPrice:    m.TotalPrice,
		Status:        trade.OrderStatus(m.Status),
		PaymentStatus: trade.PaymentStatus(m.PaymentStatus),
	}
}

func (m *OrderModel) FromDomain(o *trade.Order) {
	m.fromEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.CustomerID = o.CustomerID
	m.ShippingAddress = o.ShippingAddress.Address
	m.ShippingCity = o.ShippingAddress.City
	m.ShippingPostal = o.ShippingAddress.PostalCode
	m.ShippingCountry = o.ShippingAddress.Country
	m.TotalPrice = o.TotalPrice
	m.Status = string(o.Status)
	m.PaymentStatus = string(o.PaymentStatus)
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:          uuid.New(),
			OrderID:     o.ID,
			Position:    i,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
	}
}

// OrderItemModel is one order line. Lines are written once with their order.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

func (m OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Price:       m.Price,
	}
}

// SaleModel is the persistence model for trade.Sale. ProductName is read
// through the product join.
type SaleModel struct {
	BaseModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int             `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index"`
	SaleDate    time.Time       `gorm:"not null;index"`
	ProductName string          `gorm:"->;-:migration"`
}

func (SaleModel) TableName() string {
	return "sales"
}

func (m *SaleModel) ToDomain() *trade.Sale {
	return &trade.Sale{
		BaseAggregateRoot: m.toAggregate(),
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		Quantity:          m.Quantity,
		TotalAmount:       m.TotalAmount,
		CustomerID:        m.CustomerID,
		SaleDate:          m.SaleDate,
	}
}

func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.fromEntity(s.BaseEntity)
	m.ProductID = s.ProductID
	m.Quantity = s.Quantity
	m.TotalAmount = s.TotalAmount
	m.CustomerID = s.CustomerID
	m.SaleDate = s.SaleDate
}
