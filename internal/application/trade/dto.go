package trade

import (
	"time"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/partner"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line of an order
type OrderItemRequest struct {
	Product  uuid.UUID `json:"product" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// ShippingAddressRequest is the delivery address of an order
type ShippingAddressRequest struct {
	Address    string `json:"address" binding:"max=500"`
	City       string `json:"city" binding:"max=100"`
	PostalCode string `json:"postalCode" binding:"max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// PlaceOrderRequest represents a request to place an order.
// Totals are always computed server-side.
type PlaceOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems" binding:"dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	Customer        *uuid.UUID             `json:"customer"`
}

// UpdateOrderStatusRequest carries optional status changes; empty keeps
type UpdateOrderStatusRequest struct {
	Status        string `json:"status" binding:"omitempty,oneof=Pending Processing Delivered Cancelled"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=Paid Unpaid"`
}

// CustomerSummary is the customer part of order and sale responses
type CustomerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	Product  uuid.UUID       `json:"product"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ShippingAddressResponse represents a shipping address in API responses
type ShippingAddressResponse struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	User            uuid.UUID               `json:"user"`
	Customer        *CustomerSummary        `json:"customer,omitempty"`
	OrderItems      []OrderItemResponse     `json:"orderItems"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	TotalPrice      decimal.Decimal         `json:"totalPrice"`
	Status          string                  `json:"status"`
	PaymentStatus   string                  `json:"paymentStatus"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order to OrderResponse. Lookups are
// optional; a nil map leaves names as stored on the order.
func ToOrderResponse(o *trade.Order, customers map[uuid.UUID]partner.Customer, products map[uuid.UUID]catalog.Product) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		name := item.ProductName
		if p, ok := products[item.ProductID]; ok {
			name = p.Name
		}
		items[i] = OrderItemResponse{
			Product:  item.ProductID,
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	resp := OrderResponse{
		ID:         o.ID,
		User:       o.UserID,
		OrderItems: items,
		ShippingAddress: ShippingAddressResponse{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		TotalPrice:    o.TotalPrice,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.CustomerID != nil {
		resp.Customer = &CustomerSummary{ID: *o.CustomerID}
		if c, ok := customers[*o.CustomerID]; ok {
			resp.Customer = toCustomerSummary(&c)
		}
	}
	return resp
}

func toCustomerSummary(c *partner.Customer) *CustomerSummary {
	return &CustomerSummary{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
}

// AddSaleRequest represents a request to record a direct sale. When
// TotalAmount is omitted it is computed from the current product price.
type AddSaleRequest struct {
	Product     uuid.UUID        `json:"product" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	Customer    *uuid.UUID       `json:"customer"`
}

// SaleProductSummary is the product part of a sale response
type SaleProductSummary struct {
	ID    uuid.UUID        `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID          uuid.UUID          `json:"id"`
	Product     SaleProductSummary `json:"product"`
	Quantity    int                `json:"quantity"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Customer    *CustomerSummary   `json:"customer,omitempty"`
	SaleDate    time.Time          `json:"saleDate"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale, customers map[uuid.UUID]partner.Customer, products map[uuid.UUID]catalog.Product) SaleResponse {
	resp := SaleResponse{
		ID:          s.ID,
		Product:     SaleProductSummary{ID: s.ProductID, Name: s.ProductName},
		Quantity:    s.Quantity,
		TotalAmount: s.TotalAmount,
		SaleDate:    s.SaleDate,
		CreatedAt:   s.CreatedAt,
	}
	if p, ok := products[s.ProductID]; ok {
		price := p.Price
		resp.Product.Name = p.Name
		resp.Product.Price = &price
	}
	if s.CustomerID != nil {
		resp.Customer = &CustomerSummary{ID: *s.CustomerID}
		if c, ok := customers[*s.CustomerID]; ok {
			resp.Customer = toCustomerSummary(&c)
		}
	}
	return resp
}

// SalesSummaryResponse aggregates recorded sales
type SalesSummaryResponse struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Count        int64           `json:"count"`
}
