package trade

import (
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeOrder = "Order"
	AggregateTypeSale  = "Sale"
)

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeSaleRecorded       = "SaleRecorded"
)

// OrderItemInfo describes an order line inside events
type OrderItemInfo struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderPlacedEvent is raised when an order has been placed and stock taken
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	UserID     uuid.UUID       `json:"user_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []OrderItemInfo `json:"items"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	items := make([]OrderItemInfo, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemInfo{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price}
	}
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		TotalPrice:      order.TotalPrice,
		Items:           items,
	}
}

// OrderStatusChangedEvent is raised when an order moves to another status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID   `json:"order_id"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		FromStatus:      from,
		ToStatus:        order.Status,
	}
}

// SaleRecordedEvent is raised when a direct sale is recorded
type SaleRecordedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewSaleRecordedEvent creates a new SaleRecordedEvent
func NewSaleRecordedEvent(sale *Sale) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleRecorded, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		ProductID:       sale.ProductID,
		Quantity:        sale.Quantity,
		TotalAmount:     sale.TotalAmount,
	}
}
