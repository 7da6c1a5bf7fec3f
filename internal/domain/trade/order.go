package trade

import (
	"fmt"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed. Only a
// cancelled order is final; its stock has already been returned.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled
}

// PaymentStatus represents whether an order has been paid
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
	PaymentStatusPaid   PaymentStatus = "Paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusUnpaid
}

// ShippingAddress is where an order is delivered
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

func (a ShippingAddress) validate() error {
	if strings.TrimSpace(a.Address) == "" {
		return shared.NewInvalidInputError("Shipping address is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return shared.NewInvalidInputError("Shipping city is required")
	}
	return nil
}

// OrderItem is a line of an order. Price is the unit price captured when the order was placed.
type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal returns Price x Quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root for a customer purchase
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID
	CustomerID      *uuid.UUID
	Items           []OrderItem
	ShippingAddress ShippingAddress
	TotalPrice      decimal.Decimal
	Status          OrderStatus
	PaymentStatus   PaymentStatus
}

// NewOrder creates a pending, unpaid order. TotalPrice is derived from the items.
func NewOrder(userID uuid.UUID, customerID *uuid.UUID, items []OrderItem, address ShippingAddress) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoOrderItems
	}
	if err := address.validate(); err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewInvalidInputError("Order item product is required")
		}
		if item.Quantity < 1 {
			return nil, shared.NewInvalidInputError("Order item quantity must be at least 1")
		}
		if item.Price.IsNegative() {
			return nil, shared.NewInvalidInputError("Order item price cannot be negative")
		}
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		CustomerID:        customerID,
		Items:             items,
		ShippingAddress:   address,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusUnpaid,
	}
	order.TotalPrice = order.computeTotal()
	order.AddDomainEvent(NewOrderPlacedEvent(order))
	return order, nil
}

// ErrNoOrderItems is returned when an order is placed without items
var ErrNoOrderItems = shared.NewInvalidInputError("No order items")

// MergeItemQuantities sums quantities of lines that reference the same product,
// preserving first-seen order.
func MergeItemQuantities(lines []ItemRequest) []ItemRequest {
	merged := make([]ItemRequest, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// ItemRequest is a requested product quantity before pricing
type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

func (o *Order) computeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// UpdateStatus applies optional status and payment status changes.
// It reports whether the order has just been cancelled, in which case
// the caller must return the items to stock.
func (o *Order) UpdateStatus(status *OrderStatus, paymentStatus *PaymentStatus) (cancelled bool, err error) {
	if status != nil && *status != "" && *status != o.Status {
		if !status.IsValid() {
			return false, shared.NewInvalidInputError(fmt.Sprintf("Invalid order status: %s", *status))
		}
		if o.Status.IsTerminal() {
			return false, shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("Order is already %s", o.Status))
		}
		from := o.Status
		o.Status = *status
		cancelled = o.Status == OrderStatusCancelled
		o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	}
	if paymentStatus != nil && *paymentStatus != "" {
		if !paymentStatus.IsValid() {
			return false, shared.NewInvalidInputError(fmt.Sprintf("Invalid payment status: %s", *paymentStatus))
		}
		o.PaymentStatus = *paymentStatus
	}
	o.Touch()
	return cancelled, nil
}

// MarkPaid flags the order as paid
func (o *Order) MarkPaid() {
	o.PaymentStatus = PaymentStatusPaid
	o.Touch()
}

// ItemsForProducts returns the lines whose product is in the given set
func (o *Order) ItemsForProducts(products map[uuid.UUID]struct{}) []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if _, ok := products[item.ProductID]; ok {
			items = append(items, item)
		}
	}
	return items
}
