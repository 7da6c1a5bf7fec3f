package finance

import (
	"time"

	"github.com/freshmart/backend/internal/domain/finance"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddPaymentRequest represents a request to record a payment against an order
type AddPaymentRequest struct {
	Order         uuid.UUID       `json:"order" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=evcPlus eDahab premierWallet waafi bankTransaction"`
	Status        string          `json:"status" binding:"omitempty,oneof=Pending Completed Failed Refunded"`
	TransactionID string          `json:"transactionId" binding:"max=100"`
}

// OrderSummary is the order part of a payment response
type OrderSummary struct {
	ID            uuid.UUID        `json:"id"`
	TotalPrice    *decimal.Decimal `json:"totalPrice,omitempty"`
	Status        string           `json:"status,omitempty"`
	PaymentStatus string           `json:"paymentStatus,omitempty"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Order         OrderSummary    `json:"order"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse. order may
// be nil when the order no longer exists.
func ToPaymentResponse(p *finance.Payment, order *trade.Order) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		Order:         OrderSummary{ID: p.OrderID},
		Amount:        p.Amount,
		PaymentMethod: string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
	if order != nil {
		total := order.TotalPrice
		resp.Order.TotalPrice = &total
		resp.Order.Status = string(order.Status)
		resp.Order.PaymentStatus = string(order.PaymentStatus)
	}
	return resp
}
