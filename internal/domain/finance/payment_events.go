package finance

import (
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypePayment      = "Payment"
	EventTypePaymentCompleted = "PaymentCompleted"
)

// PaymentCompletedEvent is raised when a completed payment is recorded
type PaymentCompletedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
}

// NewPaymentCompletedEvent creates a new PaymentCompletedEvent
func NewPaymentCompletedEvent(p *Payment) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCompleted, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		Method:          p.Method,
	}
}
