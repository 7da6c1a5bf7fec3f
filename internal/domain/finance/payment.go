package finance

import (
	"fmt"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the channel a payment was made through
type PaymentMethod string

const (
	PaymentMethodEVCPlus         PaymentMethod = "evcPlus"
	PaymentMethodEDahab          PaymentMethod = "eDahab"
	PaymentMethodPremierWallet   PaymentMethod = "premierWallet"
	PaymentMethodWaafi           PaymentMethod = "waafi"
	PaymentMethodBankTransaction PaymentMethod = "bankTransaction"
)

// IsValid checks if the method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodEVCPlus, PaymentMethodEDahab, PaymentMethodPremierWallet,
		PaymentMethodWaafi, PaymentMethodBankTransaction:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment records money received against an order
type Payment struct {
	shared.BaseAggregateRoot
	OrderID       uuid.UUID
	Amount        decimal.Decimal
	Method        PaymentMethod
	Status        PaymentStatus
	TransactionID string
}

// NewPayment creates a payment. An empty status defaults to Completed.
func NewPayment(orderID uuid.UUID, amount decimal.Decimal, method PaymentMethod, status PaymentStatus, transactionID string) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewInvalidInputError("Order is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewInvalidInputError("Amount must be greater than zero")
	}
	if !method.IsValid() {
		return nil, shared.NewInvalidInputError(fmt.Sprintf("Invalid payment method: %s", method))
	}
	if status == "" {
		status = PaymentStatusCompleted
	}
	if !status.IsValid() {
		return nil, shared.NewInvalidInputError(fmt.Sprintf("Invalid payment status: %s", status))
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Amount:            amount,
		Method:            method,
		Status:            status,
		TransactionID:     strings.TrimSpace(transactionID),
	}
	if payment.IsCompleted() {
		payment.AddDomainEvent(NewPaymentCompletedEvent(payment))
	}
	return payment, nil
}

// IsCompleted reports whether the payment settles its order
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}
