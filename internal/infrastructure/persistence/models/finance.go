package models

import (
	"github.com/freshmart/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for finance.Payment.
type PaymentModel struct {
	BaseModel
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(30);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'Completed'"`
	TransactionID string          `gorm:"type:varchar(100)"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseAggregateRoot: m.toAggregate(),
		OrderID:           m.OrderID,
		Amount:            m.Amount,
		Method:            finance.PaymentMethod(m.PaymentMethod),
		Status:            finance.PaymentStatus(m.Status),
		TransactionID:     m.TransactionID,
	}
}

func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.fromEntity(p.BaseEntity)
	m.OrderID = p.OrderID
	m.Amount = p.Amount
	m.PaymentMethod = string(p.Method)
	m.Status = string(p.Status)
	m.TransactionID = p.TransactionID
}
