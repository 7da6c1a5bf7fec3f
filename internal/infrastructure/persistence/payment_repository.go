package persistence

import (
	"context"

	"github.com/freshmart/backend/internal/domain/finance"
	"github.com/freshmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements finance.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var m models.PaymentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Payment")
	}
	return m.ToDomain(), nil
}

func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]finance.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]finance.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	var m models.PaymentModel
	m.FromDomain(payment)
	return r.db.WithContext(ctx).Save(&m).Error
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
