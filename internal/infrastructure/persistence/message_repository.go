package persistence

import (
	"context"

	"github.com/freshmart/backend/internal/domain/contact"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements contact.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	var m models.MessageModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Message")
	}
	return m.ToDomain(), nil
}

func (r *GormMessageRepository) FindAll(ctx context.Context) ([]contact.Message, error) {
	var rows []models.MessageModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	messages := make([]contact.Message, len(rows))
	for i := range rows {
		messages[i] = *rows[i].ToDomain()
	}
	return messages, nil
}

func (r *GormMessageRepository) Save(ctx context.Context, message *contact.Message) error {
	var m models.MessageModel
	m.FromDomain(message)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Message")
	}
	return nil
}

var _ contact.MessageRepository = (*GormMessageRepository)(nil)
