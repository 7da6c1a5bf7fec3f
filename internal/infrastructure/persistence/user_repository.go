package persistence

import (
	"context"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return m.ToDomain(), nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", identity.NormalizeEmail(email)).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return m.ToDomain(), nil
}

func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, nil
}

func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	var m models.UserModel
	m.FromDomain(user)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("User")
	}
	return nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// GormFarmerRepository implements identity.FarmerRepository using GORM
type GormFarmerRepository struct {
	db *gorm.DB
}

// NewGormFarmerRepository creates a new GormFarmerRepository
func NewGormFarmerRepository(db *gorm.DB) *GormFarmerRepository {
	return &GormFarmerRepository{db: db}
}

func (r *GormFarmerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Farmer, error) {
	var m models.FarmerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Farmer")
	}
	return m.ToDomain(), nil
}

func (r *GormFarmerRepository) FindByEmail(ctx context.Context, email string) (*identity.Farmer, error) {
	var m models.FarmerModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", identity.NormalizeEmail(email)).Error; err != nil {
		return nil, notFound(err, "Farmer")
	}
	return m.ToDomain(), nil
}

func (r *GormFarmerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FarmerModel{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *GormFarmerRepository) ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FarmerModel{}).
		Where("phone_number = ?", phoneNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *GormFarmerRepository) FindAll(ctx context.Context) ([]identity.Farmer, error) {
	var rows []models.FarmerModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	farmers := make([]identity.Farmer, len(rows))
	for i := range rows {
		farmers[i] = *rows[i].ToDomain()
	}
	return farmers, nil
}

func (r *GormFarmerRepository) Save(ctx context.Context, farmer *identity.Farmer) error {
	var m models.FarmerModel
	m.FromDomain(farmer)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *GormFarmerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FarmerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Farmer")
	}
	return nil
}

var _ identity.FarmerRepository = (*GormFarmerRepository)(nil)
