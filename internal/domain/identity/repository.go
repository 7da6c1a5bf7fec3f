package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FarmerRepository defines persistence operations for farmers
type FarmerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Farmer, error)
	FindByEmail(ctx context.Context, email string) (*Farmer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error)
	FindAll(ctx context.Context) ([]Farmer, error)
	Save(ctx context.Context, farmer *Farmer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
