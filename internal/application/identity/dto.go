package identity

import (
	"time"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterUserRequest represents a storefront or back-office sign-up
type RegisterUserRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	PhoneNumber string `json:"phoneNumber" binding:"max=50"`
	Role        string `json:"role" binding:"omitempty,oneof=admin staff customer"`
}

// LoginRequest carries credentials for users and farmers alike
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is a partial profile update; empty fields keep current values
type UpdateProfileRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"max=50"`
	Password    string `json:"password" binding:"omitempty,min=6,max=72"`
}

// AuthResponse is returned after registration or login
type AuthResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role,omitempty"`
	Token string    `json:"token"`
}

// ProfileResponse is the authenticated user's own profile
type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phoneNumber"`
	Token       string    `json:"token,omitempty"`
}

// UserResponse represents a user in admin listings
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.String(),
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toProfileResponse(u *identity.User, token string) *ProfileResponse {
	return &ProfileResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.String(),
		PhoneNumber: u.PhoneNumber,
		Token:       token,
	}
}

// RegisterFarmerRequest represents a farmer sign-up
type RegisterFarmerRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	Location    string `json:"location" binding:"required,max=255"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=50"`
	Bio         string `json:"bio" binding:"max=500"`
}

// FarmerResponse represents a farmer in API responses
type FarmerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Location    string    `json:"location"`
	PhoneNumber string    `json:"phoneNumber"`
	Bio         string    `json:"bio"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToFarmerResponse converts a domain Farmer to FarmerResponse
func ToFarmerResponse(f *identity.Farmer) FarmerResponse {
	return FarmerResponse{
		ID:          f.ID,
		Name:        f.Name,
		Email:       f.Email,
		Location:    f.Location,
		PhoneNumber: f.PhoneNumber,
		Bio:         f.Bio,
		Role:        f.Role().String(),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
