package partner

import (
	"time"

	"github.com/freshmart/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name        string `json:"name" binding:"max=200"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		City:        c.City,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
