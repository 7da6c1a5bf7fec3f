package partner

import (
	"regexp"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a buyer record kept by the back office
type Customer struct {
	shared.BaseEntity
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	City        string
}

// NewCustomer creates a customer
func NewCustomer(name, email, phoneNumber, address, city string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewInvalidInputError("Customer name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, shared.NewInvalidInputError("Invalid email format")
	}
	return &Customer{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Email:       email,
		PhoneNumber: strings.TrimSpace(phoneNumber),
		Address:     strings.TrimSpace(address),
		City:        strings.TrimSpace(city),
	}, nil
}

// CustomerUpdate carries optional changes; empty fields keep current values
type CustomerUpdate struct {
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	City        string
}

// Update applies a partial update
func (c *Customer) Update(u CustomerUpdate) error {
	if v := strings.TrimSpace(u.Name); v != "" {
		c.Name = v
	}
	if v := strings.ToLower(strings.TrimSpace(u.Email)); v != "" {
		if !emailRegex.MatchString(v) {
			return shared.NewInvalidInputError("Invalid email format")
		}
		c.Email = v
	}
	if v := strings.TrimSpace(u.PhoneNumber); v != "" {
		c.PhoneNumber = v
	}
	if v := strings.TrimSpace(u.Address); v != "" {
		c.Address = v
	}
	if v := strings.TrimSpace(u.City); v != "" {
		c.City = v
	}
	c.Touch()
	return nil
}
