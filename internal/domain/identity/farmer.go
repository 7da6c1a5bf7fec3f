package identity

import (
	"strings"
	"unicode/utf8"

	"github.com/freshmart/backend/internal/domain/shared"
)

const maxBioLength = 500

// Farmer is a producer who lists products on the marketplace.
// Farmers authenticate separately from users.
type Farmer struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	Location     string
	PhoneNumber  string
	Bio          string
}

// NewFarmer creates a farmer with a hashed password
func NewFarmer(name, email, password, location, phoneNumber, bio string) (*Farmer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewInvalidInputError("Name is required")
	}
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, shared.NewInvalidInputError("Location is required")
	}
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, shared.NewInvalidInputError("Phone number is required")
	}
	if utf8.RuneCountInString(bio) > maxBioLength {
		return nil, shared.NewInvalidInputError("Bio cannot be more than 500 characters")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Farmer{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Location:     location,
		PhoneNumber:  phoneNumber,
		Bio:          strings.TrimSpace(bio),
	}, nil
}

// Role always reports RoleFarmer
func (f *Farmer) Role() Role {
	return RoleFarmer
}

// VerifyPassword checks a plaintext password against the stored hash
func (f *Farmer) VerifyPassword(password string) bool {
	return verifyPassword(f.PasswordHash, password)
}
