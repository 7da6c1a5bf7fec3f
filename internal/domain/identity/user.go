package identity

import (
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
)

// User is a back-office or storefront account (admin, staff or customer)
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
}

// NewUser creates a user with a hashed password. An empty role defaults to customer.
func NewUser(name, email, password, phoneNumber string, role Role) (*User, error) {
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
	if role == "" {
		role = RoleCustomer
	}
	if !IsValidUserRole(role) {
		return nil, shared.NewInvalidInputError("Role must be one of admin, staff, customer")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// ProfileUpdate carries optional profile changes; empty fields keep current values
type ProfileUpdate struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// UpdateProfile applies a partial profile update
func (u *User) UpdateProfile(p ProfileUpdate) error {
	if name := strings.TrimSpace(p.Name); name != "" {
		u.Name = name
	}
	if p.Email != "" {
		email := NormalizeEmail(p.Email)
		if err := validateEmail(email); err != nil {
			return err
		}
		u.Email = email
	}
	if phone := strings.TrimSpace(p.PhoneNumber); phone != "" {
		u.PhoneNumber = phone
	}
	if p.Password != "" {
		if err := validatePassword(p.Password); err != nil {
			return err
		}
		hash, err := hashPassword(p.Password)
		if err != nil {
			return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
		}
		u.PasswordHash = hash
	}
	u.Touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return verifyPassword(u.PasswordHash, password)
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
