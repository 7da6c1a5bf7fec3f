package identity

import (
	"regexp"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost used by existing accounts
const bcryptCost = 10

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewInvalidInputError("Email is required")
	}
	if len(email) > 200 {
		return shared.NewInvalidInputError("Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewInvalidInputError("Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.NewInvalidInputError("Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewInvalidInputError("Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
