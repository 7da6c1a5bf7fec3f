package identity

import (
	"context"
	"testing"
	"time"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/infrastructure/auth"
	"github.com/freshmart/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockFarmerRepository is a mock implementation of identity.FarmerRepository
type MockFarmerRepository struct {
	mock.Mock
}

func (m *MockFarmerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Farmer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Farmer), args.Error(1)
}

func (m *MockFarmerRepository) FindByEmail(ctx context.Context, email string) (*identity.Farmer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Farmer), args.Error(1)
}

func (m *MockFarmerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockFarmerRepository) ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error) {
	args := m.Called(ctx, phoneNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockFarmerRepository) FindAll(ctx context.Context) ([]identity.Farmer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Farmer), args.Error(1)
}

func (m *MockFarmerRepository) Save(ctx context.Context, farmer *identity.Farmer) error {
	return m.Called(ctx, farmer).Error(0)
}

func (m *MockFarmerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-with-enough-length-000000",
		Expiration: time.Hour,
		Issuer:     "freshmart-test",
	})
}

func newTestUser(t *testing.T, email string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser("Amina", email, "secret123", "+252600000", role)
	require.NoError(t, err)
	return u
}
