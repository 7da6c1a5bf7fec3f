package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	jwtService := newTestJWTService()

	t.Run("defaults to customer and issues token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())

		repo.On("ExistsByEmail", ctx, "amina@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(ctx, RegisterUserRequest{
			Name: "Amina", Email: " Amina@Example.com ", Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, "amina@example.com", resp.Email)
		assert.Equal(t, "customer", resp.Role)

		claims, err := jwtService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.ID.String(), claims.ID)
		assert.Equal(t, auth.PrincipalUser, claims.Principal)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
		repo.On("ExistsByEmail", ctx, "amina@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterUserRequest{Name: "A", Email: "amina@example.com", Password: "secret123"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		assert.Equal(t, "User already exists", err.Error())
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	user := newTestUser(t, "staff@example.com", identity.RoleStaff)

	core, logs := observer.New(zapcore.InfoLevel)
	repo := new(MockUserRepository)
	svc := NewUserService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.New(core))

	repo.On("FindByEmail", ctx, "staff@example.com").Return(user, nil)
	repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.NewNotFoundError("User"))

	resp, err := svc.Login(ctx, LoginRequest{Email: "STAFF@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "staff", resp.Role)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, LoginRequest{Email: "staff@example.com", Password: "wrong-pass"})
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, ErrInvalidCredentials, err)
	assert.Equal(t, "Invalid email or password", err.Error())

	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("User logged in").Len())
}

func TestUserService_Logout(t *testing.T) {
	ctx := context.Background()
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewUserService(new(MockUserRepository), jwtService, blacklist, zap.NewNop())

	token, err := jwtService.GenerateToken(uuid.New(), auth.PrincipalUser)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := blacklist.IsRevoked(ctx, claims.TokenID())
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, svc.Logout(ctx, nil))
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps empty fields", func(t *testing.T) {
		user := newTestUser(t, "amina@example.com", identity.RoleCustomer)
		repo := new(MockUserRepository)
		svc := NewUserService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		resp, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Name: "Amina Ali", Password: "newsecret"})
		require.NoError(t, err)
		assert.Equal(t, "Amina Ali", resp.Name)
		assert.Equal(t, "amina@example.com", resp.Email)
		assert.Equal(t, "+252600000", resp.PhoneNumber)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, user.VerifyPassword("newsecret"))
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		user := newTestUser(t, "amina@example.com", identity.RoleCustomer)
		repo := new(MockUserRepository)
		svc := NewUserService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

		_, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Email: "Taken@example.com"})
		assert.Equal(t, "User already exists", err.Error())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	admin := newTestUser(t, "admin@example.com", identity.RoleAdmin)
	customer := newTestUser(t, "c@example.com", identity.RoleCustomer)
	missing := uuid.New()

	repo := new(MockUserRepository)
	svc := NewUserService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	repo.On("FindByID", ctx, missing).Return(nil, shared.NewNotFoundError("User"))
	repo.On("Delete", ctx, customer.ID).Return(nil)

	err := svc.Delete(ctx, admin.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, "Can not delete admin user", err.Error())

	err = svc.Delete(ctx, missing)
	assert.Equal(t, "User not found", err.Error())

	require.NoError(t, svc.Delete(ctx, customer.ID))
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	user := newTestUser(t, "a@example.com", identity.RoleStaff)
	repo.On("FindAll", ctx).Return([]identity.User{*user}, nil)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "staff", list[0].Role)
}
