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
)

func validFarmerRequest() RegisterFarmerRequest {
	return RegisterFarmerRequest{
		Name:        "Hodan",
		Email:       "hodan@farm.so",
		Password:    "secret123",
		Location:    "Afgooye",
		PhoneNumber: "+252611111",
		Bio:         "Bananas and mangoes",
	}
}

func TestFarmerService_Register(t *testing.T) {
	ctx := context.Background()
	jwtService := newTestJWTService()

	t.Run("success", func(t *testing.T) {
		repo := new(MockFarmerRepository)
		svc := NewFarmerService(repo, jwtService, zap.NewNop())
		repo.On("ExistsByEmail", ctx, "hodan@farm.so").Return(false, nil)
		repo.On("ExistsByPhone", ctx, "+252611111").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.Farmer")).Return(nil)

		resp, err := svc.Register(ctx, validFarmerRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.Role)

		claims, err := jwtService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, auth.PrincipalFarmer, claims.Principal)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockFarmerRepository)
		svc := NewFarmerService(repo, jwtService, zap.NewNop())
		repo.On("ExistsByEmail", ctx, "hodan@farm.so").Return(true, nil)

		_, err := svc.Register(ctx, validFarmerRequest())
		assert.Equal(t, "Farmer already exists", err.Error())
	})

	t.Run("duplicate phone", func(t *testing.T) {
		repo := new(MockFarmerRepository)
		svc := NewFarmerService(repo, jwtService, zap.NewNop())
		repo.On("ExistsByEmail", ctx, "hodan@farm.so").Return(false, nil)
		repo.On("ExistsByPhone", ctx, "+252611111").Return(true, nil)

		_, err := svc.Register(ctx, validFarmerRequest())
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		assert.Equal(t, "Phone number already registered", err.Error())
	})
}

func TestFarmerService_Login(t *testing.T) {
	ctx := context.Background()
	req := validFarmerRequest()
	farmer, err := identity.NewFarmer(req.Name, req.Email, req.Password, req.Location, req.PhoneNumber, req.Bio)
	require.NoError(t, err)

	repo := new(MockFarmerRepository)
	svc := NewFarmerService(repo, newTestJWTService(), zap.NewNop())
	repo.On("FindByEmail", ctx, "hodan@farm.so").Return(farmer, nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "hodan@farm.so", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "farmer", resp.Role)

	_, err = svc.Login(ctx, LoginRequest{Email: "hodan@farm.so", Password: "nope-nope"})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestFarmerService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	req := validFarmerRequest()
	farmer, err := identity.NewFarmer(req.Name, req.Email, req.Password, req.Location, req.PhoneNumber, req.Bio)
	require.NoError(t, err)

	repo := new(MockFarmerRepository)
	svc := NewFarmerService(repo, newTestJWTService(), zap.NewNop())
	repo.On("FindAll", ctx).Return([]identity.Farmer{*farmer}, nil)
	repo.On("FindByID", ctx, farmer.ID).Return(farmer, nil)
	repo.On("Delete", ctx, farmer.ID).Return(nil)
	missing := uuid.New()
	repo.On("FindByID", ctx, missing).Return(nil, shared.NewNotFoundError("Farmer"))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "farmer", list[0].Role)
	assert.Equal(t, "Afgooye", list[0].Location)

	require.NoError(t, svc.Delete(ctx, farmer.ID))
	assert.Equal(t, "Farmer not found", svc.Delete(ctx, missing).Error())
}
