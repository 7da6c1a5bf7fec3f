package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FarmerService handles farmer registration, authentication and administration
type FarmerService struct {
	farmerRepo identity.FarmerRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewFarmerService creates a new FarmerService
func NewFarmerService(farmerRepo identity.FarmerRepository, jwtService *auth.JWTService, logger *zap.Logger) *FarmerService {
	return &FarmerService{
		farmerRepo: farmerRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a farmer account and returns a token for it
func (s *FarmerService) Register(ctx context.Context, req RegisterFarmerRequest) (*AuthResponse, error) {
	exists, err := s.farmerRepo.ExistsByEmail(ctx, identity.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Farmer already exists")
	}
	exists, err = s.farmerRepo.ExistsByPhone(ctx, strings.TrimSpace(req.PhoneNumber))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Phone number already registered")
	}

	farmer, err := identity.NewFarmer(req.Name, req.Email, req.Password, req.Location, req.PhoneNumber, req.Bio)
	if err != nil {
		return nil, err
	}
	if err := s.farmerRepo.Save(ctx, farmer); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(farmer.ID, auth.PrincipalFarmer)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Farmer registered",
		zap.String("farmer_id", farmer.ID.String()),
		zap.String("email", farmer.Email))

	return &AuthResponse{ID: farmer.ID, Name: farmer.Name, Email: farmer.Email, Token: token}, nil
}

// Login verifies farmer credentials and returns a token
func (s *FarmerService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := identity.NormalizeEmail(req.Email)
	s.logger.Info("Farmer login attempt", zap.String("email", email))

	farmer, err := s.farmerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Farmer login failed: unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !farmer.VerifyPassword(req.Password) {
		s.logger.Warn("Farmer login failed: wrong password", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(farmer.ID, auth.PrincipalFarmer)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		ID:    farmer.ID,
		Name:  farmer.Name,
		Email: farmer.Email,
		Role:  farmer.Role().String(),
		Token: token,
	}, nil
}

// GetByID returns a farmer
func (s *FarmerService) GetByID(ctx context.Context, id uuid.UUID) (*FarmerResponse, error) {
	farmer, err := s.farmerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToFarmerResponse(farmer)
	return &resp, nil
}

// List returns all farmers
func (s *FarmerService) List(ctx context.Context) ([]FarmerResponse, error) {
	farmers, err := s.farmerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]FarmerResponse, len(farmers))
	for i := range farmers {
		responses[i] = ToFarmerResponse(&farmers[i])
	}
	return responses, nil
}

// Delete removes a farmer
func (s *FarmerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.farmerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.farmerRepo.Delete(ctx, id)
}
