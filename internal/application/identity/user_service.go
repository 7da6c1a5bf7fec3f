package identity

import (
	"context"
	"errors"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password
	ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")

	errUserExists = shared.NewDomainError(shared.CodeAlreadyExists, "User already exists")
)

// UserService handles user registration, authentication and administration
type UserService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a user and returns a token for it
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, identity.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errUserExists
	}

	user, err := identity.NewUser(req.Name, req.Email, req.Password, req.PhoneNumber, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()))

	return s.authResponse(user)
}

// Login verifies credentials and returns a token
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := identity.NormalizeEmail(req.Email)
	s.logger.Info("Login attempt", zap.String("email", email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login failed: unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Login failed: wrong password", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))
	return s.authResponse(user)
}

// Logout revokes the presented token until it would have expired anyway
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.TokenID() == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.TokenID(), claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.ID))
	return nil
}

// GetProfile returns the profile of the given user
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user, ""), nil
}

// UpdateProfile applies a partial update and issues a fresh token
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		email := identity.NormalizeEmail(req.Email)
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, errUserExists
			}
		}
	}

	if err := user.UpdateProfile(identity.ProfileUpdate{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	}); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, auth.PrincipalUser)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user, token), nil
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// Delete removes a non-admin user
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return shared.NewInvalidInputError("Can not delete admin user")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) authResponse(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user.ID, auth.PrincipalUser)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, err
	}
	return &AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
		Token: token,
	}, nil
}
