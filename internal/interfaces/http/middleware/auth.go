package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/auth"
	"github.com/freshmart/backend/internal/infrastructure/logger"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthClaimsKey = "auth_claims"
	AuthUserKey   = "auth_user"
	AuthFarmerKey = "auth_farmer"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authorization failure messages
const (
	msgNoToken        = "Not authorized, no token"
	msgTokenFailed    = "Not authorized, token failed"
	msgUserNotFound   = "Not authorized, user not found"
	msgFarmerNotFound = "Not authorized, farmer not found"
	msgStaffOrFarmer  = "Not authorized as staff, admin or farmer"
	roleMismatch      = "role_mismatch"
	noRole            = "none"
)

// AuthConfig holds the dependencies of the authentication chain
type AuthConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional; revoked tokens fail as "token failed"
	TokenBlacklist auth.TokenBlacklist
	Users          identity.UserRepository
	Farmers        identity.FarmerRepository
	Logger         *zap.Logger
}

// Authenticator builds the protect / role middleware chain. Tokens only
// identify the subject; the principal is always re-loaded from its store.
type Authenticator struct {
	cfg AuthConfig
}

// NewAuthenticator creates an Authenticator
func NewAuthenticator(cfg AuthConfig) *Authenticator {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Authenticator{cfg: cfg}
}

// Protect requires a valid token whose subject exists in the users store
func (a *Authenticator) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, id, ok := a.verify(c)
		if !ok {
			return
		}

		user, err := a.cfg.Users.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				a.deny(c, msgUserNotFound, nil)
				return
			}
			a.cfg.Logger.Error("Failed to load user for token", zap.Error(err))
			a.deny(c, msgTokenFailed, nil)
			return
		}

		a.setUser(c, claims, user)
		c.Next()
	}
}

// Admin requires the context user to be an admin. Use after Protect.
func (a *Authenticator) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user != nil && user.Role == identity.RoleAdmin {
			c.Next()
			return
		}
		current := roleOf(user)
		a.deny(c, fmt.Sprintf("Not authorized as an admin. Your role is: %s", current),
			&dto.RoleMismatch{Reason: roleMismatch, Required: "admin", Current: current})
	}
}

// Staff requires the context user to be admin or staff. Use after Protect.
func (a *Authenticator) Staff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user != nil && user.Role.IsManagement() {
			c.Next()
			return
		}
		current := roleOf(user)
		a.deny(c, fmt.Sprintf("Not authorized as staff or admin. Your role is: %s", current),
			&dto.RoleMismatch{Reason: roleMismatch, Required: "staff_or_admin", Current: current})
	}
}

// StaffOrFarmer accepts either an admin/staff user or a farmer. Exactly one
// of the two ends up in the context.
func (a *Authenticator) StaffOrFarmer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, id, ok := a.verify(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		current := noRole
		user, err := a.cfg.Users.FindByID(ctx, id)
		switch {
		case err == nil && user.Role.IsManagement():
			a.setUser(c, claims, user)
			c.Next()
			return
		case err == nil:
			current = user.Role.String()
		case !errors.Is(err, shared.ErrNotFound):
			a.cfg.Logger.Error("Failed to load user for token", zap.Error(err))
			a.deny(c, msgTokenFailed, nil)
			return
		}

		farmer, err := a.cfg.Farmers.FindByID(ctx, id)
		if err == nil {
			a.setFarmer(c, claims, farmer)
			c.Next()
			return
		}
		if !errors.Is(err, shared.ErrNotFound) {
			a.cfg.Logger.Error("Failed to load farmer for token", zap.Error(err))
			a.deny(c, msgTokenFailed, nil)
			return
		}

		a.deny(c, msgStaffOrFarmer,
			&dto.RoleMismatch{Reason: roleMismatch, Required: "staff_admin_or_farmer", Current: current})
	}
}

// ProtectFarmer requires a valid token whose subject exists in the farmers store
func (a *Authenticator) ProtectFarmer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, id, ok := a.verify(c)
		if !ok {
			return
		}

		farmer, err := a.cfg.Farmers.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				a.deny(c, msgFarmerNotFound, nil)
				return
			}
			a.cfg.Logger.Error("Failed to load farmer for token", zap.Error(err))
			a.deny(c, msgTokenFailed, nil)
			return
		}

		a.setFarmer(c, claims, farmer)
		c.Next()
	}
}

// verify checks the bearer token and the blacklist. It aborts the request and
// returns ok=false on failure.
func (a *Authenticator) verify(c *gin.Context) (*auth.Claims, uuid.UUID, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) || strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix)) == "" {
		a.deny(c, msgNoToken, nil)
		return nil, uuid.Nil, false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))

	claims, err := a.cfg.JWTService.ValidateToken(tokenString)
	if err != nil {
		a.cfg.Logger.Warn("Token validation failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path))
		a.deny(c, msgTokenFailed, nil)
		return nil, uuid.Nil, false
	}

	if a.isRevoked(c.Request.Context(), claims) {
		a.deny(c, msgTokenFailed, nil)
		return nil, uuid.Nil, false
	}

	id, err := claims.SubjectID()
	if err != nil {
		a.deny(c, msgTokenFailed, nil)
		return nil, uuid.Nil, false
	}
	return claims, id, true
}

// isRevoked fails open when the blacklist cannot be reached
func (a *Authenticator) isRevoked(ctx context.Context, claims *auth.Claims) bool {
	if a.cfg.TokenBlacklist == nil || claims.TokenID() == "" {
		return false
	}
	revoked, err := a.cfg.TokenBlacklist.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		a.cfg.Logger.Error("Failed to check token blacklist",
			zap.String("jti", claims.TokenID()),
			zap.Error(err))
		return false
	}
	return revoked
}

func (a *Authenticator) setUser(c *gin.Context, claims *auth.Claims, user *identity.User) {
	c.Set(AuthClaimsKey, claims)
	c.Set(AuthUserKey, user)
	c.Request = c.Request.WithContext(logger.WithPrincipalID(c.Request.Context(), user.ID.String()))
	a.cfg.Logger.Info("Access granted",
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()),
		zap.String("path", c.Request.URL.Path))
}

func (a *Authenticator) setFarmer(c *gin.Context, claims *auth.Claims, farmer *identity.Farmer) {
	c.Set(AuthClaimsKey, claims)
	c.Set(AuthFarmerKey, farmer)
	c.Request = c.Request.WithContext(logger.WithPrincipalID(c.Request.Context(), farmer.ID.String()))
	a.cfg.Logger.Info("Access granted",
		zap.String("email", farmer.Email),
		zap.String("role", farmer.Role().String()),
		zap.String("path", c.Request.URL.Path))
}

func (a *Authenticator) deny(c *gin.Context, message string, mismatch *dto.RoleMismatch) {
	fields := []zap.Field{
		zap.String("reason", message),
		zap.String("path", c.Request.URL.Path),
	}
	var details interface{}
	if mismatch != nil {
		details = mismatch
		fields = append(fields,
			zap.String("required", mismatch.Required),
			zap.String("role", mismatch.Current))
	}
	a.cfg.Logger.Warn("Access denied", fields...)

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithDetails(
		dto.ErrCodeUnauthorized, message, c.GetString(logger.RequestIDContextKey), details))
}

func roleOf(user *identity.User) string {
	if user == nil || user.Role == "" {
		return noRole
	}
	return user.Role.String()
}

// CurrentUser returns the authenticated user, or nil
func CurrentUser(c *gin.Context) *identity.User {
	if v, ok := c.Get(AuthUserKey); ok {
		if user, ok := v.(*identity.User); ok {
			return user
		}
	}
	return nil
}

// CurrentFarmer returns the authenticated farmer, or nil
func CurrentFarmer(c *gin.Context) *identity.Farmer {
	if v, ok := c.Get(AuthFarmerKey); ok {
		if farmer, ok := v.(*identity.Farmer); ok {
			return farmer
		}
	}
	return nil
}

// CurrentClaims returns the verified token claims, or nil
func CurrentClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(AuthClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
