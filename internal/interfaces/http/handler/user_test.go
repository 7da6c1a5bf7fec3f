package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	identityapp "github.com/freshmart/backend/internal/application/identity"
	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/auth"
	"github.com/freshmart/backend/internal/infrastructure/config"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userFixture struct {
	router    *gin.Engine
	users     *mockUserRepo
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users: new(mockUserRepo),
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:     "handler-test-secret-0123456789abc",
			Expiration: time.Hour,
			Issuer:     "freshmart-test",
		}),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	h := NewUserHandler(identityapp.NewUserService(f.users, f.jwt, f.blacklist, zap.NewNop()))

	f.router = gin.New()
	f.router.POST("/users", h.Register)
	f.router.POST("/users/login", h.Login)
	f.router.POST("/users/logout", func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
		claims, err := f.jwt.ValidateToken(token)
		if err == nil {
			c.Set(middleware.AuthClaimsKey, claims)
		}
		c.Next()
	}, h.Logout)
	return f
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("returns a usable token", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByEmail", mock.Anything, "amina@example.com").Return(false, nil)
		f.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		w := performRequest(f.router, http.MethodPost, "/users", jsonBody(t, map[string]string{
			"name":     "Amina",
			"email":    " Amina@Example.com ",
			"password": "secret123",
		}), "application/json")

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "amina@example.com", data["email"])
		assert.Equal(t, "customer", data["role"])
		assert.NotContains(t, data, "password")

		claims, err := f.jwt.ValidateToken(data["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, auth.PrincipalUser, claims.Principal)
		assert.Equal(t, data["id"], claims.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByEmail", mock.Anything, "amina@example.com").Return(true, nil)

		w := performRequest(f.router, http.MethodPost, "/users", jsonBody(t, map[string]string{
			"name":     "Amina",
			"email":    "amina@example.com",
			"password": "secret123",
		}), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User already exists", decodeResponse(t, w).Error.Message)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		f := newUserFixture()

		w := performRequest(f.router, http.MethodPost, "/users", jsonBody(t, map[string]string{
			"name":     "Amina",
			"email":    "amina@example.com",
			"password": "123",
		}), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})
}

func TestUserHandler_Login(t *testing.T) {
	user, err := identity.NewUser("Hodan", "hodan@example.com", "correct-horse", "", identity.RoleStaff)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("FindByEmail", mock.Anything, "hodan@example.com").Return(user, nil)

		w := performRequest(f.router, http.MethodPost, "/users/login", jsonBody(t, map[string]string{
			"email": "HODAN@example.com", "password": "correct-horse",
		}), "application/json")

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "staff", data["role"])
		assert.NotEmpty(t, data["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("FindByEmail", mock.Anything, "hodan@example.com").Return(user, nil)

		w := performRequest(f.router, http.MethodPost, "/users/login", jsonBody(t, map[string]string{
			"email": "hodan@example.com", "password": "wrong",
		}), "application/json")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", decodeResponse(t, w).Error.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.NewNotFoundError("User"))

		w := performRequest(f.router, http.MethodPost, "/users/login", jsonBody(t, map[string]string{
			"email": "ghost@example.com", "password": "whatever",
		}), "application/json")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", decodeResponse(t, w).Error.Message)
	})
}

func TestUserHandler_Logout_RevokesToken(t *testing.T) {
	f := newUserFixture()
	user, _ := identity.NewUser("Hodan", "hodan@example.com", "correct-horse", "", identity.RoleCustomer)
	token, err := f.jwt.GenerateToken(user.ID, auth.PrincipalUser)
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(token)
	require.NoError(t, err)

	w := performRequestWithHeader(f.router, http.MethodPost, "/users/logout", middleware.BearerPrefix+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out", decodeResponse(t, w).Data.(map[string]any)["message"])
	revoked, err := f.blacklist.IsRevoked(t.Context(), claims.TokenID())
	require.NoError(t, err)
	assert.True(t, revoked)
}
