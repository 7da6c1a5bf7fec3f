package handler

import (
	"net/http"
	"testing"

	tradeapp "github.com/freshmart/backend/internal/application/trade"
	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Only paths rejected before any repository is reached are covered here;
// placement itself is exercised against sqlite in the application and
// persistence packages.
func setupOrderRouter(user *identity.User) *gin.Engine {
	h := NewOrderHandler(tradeapp.NewOrderService(nil, nil, nil, nil, zap.NewNop()))
	r := gin.New()
	if user != nil {
		r.Use(withUser(user))
	}
	r.POST("/orders", h.Place)
	r.GET("/orders/myorders", h.Mine)
	r.PUT("/orders/:id/status", h.UpdateStatus)
	return r
}

func TestOrderHandler_Place(t *testing.T) {
	user, err := identity.NewUser("Ayaan", "ayaan@example.com", "secret123", "", identity.RoleCustomer)
	require.NoError(t, err)

	t.Run("without an authenticated user", func(t *testing.T) {
		r := setupOrderRouter(nil)

		w := performRequest(r, http.MethodPost, "/orders", jsonBody(t, map[string]any{}), "application/json")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no order items", func(t *testing.T) {
		r := setupOrderRouter(user)

		w := performRequest(r, http.MethodPost, "/orders", jsonBody(t, map[string]any{
			"orderItems":      []any{},
			"shippingAddress": map[string]string{"address": "Maka Al Mukarama Rd", "city": "Mogadishu"},
		}), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
		assert.Equal(t, "No order items", resp.Error.Message)
	})

	t.Run("item quantity below one", func(t *testing.T) {
		r := setupOrderRouter(user)

		w := performRequest(r, http.MethodPost, "/orders", jsonBody(t, map[string]any{
			"orderItems": []map[string]any{{"product": uuid.New(), "quantity": 0}},
		}), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})
}

func TestOrderHandler_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	r := setupOrderRouter(nil)

	w := performRequest(r, http.MethodPut, "/orders/"+uuid.NewString()+"/status",
		jsonBody(t, map[string]string{"status": "Shipped"}), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
}
