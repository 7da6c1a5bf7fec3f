package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", shared.NewNotFoundError("Order"), http.StatusNotFound, dto.ErrCodeNotFound, "Order not found"},
		{"already exists", shared.NewDomainError(shared.CodeAlreadyExists, "User already exists"), http.StatusBadRequest, dto.ErrCodeAlreadyExists, "User already exists"},
		{"invalid input", shared.NewInvalidInputError("No order items"), http.StatusBadRequest, dto.ErrCodeInvalidInput, "No order items"},
		{"insufficient stock", shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock for Milk: requested 3, available 1"), http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock, "Insufficient stock for Milk: requested 3, available 1"},
		{"unauthorized", shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password"), http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Invalid email or password"},
		{"wrapped domain error", errors.Join(errors.New("ctx"), shared.NewNotFoundError("Payment")), http.StatusNotFound, dto.ErrCodeNotFound, "Payment not found"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := gin.New()
			r.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := performRequest(r, http.MethodGet, "/", nil, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			if assert.NotNil(t, resp.Error) {
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestBaseHandler_ParseID(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.GET("/orders/:id", func(c *gin.Context) {
		if id, ok := h.ParseID(c, "Order"); ok {
			h.Success(c, id.String())
		}
	})

	w := performRequest(r, http.MethodGet, "/orders/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeResponse(t, w).Error.Message)

	w = performRequest(r, http.MethodGet, "/orders/6f1c1e4a-52c4-4b55-9d0b-43f5a3b0f1aa", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "6f1c1e4a-52c4-4b55-9d0b-43f5a3b0f1aa", decodeResponse(t, w).Data)
}

func TestBaseHandler_Removed(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.DELETE("/", func(c *gin.Context) { h.Removed(c, "Customer") })

	w := performRequest(r, http.MethodDelete, "/", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "Customer removed", data["message"])
}
