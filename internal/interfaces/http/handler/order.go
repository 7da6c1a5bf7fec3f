package handler

import (
	tradeapp "github.com/freshmart/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Place godoc
// @Summary      Place an order
// @Description  Stock is reserved in one transaction. Line prices and the total are computed server-side.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.PlaceOrderRequest true "Order"
// @Success      201 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req tradeapp.PlaceOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List godoc
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, orders, len(orders))
}

// Mine godoc
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /orders/myorders [get]
func (h *OrderHandler) Mine(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, orders, len(orders))
}

// Get godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "Order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @Summary      Update order status
// @Description  Cancelling an order returns its items to stock
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdateOrderStatusRequest true "Status changes"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "Order")
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=dto.MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "Order")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Removed(c, "Order")
}
