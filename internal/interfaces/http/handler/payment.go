package handler

import (
	financeapp "github.com/freshmart/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Add godoc
// @Summary      Record a payment
// @Description  A completed payment marks its order as paid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body financeapp.AddPaymentRequest true "Payment"
// @Success      201 {object} dto.Response{data=financeapp.PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Add(c *gin.Context) {
	var req financeapp.AddPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.AddPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// List godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Success      200 {object} dto.Response{data=[]financeapp.PaymentResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, payments, len(payments))
}

// Get godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "Payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}
