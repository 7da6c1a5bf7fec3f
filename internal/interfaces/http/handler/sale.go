package handler

import (
	tradeapp "github.com/freshmart/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles direct sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Add godoc
// @Summary      Record a sale
// @Description  Creates the sale and takes its quantity out of stock in one transaction
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.AddSaleRequest true "Sale"
// @Success      201 {object} dto.Response{data=tradeapp.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) Add(c *gin.Context) {
	var req tradeapp.AddSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.AddSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.SaleResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.saleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, sales, len(sales))
}

// Summary godoc
// @Summary      Sales summary
// @Tags         sales
// @Produce      json
// @Success      200 {object} dto.Response{data=tradeapp.SalesSummaryResponse}
// @Security     BearerAuth
// @Router       /sales/summary [get]
func (h *SaleHandler) Summary(c *gin.Context) {
	summary, err := h.saleService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
