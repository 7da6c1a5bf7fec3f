package handler

import (
	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	identityapp "github.com/freshmart/backend/internal/application/identity"
	reportapp "github.com/freshmart/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// FarmerHandler handles farmer accounts and the farmer portal
type FarmerHandler struct {
	BaseHandler
	farmerService   *identityapp.FarmerService
	productService  *catalogapp.ProductService
	categoryService *catalogapp.CategoryService
	reportService   *reportapp.ReportService
	uploads         *UploadHandler
}

// NewFarmerHandler creates a new FarmerHandler
func NewFarmerHandler(
	farmerService *identityapp.FarmerService,
	productService *catalogapp.ProductService,
	categoryService *catalogapp.CategoryService,
	reportService *reportapp.ReportService,
	uploads *UploadHandler,
) *FarmerHandler {
	return &FarmerHandler{
		farmerService:   farmerService,
		productService:  productService,
		categoryService: categoryService,
		reportService:   reportService,
		uploads:         uploads,
	}
}

// Register godoc
// @Summary      Register a farmer
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterFarmerRequest true "Registration request"
// @Success      201 {object} dto.Response{data=identityapp.AuthResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /farmers/register [post]
func (h *FarmerHandler) Register(c *gin.Context) {
	var req identityapp.RegisterFarmerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.farmerService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login godoc
// @Summary      Farmer log in
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=identityapp.AuthResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /farmers/login [post]
func (h *FarmerHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.farmerService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @Summary      List farmers
// @Tags         farmers
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identityapp.FarmerResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /farmers [get]
func (h *FarmerHandler) List(c *gin.Context) {
	farmers, err := h.farmerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, farmers, len(farmers))
}

// Delete godoc
// @Summary      Delete a farmer
// @Tags         farmers
// @Produce      json
// @Param        id path string true "Farmer ID" format(uuid)
// @Success      200 {object} dto.Response{data=dto.MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /farmers/{id} [delete]
func (h *FarmerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "Farmer")
	if !ok {
		return
	}

	if err := h.farmerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Removed(c, "Farmer")
}

// Products godoc
// @Summary      List own products
// @Tags         farmers
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /farmers/products [get]
func (h *FarmerHandler) Products(c *gin.Context) {
	farmerID, ok := h.currentFarmerID(c)
	if !ok {
		return
	}

	products, err := h.productService.ListByFarmer(c.Request.Context(), farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// CreateProduct godoc
// @Summary      Create an own product
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /farmers/products [post]
func (h *FarmerHandler) CreateProduct(c *gin.Context) {
	farmerID, ok := h.currentFarmerID(c)
	if !ok {
		return
	}
	var req catalogapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), req, &farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Sales godoc
// @Summary      Own sales
// @Description  Orders containing the farmer's products, reduced to those products
// @Tags         farmers
// @Produce      json
// @Success      200 {object} dto.Response{data=[]reportapp.FarmerSaleResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /farmers/sales [get]
func (h *FarmerHandler) Sales(c *gin.Context) {
	farmerID, ok := h.currentFarmerID(c)
	if !ok {
		return
	}

	sales, err := h.reportService.FarmerSales(c.Request.Context(), farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, sales, len(sales))
}

// CreateCategory godoc
// @Summary      Create a category as a farmer
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category"
// @Success      201 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /farmers/categories [post]
func (h *FarmerHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Upload godoc
// @Summary      Upload a product image as a farmer
// @Tags         farmers
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Image (jpeg, png, webp, gif)"
// @Success      200 {object} dto.Response{data=catalogapp.UploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /farmers/upload [post]
func (h *FarmerHandler) Upload(c *gin.Context) {
	h.uploads.upload(c, "farmers")
}
