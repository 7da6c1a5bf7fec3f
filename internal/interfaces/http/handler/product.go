package handler

import (
	"strconv"
	"strings"

	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	uploads        *UploadHandler
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, uploads *UploadHandler) *ProductHandler {
	return &ProductHandler{productService: productService, uploads: uploads}
}

// List godoc
// @Summary      List products
// @Description  Filter by category id and a case-insensitive name keyword
// @Tags         products
// @Produce      json
// @Param        category query string false "Category ID" format(uuid)
// @Param        keyword query string false "Name keyword"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := catalogapp.ProductListFilter{Keyword: strings.TrimSpace(c.Query("keyword"))}
	if raw := c.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// Get godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "Product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create godoc
// @Summary      Create a product
// @Description  Accepts JSON or multipart form data with an optional image file
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest false "Product (JSON)"
// @Param        image formData file false "Product image"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if isMultipart(c) {
		form, err := readProductForm(c)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if form.Category == nil {
			h.HandleError(c, shared.NewInvalidInputError("Category is required"))
			return
		}
		req = catalogapp.CreateProductRequest{
			Name:        form.Name,
			Description: form.Description,
			Category:    *form.Category,
		}
		if form.Price != nil {
			req.Price = *form.Price
		}
		if form.CountInStock != nil {
			req.CountInStock = *form.CountInStock
		}
		upload, err := h.uploads.storeFormImage(c, "products")
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if upload != nil {
			req.Images = []string{upload.URL}
		}
	} else if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), req, nil)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @Summary      Update a product
// @Description  Partial update. price, countInStock and isAvailable apply whenever present, zero values included. A new image replaces the image list.
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest false "Product changes (JSON)"
// @Param        image formData file false "Replacement image"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "Product")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if isMultipart(c) {
		form, err := readProductForm(c)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		req = catalogapp.UpdateProductRequest{
			Name:         form.Name,
			Description:  form.Description,
			Price:        form.Price,
			Category:     form.Category,
			CountInStock: form.CountInStock,
			IsAvailable:  form.IsAvailable,
		}
		upload, err := h.uploads.storeFormImage(c, "products")
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if upload != nil {
			req.Images = []string{upload.URL}
		}
	} else if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=dto.MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "Product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Removed(c, "Product")
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// productForm holds the text fields of a multipart product request. Fields
// absent from the form stay nil.
type productForm struct {
	Name         string
	Description  string
	Price        *decimal.Decimal
	Category     *uuid.UUID
	CountInStock *int
	IsAvailable  *bool
}

// readProductForm parses fields by hand: gin's form binding cannot decode
// uuid or decimal values.
func readProductForm(c *gin.Context) (*productForm, error) {
	form := &productForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}

	if raw, ok := c.GetPostForm("price"); ok && raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, shared.NewInvalidInputError("Invalid price")
		}
		form.Price = &price
	}
	if raw, ok := c.GetPostForm("category"); ok && raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, shared.NewInvalidInputError("Category not found")
		}
		form.Category = &id
	}
	if raw, ok := c.GetPostForm("countInStock"); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, shared.NewInvalidInputError("Invalid countInStock")
		}
		form.CountInStock = &n
	}
	if raw, ok := c.GetPostForm("isAvailable"); ok && raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, shared.NewInvalidInputError("Invalid isAvailable")
		}
		form.IsAvailable = &b
	}
	return form, nil
}
