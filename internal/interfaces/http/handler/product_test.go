package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productFixture struct {
	router     *gin.Engine
	products   *mockProductRepo
	categories *mockCategoryRepo
	storage    *memoryStorage
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products:   new(mockProductRepo),
		categories: new(mockCategoryRepo),
		storage:    newMemoryStorage(),
	}
	uploads := NewUploadHandler(catalogapp.NewUploadService(f.storage, 0, zap.NewNop()))
	h := NewProductHandler(catalogapp.NewProductService(f.products, f.categories), uploads)

	f.router = gin.New()
	f.router.GET("/products", h.List)
	f.router.GET("/products/:id", h.Get)
	f.router.POST("/products", h.Create)
	f.router.PUT("/products/:id", h.Update)
	f.router.DELETE("/products/:id", h.Delete)
	return f
}

func multipartForm(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		part, err := mw.CreateFormFile(ImageFormField, "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProductHandler_List(t *testing.T) {
	t.Run("passes keyword and category to the filter", func(t *testing.T) {
		f := newProductFixture()
		categoryID := uuid.New()
		tomato, _ := catalog.NewProduct("Tomato", "", decimal.NewFromInt(2), categoryID, 10)
		tomato.CategoryName = "Vegetables"
		f.products.On("FindAll", mock.Anything, catalog.ProductFilter{CategoryID: &categoryID, Keyword: "tom"}).
			Return([]catalog.Product{*tomato}, nil)

		w := performRequest(f.router, http.MethodGet, "/products?keyword=tom&category="+categoryID.String(), nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		items := decodeResponse(t, w).Data.([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "Tomato", item["name"])
		assert.Equal(t, "Vegetables", item["category"].(map[string]any)["name"])
	})

	t.Run("invalid category id", func(t *testing.T) {
		f := newProductFixture()

		w := performRequest(f.router, http.MethodGet, "/products?category=abc", nil, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.products.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_Create_JSON(t *testing.T) {
	f := newProductFixture()
	category, _ := catalog.NewCategory("Fruit", "")
	f.categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	w := performRequest(f.router, http.MethodPost, "/products", jsonBody(t, map[string]any{
		"name":         "Mango",
		"price":        "3.50",
		"category":     category.ID,
		"countInStock": 40,
		"images":       []string{"/uploads/products/mango.png"},
	}), "application/json")

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "Mango", data["name"])
	assert.Equal(t, "3.5", data["price"])
	assert.Equal(t, true, data["isAvailable"])
	assert.Equal(t, "Fruit", data["category"].(map[string]any)["name"])
	assert.Nil(t, data["farmer"])
}

func TestProductHandler_Create_Multipart(t *testing.T) {
	f := newProductFixture()
	category, _ := catalog.NewCategory("Fruit", "")
	f.categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body, contentType := multipartForm(t, map[string]string{
		"name":         "Papaya",
		"price":        "1.25",
		"category":     category.ID.String(),
		"countInStock": "12",
	}, pngHeader)

	w := performRequest(f.router, http.MethodPost, "/products", body, contentType)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	images := data["images"].([]any)
	require.Len(t, images, 1)
	assert.True(t, strings.HasPrefix(images[0].(string), "/uploads/products/image-"))
	assert.True(t, strings.HasSuffix(images[0].(string), ".png"))
	assert.Len(t, f.storage.objects, 1)
}

func TestProductHandler_Create_MultipartRejectsNonImage(t *testing.T) {
	f := newProductFixture()
	category, _ := catalog.NewCategory("Fruit", "")

	body, contentType := multipartForm(t, map[string]string{
		"name":     "Papaya",
		"price":    "1",
		"category": category.ID.String(),
	}, []byte("plain text, not an image"))

	w := performRequest(f.router, http.MethodPost, "/products", body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Images only", decodeResponse(t, w).Error.Message)
	f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductHandler_Update_AppliesZeroValues(t *testing.T) {
	f := newProductFixture()
	product, _ := catalog.NewProduct("Goat milk", "", decimal.NewFromInt(4), uuid.New(), 8)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)

	w := performRequest(f.router, http.MethodPut, "/products/"+product.ID.String(), jsonBody(t, map[string]any{
		"price":        "0",
		"countInStock": 0,
		"isAvailable":  false,
	}), "application/json")

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "Goat milk", data["name"])
	assert.Equal(t, "0", data["price"])
	assert.Equal(t, float64(0), data["countInStock"])
	assert.Equal(t, false, data["isAvailable"])
}

func TestProductHandler_Get_MalformedID(t *testing.T) {
	f := newProductFixture()

	w := performRequest(f.router, http.MethodGet, "/products/123", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeResponse(t, w).Error.Message)
}

func TestUploadHandler_Upload_Basic(t *testing.T) {
	storage := newMemoryStorage()
	h := NewUploadHandler(catalogapp.NewUploadService(storage, 0, zap.NewNop()))
	r := gin.New()
	r.POST("/uploads", h.Upload)

	t.Run("stores the image", func(t *testing.T) {
		body, contentType := multipartForm(t, nil, pngHeader)

		w := performRequest(r, http.MethodPost, "/uploads", body, contentType)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "image/png", data["contentType"])
		assert.True(t, strings.HasPrefix(data["key"].(string), "products/"))
	})

	t.Run("no file", func(t *testing.T) {
		body, contentType := multipartForm(t, map[string]string{"note": "forgot the file"}, nil)

		w := performRequest(r, http.MethodPost, "/uploads", body, contentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file uploaded", decodeResponse(t, w).Error.Message)
	})
}
