package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCategoryRouter() (*gin.Engine, *mockCategoryRepo, *mockProductRepo) {
	categories := new(mockCategoryRepo)
	products := new(mockProductRepo)
	h := NewCategoryHandler(catalogapp.NewCategoryService(categories, products))

	r := gin.New()
	r.GET("/categories", h.List)
	r.GET("/categories/:id", h.Get)
	r.POST("/categories", h.Create)
	r.PUT("/categories/:id", h.Update)
	r.DELETE("/categories/:id", h.Delete)
	return r, categories, products
}

func TestCategoryHandler_List(t *testing.T) {
	r, categories, _ := setupCategoryRouter()
	vegetables, err := catalog.NewCategory("Vegetables", "Fresh from the farm")
	require.NoError(t, err)
	fruit, err := catalog.NewCategory("Fruit", "")
	require.NoError(t, err)
	categories.On("FindAll", mock.Anything).Return([]catalog.Category{*fruit, *vegetables}, nil)

	w := performRequest(r, http.MethodGet, "/categories", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	items := resp.Data.([]any)
	assert.Equal(t, "Fruit", items[0].(map[string]any)["name"])
}

func TestCategoryHandler_Get_NotFound(t *testing.T) {
	r, categories, _ := setupCategoryRouter()
	id := uuid.New()
	categories.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("Category"))

	w := performRequest(r, http.MethodGet, "/categories/"+id.String(), nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decodeResponse(t, w).Error.Message)
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		r, categories, _ := setupCategoryRouter()
		categories.On("ExistsByName", mock.Anything, "Dairy", (*uuid.UUID)(nil)).Return(false, nil)
		categories.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

		w := performRequest(r, http.MethodPost, "/categories",
			jsonBody(t, map[string]string{"name": "Dairy", "description": "Milk and cheese"}), "application/json")

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "Dairy", data["name"])
		assert.NotEmpty(t, data["id"])
		categories.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		r, categories, _ := setupCategoryRouter()
		categories.On("ExistsByName", mock.Anything, "Dairy", (*uuid.UUID)(nil)).Return(true, nil)

		w := performRequest(r, http.MethodPost, "/categories",
			jsonBody(t, map[string]string{"name": "Dairy"}), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
		assert.Equal(t, "Category already exists", resp.Error.Message)
		categories.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		r, _, _ := setupCategoryRouter()

		w := performRequest(r, http.MethodPost, "/categories",
			jsonBody(t, map[string]string{"description": "no name"}), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Run("referenced by products", func(t *testing.T) {
		r, categories, products := setupCategoryRouter()
		category, _ := catalog.NewCategory("Grains", "")
		categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		products.On("CountByCategory", mock.Anything, category.ID).Return(int64(4), nil)

		w := performRequest(r, http.MethodDelete, "/categories/"+category.ID.String(), nil, "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Category has products", decodeResponse(t, w).Error.Message)
		categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unused category", func(t *testing.T) {
		r, categories, products := setupCategoryRouter()
		category, _ := catalog.NewCategory("Grains", "")
		categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		products.On("CountByCategory", mock.Anything, category.ID).Return(int64(0), nil)
		categories.On("Delete", mock.Anything, category.ID).Return(nil)

		w := performRequest(r, http.MethodDelete, "/categories/"+category.ID.String(), nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Category removed", decodeResponse(t, w).Data.(map[string]any)["message"])
	})
}
