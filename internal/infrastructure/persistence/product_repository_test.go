package persistence

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormProductRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	fruit := seedCategory(t, db, "Fruit")
	veg := seedCategory(t, db, "Vegetables")
	seedProduct(t, db, fruit, "Green Apple", "1.50", 10)
	seedProduct(t, db, fruit, "Banana", "0.75", 5)
	seedProduct(t, db, veg, "Pineapple Sage", "3.00", 2)

	t.Run("no filter returns everything with category names", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, products, 3)
		for _, p := range products {
			assert.NotEmpty(t, p.CategoryName)
		}
	})

	t.Run("keyword is a case-insensitive substring", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{Keyword: "APPLE"})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("keyword and category combine", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{Keyword: "apple", CategoryID: &fruit.ID})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Green Apple", products[0].Name)
		assert.Equal(t, "Fruit", products[0].CategoryName)
	})

	t.Run("like wildcards are literal", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{Keyword: "%"})
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_SaveRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	cat := seedCategory(t, db, "Dairy")
	p := seedProduct(t, db, cat, "Milk", "2.25", 4)
	farmer := uuid.New()
	p.AssignFarmer(farmer)
	p.SetImages([]string{"/uploads/milk.png"})
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("2.25")))
	assert.Equal(t, []string{"/uploads/milk.png"}, got.Images)
	assert.Equal(t, "Dairy", got.CategoryName)
	require.NotNil(t, got.FarmerID)
	assert.Equal(t, farmer, *got.FarmerID)

	ids, err := repo.FindIDsByFarmer(ctx, farmer)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p.ID}, ids)

	count, err := repo.CountByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormProductRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "Product not found", err.Error())

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), shared.ErrNotFound)
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, seedCategory(t, db, "Grain"), "Rice", "1.00", 5)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 3))

	err := repo.DecrementStock(ctx, p.ID, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, "Insufficient stock for Rice: requested 3, available 2", err.Error())

	err = repo.DecrementStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, repo.IncrementStock(ctx, p.ID, 4))
	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.CountInStock)
}

func TestGormProductRepository_DecrementStockConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, seedCategory(t, db, "Eggs"), "Eggs", "0.20", 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.DecrementStock(ctx, p.ID, 1) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CountInStock)
}

func TestGormProductRepository_DecrementStockSQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "count_in_stock"=count_in_stock - $1 WHERE id = $2 AND count_in_stock >= $3`)).
		WithArgs(4, id, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewGormProductRepository(db).DecrementStock(context.Background(), id, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
