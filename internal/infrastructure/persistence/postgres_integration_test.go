//go:build integration

package persistence

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/freshmart/backend/internal/domain/shared"
	domaintrade "github.com/freshmart/backend/internal/domain/trade"
	"github.com/freshmart/backend/internal/infrastructure/migration"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run with: go test -tags integration ./internal/infrastructure/persistence/...
// Requires a Docker daemon.

var (
	pgOnce sync.Once
	pgDSN  string
	pgErr  error
)

// setupPostgresDB starts one PostgreSQL container per test binary, applies
// the embedded migrations once and truncates every table for each test.
func setupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgOnce.Do(func() {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("freshmart_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			pgErr = err
			return
		}
		pgDSN, pgErr = container.ConnectionString(ctx, "sslmode=disable")
		if pgErr != nil {
			return
		}

		db, err := gorm.Open(gormpostgres.Open(pgDSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			pgErr = err
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			pgErr = err
			return
		}
		defer sqlDB.Close()

		m, err := migration.New(sqlDB, zap.NewNop())
		if err != nil {
			pgErr = err
			return
		}
		pgErr = m.Up()
	})
	require.NoError(t, pgErr, "PostgreSQL container setup failed")

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(gormpostgres.Open(pgDSN), gormConfig)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec(`TRUNCATE TABLE payments, sales, order_items, orders,
		products, categories, customers, messages, farmers, users CASCADE`).Error)
	return db
}

func TestPostgres_DecrementStockNeverGoesNegative(t *testing.T) {
	db := setupPostgresDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	cat := seedCategory(t, db, "Vegetables")
	carrot := seedProduct(t, db, cat, "Carrot", "0.80", 5)

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.DecrementStock(ctx, carrot.ID, 1)
		}()
	}
	wg.Wait()
	close(results)

	succeeded, short := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		short++
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, short)

	got, err := repo.FindByID(ctx, carrot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CountInStock)
}

func TestPostgres_OrderRoundTrip(t *testing.T) {
	db := setupPostgresDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	cat := seedCategory(t, db, "Dairy")
	milk := seedProduct(t, db, cat, "Milk", "1.25", 20)
	user := uuid.New()

	order, err := domaintrade.NewOrder(user, nil, []domaintrade.OrderItem{
		{ProductID: milk.ID, ProductName: milk.Name, Quantity: 4, Price: milk.Price},
	}, domaintrade.ShippingAddress{Address: "7 Dairy Lane", City: "Berbera"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("5")))

	containing, err := repo.FindContainingProducts(ctx, []uuid.UUID{milk.ID})
	require.NoError(t, err)
	assert.Len(t, containing, 1)

	require.NoError(t, repo.Delete(ctx, order.ID))
	var items int64
	require.NoError(t, db.Table("order_items").Where("order_id = ?", order.ID).Count(&items).Error)
	assert.Zero(t, items)
}

func TestPostgres_CategoryNameIsCaseInsensitive(t *testing.T) {
	db := setupPostgresDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	seedCategory(t, db, "Herbs")

	exists, err := repo.ExistsByName(ctx, "HERBS", nil)
	require.NoError(t, err)
	assert.True(t, exists)
}
