package persistence

import (
	"context"
	"testing"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, "")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, category *catalog.Category, name string, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", decimal.RequireFromString(price), category.ID, stock)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}
