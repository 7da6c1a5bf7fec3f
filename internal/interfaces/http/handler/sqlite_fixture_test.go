package handler

import (
	"context"
	"testing"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/freshmart/backend/internal/infrastructure/persistence"
	"github.com/freshmart/backend/internal/infrastructure/persistence/models"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// store wires the GORM repositories over a private in-memory sqlite database
type store struct {
	db         *gorm.DB
	users      *persistence.GormUserRepository
	farmers    *persistence.GormFarmerRepository
	categories *persistence.GormCategoryRepository
	products   *persistence.GormProductRepository
	customers  *persistence.GormCustomerRepository
	orders     *persistence.GormOrderRepository
	sales      *persistence.GormSaleRepository
	payments   *persistence.GormPaymentRepository
	messages   *persistence.GormMessageRepository
}

func newStore(t *testing.T) *store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	return &store{
		db:         db,
		users:      persistence.NewGormUserRepository(db),
		farmers:    persistence.NewGormFarmerRepository(db),
		categories: persistence.NewGormCategoryRepository(db),
		products:   persistence.NewGormProductRepository(db),
		customers:  persistence.NewGormCustomerRepository(db),
		orders:     persistence.NewGormOrderRepository(db),
		sales:      persistence.NewGormSaleRepository(db),
		payments:   persistence.NewGormPaymentRepository(db),
		messages:   persistence.NewGormMessageRepository(db),
	}
}

func (s *store) category(t *testing.T, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, "")
	require.NoError(t, err)
	require.NoError(t, s.categories.Save(context.Background(), c))
	return c
}

func (s *store) product(t *testing.T, c *catalog.Category, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", decimal.RequireFromString(price), c.ID, stock)
	require.NoError(t, err)
	require.NoError(t, s.products.Save(context.Background(), p))
	return p
}

func (s *store) farmer(t *testing.T, email, phone string) *identity.Farmer {
	t.Helper()
	f, err := identity.NewFarmer("Hodan Farm", email, "secret123", "Baidoa", phone, "")
	require.NoError(t, err)
	require.NoError(t, s.farmers.Save(context.Background(), f))
	return f
}

func (s *store) order(t *testing.T, p *catalog.Product, qty int) *trade.Order {
	t.Helper()
	items := []trade.OrderItem{{ProductID: p.ID, ProductName: p.Name, Quantity: qty, Price: p.Price}}
	o, err := trade.NewOrder(uuid.New(), nil, items, trade.ShippingAddress{Address: "Maka Al Mukarama", City: "Mogadishu"})
	require.NoError(t, err)
	require.NoError(t, s.orders.Save(context.Background(), o))
	return o
}

// withFarmer places an authenticated farmer in the context, standing in for ProtectFarmer
func withFarmer(farmer *identity.Farmer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthFarmerKey, farmer)
		c.Next()
	}
}
