package router

import (
	"github.com/freshmart/backend/internal/interfaces/http/handler"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every API handler
type Handlers struct {
	User      *handler.UserHandler
	Farmer    *handler.FarmerHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	Upload    *handler.UploadHandler
	Customer  *handler.CustomerHandler
	Order     *handler.OrderHandler
	Sale      *handler.SaleHandler
	Payment   *handler.PaymentHandler
	Message   *handler.MessageHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler
}

// APIGroups builds the /api/v1 route groups. Access control is attached per
// route: protect, then the role check. idempotent guards the create routes
// that move stock or money; nil disables it.
func APIGroups(h Handlers, authn *middleware.Authenticator, idempotent gin.HandlerFunc) []*DomainGroup {
	if idempotent == nil {
		idempotent = func(c *gin.Context) { c.Next() }
	}
	protect := authn.Protect()
	admin := authn.Admin()
	staff := authn.Staff()
	farmer := authn.ProtectFarmer()

	users := NewDomainGroup("users", "/users")
	users.POST("", h.User.Register)
	users.POST("/login", h.User.Login)
	users.POST("/logout", protect, h.User.Logout)
	users.GET("/profile", protect, h.User.GetProfile)
	users.PUT("/profile", protect, h.User.UpdateProfile)
	users.GET("", protect, admin, h.User.List)
	users.DELETE("/:id", protect, admin, h.User.Delete)

	farmers := NewDomainGroup("farmers", "/farmers")
	farmers.POST("/register", h.Farmer.Register)
	farmers.POST("/login", h.Farmer.Login)
	farmers.GET("", protect, staff, h.Farmer.List)
	farmers.DELETE("/:id", protect, admin, h.Farmer.Delete)
	farmers.GET("/products", farmer, h.Farmer.Products)
	farmers.POST("/products", farmer, h.Farmer.CreateProduct)
	farmers.GET("/sales", farmer, h.Farmer.Sales)
	farmers.POST("/categories", farmer, h.Farmer.CreateCategory)
	farmers.POST("/upload", farmer, h.Farmer.Upload)

	categories := NewDomainGroup("categories", "/categories")
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.Get)
	categories.POST("", protect, staff, h.Category.Create)
	categories.PUT("/:id", protect, staff, h.Category.Update)
	categories.DELETE("/:id", protect, staff, h.Category.Delete)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)
	products.POST("", protect, staff, h.Product.Create)
	products.PUT("/:id", protect, staff, h.Product.Update)
	products.DELETE("/:id", protect, staff, h.Product.Delete)

	uploads := NewDomainGroup("uploads", "/uploads")
	uploads.POST("", authn.StaffOrFarmer(), h.Upload.Upload)

	customers := NewDomainGroup("customers", "/customers").Use(protect, admin)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.POST("", h.Customer.Create)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", h.Customer.Delete)

	orders := NewDomainGroup("orders", "/orders").Use(protect)
	orders.POST("", idempotent, h.Order.Place)
	orders.GET("/myorders", h.Order.Mine)
	orders.GET("", admin, h.Order.List)
	orders.GET("/:id", admin, h.Order.Get)
	orders.PUT("/:id/status", admin, h.Order.UpdateStatus)
	orders.DELETE("/:id", admin, h.Order.Delete)

	sales := NewDomainGroup("sales", "/sales").Use(protect, admin)
	sales.POST("", idempotent, h.Sale.Add)
	sales.GET("", h.Sale.List)
	sales.GET("/summary", h.Sale.Summary)

	payments := NewDomainGroup("payments", "/payments").Use(protect, admin)
	payments.POST("", idempotent, h.Payment.Add)
	payments.GET("", h.Payment.List)
	payments.GET("/:id", h.Payment.Get)

	messages := NewDomainGroup("messages", "/messages")
	messages.POST("", h.Message.Send)
	messages.GET("", protect, admin, h.Message.List)
	messages.GET("/:id", protect, admin, h.Message.Get)
	messages.PUT("/:id/read", protect, admin, h.Message.MarkRead)
	messages.DELETE("/:id", protect, admin, h.Message.Delete)

	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(protect, staff)
	dashboard.GET("/stats", h.Dashboard.Stats)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.Info)

	return []*DomainGroup{
		users, farmers, categories, products, uploads, customers,
		orders, sales, payments, messages, dashboard, system,
	}
}
