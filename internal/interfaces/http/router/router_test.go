package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func reply(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	products := NewDomainGroup("products", "/products")
	products.GET("", reply("list")).
		GET("/:id", reply("one")).
		POST("", reply("created")).
		PUT("/:id", reply("updated")).
		PATCH("/:id", reply("patched")).
		DELETE("/:id", reply("removed"))

	r.Register(products).Setup()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/products", "list"},
		{http.MethodGet, "/api/v1/products/42", "one"},
		{http.MethodPost, "/api/v1/products", "created"},
		{http.MethodPut, "/api/v1/products/42", "updated"},
		{http.MethodPatch, "/api/v1/products/42", "patched"},
		{http.MethodDelete, "/api/v1/products/42", "removed"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.body, w.Body.String())
	}
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-API", "v1")
		c.Next()
	})
	r.Register(NewDomainGroup("sales", "/sales").GET("", reply("sales"))).Setup()
	engine.GET("/health", reply("ok"))

	assert.Equal(t, "v1", serve(engine, http.MethodGet, "/api/v1/sales").Header().Get("X-API"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-API"))
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("payments", "/payments").Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	g.GET("", reply("payments"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/payments").Code)
}

func TestDomainGroup_Subgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("farmers", "/farmers")
	g.POST("/login", reply("login"))
	g.Group("products", "/products").GET("", reply("farmer products"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/farmers/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "farmer products", w.Body.String())

	assert.Equal(t, "farmers", g.Name())
	assert.Equal(t, "/farmers", g.Prefix())
	assert.ElementsMatch(t, []Route{
		{Method: http.MethodPost, Path: "/farmers/login"},
		{Method: http.MethodGet, Path: "/farmers/products"},
	}, g.Routes())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/orders", joinPath("/orders", ""))
	assert.Equal(t, "/orders/myorders", joinPath("/orders", "/myorders"))
	assert.Equal(t, "/orders/:id/status", joinPath("/orders/", "/:id/status"))
	assert.Equal(t, "/stats", joinPath("", "/stats"))
}
