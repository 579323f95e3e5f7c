package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"marketbook/internal/handlers"
	"marketbook/internal/logger"
	"marketbook/internal/middleware"
	"marketbook/internal/models"
	"marketbook/internal/services"
	"marketbook/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integdb%d?mode=memory&cache=shared&_busy_timeout=5000", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Tenant{},
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.AuditEntry{},
		&models.AccessEntry{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, auditService)
	productService := services.NewProductService(db, auditService)
	saleService := services.NewSaleService(db, productService, auditService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService, userService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	products := protected.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.GetProducts)
	products.GET("/:id", productHandler.GetProductByID)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	sales := protected.Group("/sales")
	sales.POST("", saleHandler.CreateSale)
	sales.GET("", saleHandler.GetSales)
	sales.POST("/export", saleHandler.ExportSales)
	sales.GET("/:id", saleHandler.GetSaleByID)
	sales.DELETE("/:id", saleHandler.DeleteSale)

	audit := protected.Group("/audit")
	audit.GET("/entries", auditHandler.GetAuditEntries)
	audit.GET("/access-log", auditHandler.GetAccessLog)
	audit.GET("/verify", auditHandler.VerifyChain)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerTenant registers a tenant and returns the access token, refresh
// token, and tenant ID of the new owner account.
func (app *testApp) registerTenant(t *testing.T, tenantName, email, password string) (accessToken, refreshToken, tenantID string) {
	t.Helper()
	body := fmt.Sprintf(`{"tenant_name":%q,"email":%q,"password":%q,"first_name":"Test","last_name":"Owner"}`, tenantName, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["tenant_id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createProduct creates a product and returns its ID.
func (app *testApp) createProduct(t *testing.T, token, sku, name string, priceCents int64, stockQty int) string {
	t.Helper()
	body := fmt.Sprintf(`{"sku":%q,"name":%q,"price_cents":%d,"currency":"USD","stock_qty":%d}`, sku, name, priceCents, stockQty)
	rec := app.request("POST", "/api/v1/products", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	product := result["product"].(map[string]interface{})
	return product["id"].(string)
}

// verifyChain calls the verification endpoint and returns the parsed result.
func (app *testApp) verifyChain(t *testing.T, token string) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/audit/verify", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}
