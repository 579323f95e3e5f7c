package main

import (
	"fmt"
	"net/http"
	"os"

	"marketbook/internal/config"
	"marketbook/internal/database"
	"marketbook/internal/handlers"
	"marketbook/internal/logger"
	"marketbook/internal/middleware"
	"marketbook/internal/services"
	"marketbook/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "marketbook/internal/docs" // Import swagger docs
)

// @title           Marketbook API
// @version         1.0
// @description     Marketbook is a multi-tenant marketplace back office for small vendors: product catalog, sales recording, and a tamper-evident per-tenant audit ledger.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services. The audit service sits under everything that
	// mutates tenant data: every mutating service records through it, and a
	// failed audit write fails the mutation's request.
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, auditService)
	productService := services.NewProductService(db, auditService)
	saleService := services.NewSaleService(db, productService, auditService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService, userService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Product routes
	products := protected.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.GetProducts)
	products.GET("/:id", productHandler.GetProductByID)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	// Sale routes
	sales := protected.Group("/sales")
	sales.POST("", saleHandler.CreateSale)
	sales.GET("", saleHandler.GetSales)
	sales.POST("/export", saleHandler.ExportSales)
	sales.GET("/:id", saleHandler.GetSaleByID)
	sales.DELETE("/:id", saleHandler.DeleteSale)

	// Audit routes
	audit := protected.Group("/audit")
	audit.GET("/entries", auditHandler.GetAuditEntries)
	audit.GET("/access-log", auditHandler.GetAccessLog)
	audit.GET("/verify", auditHandler.VerifyChain)

	log.Infof("Starting Marketbook backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
