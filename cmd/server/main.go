package main

import (
	"log"
	"time"

	"pos_system/internal/config"
	"pos_system/internal/database"
	"pos_system/internal/handlers"
	"pos_system/internal/redis"
	"pos_system/internal/repository"
	"pos_system/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	billRepo := repository.NewBillRepository(db)

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	authService := services.NewAuthService(userRepo, redisClient, sessionTTL)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, redisClient, cacheTTL)
	billService := services.NewBillService(billRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	billHandler := handlers.NewBillHandler(billService)

	// Setup routes
	router := gin.Default()

	// Auth endpoints
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", handlers.RequireAuth(authService), authHandler.Logout)

	// API endpoints
	api := router.Group("/api")
	{
		api.GET("/products", catalogHandler.GetProducts)
		api.GET("/products/:id", catalogHandler.GetProduct)
		api.GET("/categories", catalogHandler.GetCategories)

		api.GET("/bills", billHandler.GetBills)
		api.GET("/bills/summary", billHandler.GetBillSummary)
		api.POST("/bills", billHandler.CreateBill)
		api.PATCH("/bills/:id/complete", billHandler.CompleteBill)
	}

	// Catalog administration requires an authenticated session
	admin := router.Group("/api", handlers.RequireAuth(authService))
	{
		admin.POST("/products", catalogHandler.CreateProduct)
		admin.PUT("/products/:id", catalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

		admin.POST("/categories", catalogHandler.CreateCategory)
		admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
		admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
