package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library

	"lifetrack/internal/api"        // API handlers
	"lifetrack/internal/config"     // Configuration
	"lifetrack/internal/middleware" // Middleware
	"lifetrack/internal/service"    // Business logic
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := service.NewService(db, logrus.StandardLogger()) // Business logic layer

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/user", api.RegisterHandler(db))            // Registration endpoint
	r.GET("/user", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret) // Shared JWT guard

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallets")
	walletGroup.Use(auth)
	walletGroup.POST("", api.CreateWalletHandler(svc, redisClient))                    // Create wallet endpoint
	walletGroup.GET("", api.ListWalletsHandler(svc, redisClient))                      // List wallets endpoint
	walletGroup.GET("/:id", api.GetWalletHandler(svc, redisClient))                    // Wallet detail endpoint
	walletGroup.PATCH("/:id", api.UpdateWalletHandler(svc, redisClient))               // Edit wallet endpoint
	walletGroup.DELETE("/:id", api.DeleteWalletHandler(svc, redisClient))              // Delete wallet endpoint
	walletGroup.GET("/:id/transactions", api.ListWalletTransactionsHandler(svc))       // Per-wallet transactions endpoint

	// Transaction routes (protected by JWT)
	txGroup := r.Group("/transactions")
	txGroup.Use(auth)
	txGroup.POST("", api.CreateTransactionHandler(svc, redisClient))                   // Record income/expense endpoint
	txGroup.GET("", api.ListTransactionsHandler(svc, redisClient))                     // Transaction history endpoint
	txGroup.DELETE("/:id", api.DeleteTransactionHandler(svc, redisClient))             // Delete transaction endpoint
	txGroup.POST("/bulk-delete", api.BulkDeleteTransactionsHandler(svc, redisClient))  // Bulk delete endpoint

	// Task routes (protected by JWT)
	taskGroup := r.Group("/tasks")
	taskGroup.Use(auth)
	taskGroup.POST("", api.CreateTaskHandler(svc))      // Create task endpoint
	taskGroup.GET("", api.ListTasksHandler(svc))        // List tasks endpoint
	taskGroup.GET("/:id", api.GetTaskHandler(svc))      // Task detail endpoint
	taskGroup.PATCH("/:id", api.UpdateTaskHandler(svc)) // Edit task endpoint
	taskGroup.DELETE("/:id", api.DeleteTaskHandler(svc)) // Delete task endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(auth, middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", api.AdminListUsersHandler(db, redisClient))               // List users endpoint
	adminGroup.GET("/transactions", api.AdminListTransactionsHandler(db, redisClient)) // List transactions endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
