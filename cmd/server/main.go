package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"os"      // For creating the uploads directory

	"payment_point/internal/api"        // Custom package for API handlers
	"payment_point/internal/config"     // Custom package for configuration
	"payment_point/internal/ledger"     // Balance ledger core
	"payment_point/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
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

	// Ensure the uploads directory exists
	uploadDir := "uploads"
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logrus.Fatalf("failed to create uploads directory: %v", err)
	}

	// Balance ledger service
	ledgerService := ledger.NewService(ledger.NewStore(db))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Serve uploaded profile images
	r.Static("/uploads", uploadDir)

	// API info endpoint
	r.GET("/", func(c *gin.Context) {
		api.Success(c, "Payment Point API", gin.H{
			"version": "1.0.0",
			"endpoints": gin.H{
				"membership": gin.H{
					"registration":       "POST /registration",
					"login":              "POST /login",
					"profile":            "GET /profile",
					"updateProfile":      "PUT /profile/update",
					"updateProfileImage": "PUT /profile/image",
				},
				"information": gin.H{
					"banner":   "GET /banner",
					"services": "GET /services",
				},
				"transaction": gin.H{
					"balance":     "GET /balance",
					"topup":       "POST /topup",
					"transaction": "POST /transaction",
					"history":     "GET /transaction/history",
				},
			},
		})
	})

	// Membership routes (public)
	r.POST("/registration", api.RegisterHandler(db))    // Registration endpoint
	r.POST("/login", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Information routes
	r.GET("/banner", api.GetBannerHandler(db)) // Banner endpoint (public)

	// Protected routes (require a valid bearer token)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	auth.GET("/profile", api.GetProfileHandler(db, redisClient))                                          // Profile endpoint
	auth.PUT("/profile/update", api.UpdateProfileHandler(db, redisClient))                                // Profile update endpoint
	auth.PUT("/profile/image", api.UpdateProfileImageHandler(db, redisClient, cfg.AppURL, uploadDir))     // Profile image endpoint
	auth.GET("/services", api.GetServicesHandler(db, redisClient))                                        // Service catalog endpoint
	auth.GET("/balance", api.GetBalanceHandler(ledgerService, redisClient))                               // Balance endpoint
	auth.POST("/topup", api.TopUpHandler(ledgerService, redisClient))                                     // Top-up endpoint
	auth.POST("/transaction", api.PaymentHandler(ledgerService, redisClient))                             // Payment endpoint
	auth.GET("/transaction/history", api.HistoryHandler(ledgerService))                                   // Transaction history endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
