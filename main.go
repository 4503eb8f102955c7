package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"consulting-platform-server/config"
	"consulting-platform-server/database"
	"consulting-platform-server/middleware"
	"consulting-platform-server/routes"
	"consulting-platform-server/services"
	"consulting-platform-server/utils"
	ws "consulting-platform-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Structured logger for the service layer
	utils.InitializeLogger()
	defer utils.GetLogger().Sync()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Optional catalog seeding for fresh environments
	if os.Getenv("SEED_CATALOG") == "true" {
		if err := seedCatalog(); err != nil {
			log.Fatal("Failed to seed catalog:", err)
		}
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	// Realtime push hub
	ws.DefaultHub = ws.NewHub()
	go ws.DefaultHub.Run()

	// Periodically purge expired refresh tokens
	go func() {
		jwtService := services.NewJWTService()
		for range time.Tick(12 * time.Hour) {
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("⚠️ Refresh token cleanup failed: %v", err)
			}
		}
	}()

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		routes.RegisterAuthRoutes(apiV1)
		routes.RegisterCatalogRoutes(apiV1)

		protected := apiV1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterBookingRoutes(protected)
			routes.RegisterMessageRoutes(protected)
			routes.RegisterReviewRoutes(protected)
			routes.RegisterPaymentRoutes(protected)
			routes.RegisterNotificationRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminMiddleware())
			routes.RegisterAdminRoutes(admin)
		}

		routes.RegisterConsultantRoutes(apiV1, protected)

		// WebSocket auth uses a query token; browsers cannot set headers
		// on upgrade requests.
		wsGroup := apiV1.Group("")
		wsGroup.Use(middleware.WebSocketAuthMiddleware())
		routes.RegisterWebSocketRoutes(wsGroup)
	}

	port := config.AppConfig.Server.Port
	log.Printf("🚀 Consulting platform server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
