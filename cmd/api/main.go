package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"equipment-checklist-api/config"
	"equipment-checklist-api/controllers"
	"equipment-checklist-api/middleware"
	"equipment-checklist-api/routes"
	"equipment-checklist-api/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logging
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Load equipment definitions and open the record store
	config.InitChecklist()
	config.InitStore()
	defer config.Store.Close()

	// Seed the bootstrap admin on an empty users table
	identity := services.NewIdentityService(config.Store)
	if err := identity.SeedAdmin(); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	submissions := services.NewSubmissionService(config.Store, config.Checklist, services.NewPDFReportRenderer())
	export := services.NewExportService(config.Store)
	ctrl := controllers.NewSet(identity, submissions, export, config.Checklist)

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router, ctrl, identity)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Record store ready, %d equipment configured", len(config.Checklist.Equipment))

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
