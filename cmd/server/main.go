package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"studio_crm_backend/internal/router"
	"studio_crm_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	utils.SetJWTSecret(utils.Getenv("JWT_SECRET", "a_very_secret_key_that_should_be_in_env"))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	cfg := router.Config{
		OperatorUsername: utils.Getenv("DASHBOARD_USERNAME", "elvira"),
		OperatorPassword: utils.Getenv("DASHBOARD_PASSWORD", "elvira"),
		StudioName:       utils.Getenv("STUDIO_NAME", "Bang! Studio"),
		DownloadDelay:    utils.GetenvDuration("DOWNLOAD_FILE_DELAY", 5*time.Second),
		DataDir:          os.Getenv("DATA_DIR"),
		RunCtx:           runCtx,
	}
	if err := router.Setup(engine, cfg); err != nil {
		utils.LogError(err, "Failed to set up application routes")
		log.Fatalf("Failed to set up application routes: %v", err)
	}

	// Server port configuration
	port := utils.Getenv("PORT", "8080") // Default to 8080 if not set
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})
	utils.LogInfo("Frontend should be configured to make API calls", map[string]interface{}{"url": "http://localhost:" + port + "/api/v1"})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
