package router

import (
	"context"
	"fmt"
	"time"

	"studio_crm_backend/internal/handlers"
	"studio_crm_backend/internal/middleware"
	"studio_crm_backend/internal/repositories"
	"studio_crm_backend/internal/seed"
	"studio_crm_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Config carries everything Setup needs from the environment.
type Config struct {
	OperatorUsername string
	OperatorPassword string
	StudioName       string
	DownloadDelay    time.Duration
	// DataDir optionally overrides the embedded sample datasets with
	// <key>.csv files from a local directory.
	DataDir string
	// RunCtx bounds background download runs; pass the server's base context.
	RunCtx context.Context
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, cfg Config) error {
	// Initialize Repositories
	datasetRepo := repositories.NewDatasetRepository()
	downloadRepo := repositories.NewDownloadRepository(seed.ReportFiles)
	authRepo := repositories.NewAuthRepository()

	if err := seed.LoadDefaults(datasetRepo); err != nil {
		return fmt.Errorf("failed to seed default datasets: %w", err)
	}
	if cfg.DataDir != "" {
		if err := seed.LoadFromDir(datasetRepo, cfg.DataDir); err != nil {
			return fmt.Errorf("failed to load datasets from %s: %w", cfg.DataDir, err)
		}
	}

	// Initialize Services
	authService, err := services.NewAuthService(authRepo, cfg.OperatorUsername, cfg.OperatorPassword)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}
	memberService := services.NewMemberService(datasetRepo, cfg.StudioName)
	reportService := services.NewReportService(memberService)
	planService := services.NewPlanService(datasetRepo)
	profileService := services.NewProfileService(datasetRepo)
	downloadService := services.NewDownloadService(downloadRepo, cfg.DownloadDelay)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	memberHandler := handlers.NewMemberHandler(memberService, reportService)
	planHandler := handlers.NewPlanHandler(planService)
	profileHandler := handlers.NewProfileHandler(profileService)
	datasetHandler := handlers.NewDatasetHandler(datasetRepo)
	downloadHandler := handlers.NewDownloadHandler(downloadService, cfg.RunCtx)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupDashboardRoutes(authenticated, dashboardHandler)
		SetupMemberRoutes(authenticated, memberHandler)
		SetupPlanRoutes(authenticated, planHandler)
		SetupProfileRoutes(authenticated, profileHandler)
		SetupDatasetRoutes(authenticated, datasetHandler)
		SetupDownloadRoutes(authenticated, downloadHandler)
	}

	return nil
}

// SetupPublicAuthRoutes wires the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
	group.POST("/refresh-token", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes wires the token-protected auth routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}
