package router

import (
	"studio_crm_backend/internal/handlers"
	"studio_crm_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes sets up the dashboard summary routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		dashboardRoutes.GET("/summary", dashboardHandler.GetDashboardSummary)
		dashboardRoutes.GET("/renewals", dashboardHandler.GetRenewalPipeline)
		dashboardRoutes.GET("/at-risk", dashboardHandler.GetAtRiskMembers)
	}
}

// SetupMemberRoutes sets up the member routes.
func SetupMemberRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	memberRoutes := authenticatedGroup.Group("/members")
	memberRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		memberRoutes.GET("", memberHandler.GetMembers)
		memberRoutes.GET("/export", memberHandler.ExportMembers)
	}
}

// SetupPlanRoutes sets up the expiring-plans routes.
func SetupPlanRoutes(authenticatedGroup *gin.RouterGroup, planHandler *handlers.PlanHandler) {
	planRoutes := authenticatedGroup.Group("/plans")
	planRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		planRoutes.GET("", planHandler.GetPlans)
		planRoutes.GET("/summary", planHandler.GetPlanSummary)
		planRoutes.GET("/export", planHandler.ExportPlans)
	}
}

// SetupProfileRoutes sets up the customer-profiles routes.
func SetupProfileRoutes(authenticatedGroup *gin.RouterGroup, profileHandler *handlers.ProfileHandler) {
	profileRoutes := authenticatedGroup.Group("/profiles")
	profileRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		profileRoutes.GET("", profileHandler.GetProfiles)
		profileRoutes.GET("/summary", profileHandler.GetProfileSummary)
		profileRoutes.GET("/export", profileHandler.ExportProfiles)
	}
}

// SetupDatasetRoutes sets up the raw dataset store routes. Replacing or
// clearing data is Admin-only.
func SetupDatasetRoutes(authenticatedGroup *gin.RouterGroup, datasetHandler *handlers.DatasetHandler) {
	datasetWriteRoutes := authenticatedGroup.Group("/datasets")
	datasetWriteRoutes.Use(middleware.RoleAuthMiddleware("Admin"))
	{
		datasetWriteRoutes.PUT("/:key", datasetHandler.PutDataset)
		datasetWriteRoutes.DELETE("/:key", datasetHandler.DeleteDataset)
	}

	authenticatedGroup.GET("/datasets/:key", middleware.RoleAuthMiddleware("Admin", "Staff"), datasetHandler.GetDataset)
}

// SetupDownloadRoutes sets up the simulated report download routes.
func SetupDownloadRoutes(authenticatedGroup *gin.RouterGroup, downloadHandler *handlers.DownloadHandler) {
	downloadRoutes := authenticatedGroup.Group("/downloads")
	downloadRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		downloadRoutes.GET("", downloadHandler.GetDownloads)
		downloadRoutes.POST("/start", downloadHandler.StartDownloads)
		downloadRoutes.POST("/reset", downloadHandler.ResetDownloads)
	}
}
