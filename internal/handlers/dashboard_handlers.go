package handlers

import (
	"errors"
	"net/http"
	"time"

	"studio_crm_backend/internal/services"
	"studio_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the report service.
type DashboardHandler struct {
	reportService services.ReportService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(rs services.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: rs}
}

// respondDatasetError maps the shared dataset service errors onto API errors.
// Returns true when the error was handled.
func respondDatasetError(c *gin.Context, err error, context string) bool {
	if err == nil {
		return false
	}
	utils.LogError(err, context)
	if errors.Is(err, services.ErrDatasetNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Dataset has not been loaded.", err.Error()))
	} else if errors.Is(err, services.ErrMalformedCSV) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeMalformedData, "Stored dataset is malformed.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process dataset.", "Internal error"))
	}
	return true
}

// GetDashboardSummary serves the member counts and the revenue snapshot.
func (h *DashboardHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reportService.Summary(time.Now())
	if respondDatasetError(c, err, "GetDashboardSummary: Error from reportService.Summary") {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRenewalPipeline serves the 4-week expiration bucketing for the chart.
func (h *DashboardHandler) GetRenewalPipeline(c *gin.Context) {
	buckets, err := h.reportService.RenewalBuckets(time.Now())
	if respondDatasetError(c, err, "GetRenewalPipeline: Error from reportService.RenewalBuckets") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": buckets})
}

// GetAtRiskMembers serves the churn-watch table rows.
func (h *DashboardHandler) GetAtRiskMembers(c *gin.Context) {
	members, err := h.reportService.AtRisk(time.Now())
	if respondDatasetError(c, err, "GetAtRiskMembers: Error from reportService.AtRisk") {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  members,
		"total": len(members),
	})
}
