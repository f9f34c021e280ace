package handlers

import (
	"errors"
	"net/http"
	"time"

	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/services"
	"studio_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service.
type PlanHandler struct {
	planService services.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(ps services.PlanService) *PlanHandler {
	return &PlanHandler{planService: ps}
}

// planRow adds the row highlight class the table renderer keys off.
type planRow struct {
	models.Plan
	AlertLevel string `json:"alert_level"`
}

// GetPlans serves the filtered expiring plans, soonest expiry first.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(time.Now())
	if respondDatasetError(c, err, "GetPlans: Error from planService.ListPlans") {
		return
	}

	rows := make([]planRow, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, planRow{Plan: p, AlertLevel: p.AlertLevel()})
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"total": len(rows),
	})
}

// GetPlanSummary serves the expiring-plans cards.
func (h *PlanHandler) GetPlanSummary(c *gin.Context) {
	summary, err := h.planService.Summary(time.Now())
	if respondDatasetError(c, err, "GetPlanSummary: Error from planService.Summary") {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportPlans serves the filtered plan CSV (or spreadsheet variant) download.
func (h *PlanHandler) ExportPlans(c *gin.Context) {
	format := c.DefaultQuery("format", services.FormatCSV)

	artifact, err := h.planService.Export(format, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrUnknownFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown export format.", err.Error()))
			return
		}
		if respondDatasetError(c, err, "ExportPlans: Error from planService.Export") {
			return
		}
	}
	serveArtifact(c, artifact)
}
