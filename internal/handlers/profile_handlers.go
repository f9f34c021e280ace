package handlers

import (
	"errors"
	"net/http"
	"time"

	"studio_crm_backend/internal/services"
	"studio_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the customer profile service.
type ProfileHandler struct {
	profileService services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// GetProfiles serves all customer profiles, highest spend first.
func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	profiles, err := h.profileService.ListProfiles()
	if respondDatasetError(c, err, "GetProfiles: Error from profileService.ListProfiles") {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  profiles,
		"total": len(profiles),
	})
}

// GetProfileSummary serves the customer cards.
func (h *ProfileHandler) GetProfileSummary(c *gin.Context) {
	summary, err := h.profileService.Summary()
	if respondDatasetError(c, err, "GetProfileSummary: Error from profileService.Summary") {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportProfiles serves the stored customer report as a file download.
func (h *ProfileHandler) ExportProfiles(c *gin.Context) {
	format := c.DefaultQuery("format", services.FormatCSV)

	artifact, err := h.profileService.Export(format, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrUnknownFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown export format.", err.Error()))
			return
		}
		if respondDatasetError(c, err, "ExportProfiles: Error from profileService.Export") {
			return
		}
	}
	serveArtifact(c, artifact)
}
