package handlers

import (
	"context"
	"errors"
	"net/http"

	"studio_crm_backend/internal/services"
	"studio_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DownloadHandler holds the download simulator service.
type DownloadHandler struct {
	downloadService services.DownloadService
	runCtx          context.Context
}

// NewDownloadHandler creates a new DownloadHandler. runCtx bounds the
// lifetime of background runs; it should be the server's base context, not a
// request context, because runs outlive the request that starts them.
func NewDownloadHandler(ds services.DownloadService, runCtx context.Context) *DownloadHandler {
	return &DownloadHandler{downloadService: ds, runCtx: runCtx}
}

// GetDownloads serves the per-file statuses and overall progress.
func (h *DownloadHandler) GetDownloads(c *gin.Context) {
	c.JSON(http.StatusOK, h.downloadService.Progress())
}

// StartDownloads kicks off a sequential download run.
func (h *DownloadHandler) StartDownloads(c *gin.Context) {
	runID, err := h.downloadService.Start(h.runCtx)
	if err != nil {
		if errors.Is(err, services.ErrDownloadInProgress) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A download run is already in progress.", err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to start downloads.", "Internal error"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}

// ResetDownloads returns every file to "available".
func (h *DownloadHandler) ResetDownloads(c *gin.Context) {
	if err := h.downloadService.Reset(); err != nil {
		if errors.Is(err, services.ErrDownloadInProgress) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cannot reset while a run is in progress.", err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reset downloads.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Download statuses reset"})
}
