package handlers

import (
	"errors"
	"io"
	"net/http"

	"studio_crm_backend/internal/csvio"
	"studio_crm_backend/internal/repositories"
	"studio_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DatasetHandler exposes the raw CSV store behind the dashboard views.
type DatasetHandler struct {
	datasets repositories.DatasetRepository
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(datasets repositories.DatasetRepository) *DatasetHandler {
	return &DatasetHandler{datasets: datasets}
}

// PutDataset replaces the stored CSV text for one dataset key. The body must
// at least parse structurally (header row plus one data row); per-field
// problems are left for the views to degrade on.
func (h *DatasetHandler) PutDataset(c *gin.Context) {
	key := c.Param("key")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Failed to read request body.", err.Error()))
		return
	}

	raw := string(body)
	if _, err := csvio.Parse(raw); err != nil {
		utils.LogError(err, "PutDataset: structural validation failed for key "+key)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeMalformedData, "CSV must have a header row and at least one data row.", err.Error()))
		return
	}

	h.datasets.Save(key, raw)
	utils.LogInfo("Dataset replaced", map[string]interface{}{"key": key, "bytes": len(raw)})
	c.JSON(http.StatusOK, gin.H{"message": "Dataset stored", "key": key})
}

// GetDataset returns the stored raw CSV text for one dataset key.
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	key := c.Param("key")

	raw, err := h.datasets.Get(key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Dataset not found.", err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch dataset.", "Internal error"))
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(raw))
}

// DeleteDataset clears one dataset key. This is the only way stored data goes
// away short of a restart.
func (h *DatasetHandler) DeleteDataset(c *gin.Context) {
	key := c.Param("key")

	if err := h.datasets.Delete(key); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Dataset not found.", err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete dataset.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dataset deleted", "key": key})
}
