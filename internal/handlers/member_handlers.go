package handlers

import (
	"errors"
	"net/http"
	"time"

	"studio_crm_backend/internal/services"
	"studio_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member and report services.
type MemberHandler struct {
	memberService services.MemberService
	reportService services.ReportService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService, rs services.ReportService) *MemberHandler {
	return &MemberHandler{memberService: ms, reportService: rs}
}

// GetMembers serves all classified members.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers(time.Now())
	if respondDatasetError(c, err, "GetMembers: Error from memberService.ListMembers") {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  members,
		"total": len(members),
	})
}

// ExportMembers serves the outreach CSV for one member segment as a file
// download. Segments: all, expired, dormant, expiring. Format csv (default)
// or excel.
func (h *MemberHandler) ExportMembers(c *gin.Context) {
	segment := c.DefaultQuery("segment", services.SegmentAll)
	format := c.DefaultQuery("format", services.FormatCSV)

	artifact, err := h.reportService.ExportMembers(segment, format, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrUnknownSegment) || errors.Is(err, services.ErrUnknownFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown export segment or format.", err.Error()))
			return
		}
		if respondDatasetError(c, err, "ExportMembers: Error from reportService.ExportMembers") {
			return
		}
	}
	serveArtifact(c, artifact)
}

// serveArtifact writes an export artifact as an attachment download.
func serveArtifact(c *gin.Context, artifact *services.ExportArtifact) {
	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Header("X-Artifact-ID", artifact.ID)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}
