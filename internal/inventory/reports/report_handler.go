package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *Service
}

func NewReportHandler(service *Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports/summary", h.GetSummary)
	router.GET("/reports/:kind", h.DownloadReport)
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to build report summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) DownloadReport(c *gin.Context) {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown report", "details": err.Error()})
		return
	}
	f, err := ParseFormat(c.Query("format"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid report format", "details": err.Error()})
		return
	}

	artifact, err := h.service.Export(c.Request.Context(), kind, f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to export report", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}
