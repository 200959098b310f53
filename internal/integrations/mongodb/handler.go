package mongodb

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	repository SnapshotRepository
}

func NewSnapshotHandler(repository SnapshotRepository) *SnapshotHandler {
	return &SnapshotHandler{repository: repository}
}

func (h *SnapshotHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports/snapshots", h.getSnapshots)
}

func (h *SnapshotHandler) getSnapshots(c *gin.Context) {
	var query struct {
		Limit int64 `form:"limit,default=7" binding:"min=1,max=90"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	snapshots, err := h.repository.LatestSnapshots(c.Request.Context(), query.Limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch valuation snapshots", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}
