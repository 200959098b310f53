package googlesheets

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type GoogleSheetsHandler struct {
	importer *ItemImporter
}

func NewGoogleSheetsHandler(importer *ItemImporter) *GoogleSheetsHandler {
	return &GoogleSheetsHandler{importer: importer}
}

func (h *GoogleSheetsHandler) RegisterRoutes(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, guards...), h.importItems)
	router.POST("/inventory/import", handlers...)
}

func (h *GoogleSheetsHandler) importItems(c *gin.Context) {
	result, err := h.importer.Import(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to import inventory from sheet", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
