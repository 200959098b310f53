package ledger

import (
	"net/http"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LedgerHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewLedgerHandler(s store.Store, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{store: s, logger: logger.Named("ledger")}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/inventory/items", h.GetItems)
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/options", h.GetOptions)
}

func (h *LedgerHandler) GetItems(c *gin.Context) {
	items, err := h.store.ListInventoryItems(c.Request.Context())
	if err != nil {
		h.logger.Error("Unable to list inventory items", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch inventory items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *LedgerHandler) GetDashboard(c *gin.Context) {
	items, err := h.store.ListInventoryItems(c.Request.Context())
	if err != nil {
		h.logger.Error("Unable to list inventory items", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch inventory items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, Summarize(items))
}

func (h *LedgerHandler) GetOptions(c *gin.Context) {
	activities := metadata.ActivityCodes()
	values := make([]string, 0, len(activities))
	for _, a := range activities {
		values = append(values, a.String())
	}

	c.JSON(http.StatusOK, gin.H{
		"units":          metadata.Units(),
		"activity_codes": values,
	})
}
