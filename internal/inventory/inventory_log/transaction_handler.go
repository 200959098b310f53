package inventorylog

import (
	"net/http"
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxLimit = 500

type retrieveLogQuery struct {
	Type     string `form:"type"`
	ItemCode string `form:"item_code"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

func (q retrieveLogQuery) filter() (store.LogFilter, error) {
	filter := store.LogFilter{
		ItemCode: strings.TrimSpace(q.ItemCode),
		Limit:    min(q.Limit, maxLimit),
	}
	if q.Type != "" {
		t, err := metadata.NewTransactionType(strings.ToLower(q.Type))
		if err != nil {
			return store.LogFilter{}, err
		}
		filter.Type = t
	}
	return filter, nil
}

type TransactionHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewTransactionHandler(s store.Store, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{store: s, logger: logger.Named("transactions")}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", h.GetTransactions)
}

func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var query retrieveLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}
	filter, err := query.filter()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	logs, err := store.FindTransactionLogs(c.Request.Context(), h.store, filter)
	if err != nil {
		h.logger.Error("Unable to list transaction logs", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch transactions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
