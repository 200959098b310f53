package consumption

import (
	"net/http"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/forms"

	"github.com/gin-gonic/gin"
)

type ConsumptionHandler struct {
	service *Service
}

func NewConsumptionHandler(service *Service) *ConsumptionHandler {
	return &ConsumptionHandler{service: service}
}

type selectItemRequest struct {
	Draft    Draft  `json:"draft"`
	ItemCode string `json:"item_code" binding:"required"`
}

func (h *ConsumptionHandler) RegisterRoutes(router *gin.RouterGroup, submitGuards ...gin.HandlerFunc) {
	router.GET("/consumption", h.GetConsumption)
	router.POST("/consumption/draft/select-item", h.SelectItem)
	router.POST("/consumption/draft/preview", h.PreviewDraft)
	handlers := append(append([]gin.HandlerFunc{}, submitGuards...), h.CreateConsumption)
	router.POST("/consumption", handlers...)
}

func (h *ConsumptionHandler) GetConsumption(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch stock consumption", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ConsumptionHandler) SelectItem(c *gin.Context) {
	var req selectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	preview, err := h.service.SelectItem(c.Request.Context(), req.Draft, req.ItemCode)
	if err != nil {
		forms.AbortWithError(c, err, req.Draft)
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (h *ConsumptionHandler) PreviewDraft(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	preview, err := h.service.Preview(c.Request.Context(), draft)
	if err != nil {
		forms.AbortWithError(c, err, draft)
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (h *ConsumptionHandler) CreateConsumption(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), draft)
	if err != nil {
		forms.AbortWithError(c, err, draft)
		return
	}

	c.JSON(http.StatusCreated, submission)
}
