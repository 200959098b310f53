package receipts

import (
	"net/http"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/forms"

	"github.com/gin-gonic/gin"
)

type ReceiptHandler struct {
	service *Service
}

func NewReceiptHandler(service *Service) *ReceiptHandler {
	return &ReceiptHandler{service: service}
}

type selectItemRequest struct {
	Draft    Draft  `json:"draft"`
	ItemCode string `json:"item_code" binding:"required"`
}

// RegisterRoutes mounts the receipt endpoints. submitGuards run before the
// create handler only.
func (h *ReceiptHandler) RegisterRoutes(router *gin.RouterGroup, submitGuards ...gin.HandlerFunc) {
	router.GET("/receipts", h.GetReceipts)
	router.POST("/receipts/draft/select-item", h.SelectItem)
	router.POST("/receipts/draft/preview", h.PreviewDraft)
	handlers := append(append([]gin.HandlerFunc{}, submitGuards...), h.CreateReceipt)
	router.POST("/receipts", handlers...)
}

func (h *ReceiptHandler) GetReceipts(c *gin.Context) {
	receipts, err := h.service.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch stock receipts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, receipts)
}

func (h *ReceiptHandler) SelectItem(c *gin.Context) {
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

func (h *ReceiptHandler) PreviewDraft(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.Preview(draft))
}

func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
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
