package consumption

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewConsumptionHandler(NewService(memory.NewSampleStore(), zap.NewNop()))
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateConsumptionHandler(t *testing.T) {
	router := setupRouter()

	over := completeDraft()
	over.QuantityUsed = "50"

	tests := []struct {
		name           string
		payload        Draft
		expectedStatus int
		expectedError  string
	}{
		{"insufficient stock", over, http.StatusUnprocessableEntity, "Insufficient Stock"},
		{"missing date", func() Draft { d := completeDraft(); d.Date = ""; return d }(), http.StatusBadRequest, "Missing Information"},
		{"accepted", completeDraft(), http.StatusCreated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/consumption", tt.payload)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				assert.Equal(t, tt.payload.QuantityUsed, body["draft"].(map[string]interface{})["quantity_used"])
				return
			}
			notification := body["notification"].(map[string]interface{})
			assert.Equal(t, "Successfully recorded consumption of 5 Bags of Portland Cement", notification["message"])
		})
	}
}

func TestInsufficientStockDetails(t *testing.T) {
	router := setupRouter()
	over := completeDraft()
	over.QuantityUsed = "50"

	w := postJSON(router, "/api/consumption", over)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Details   string  `json:"details"`
		Available float64 `json:"available"`
		Unit      string  `json:"unit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Only 45 Bags available in stock.", body.Details)
	assert.Equal(t, float64(45), body.Available)
	assert.Equal(t, "Bags", body.Unit)
}

func TestConsumptionPreviewEndpoint(t *testing.T) {
	router := setupRouter()

	w := postJSON(router, "/api/consumption/draft/preview", Draft{ItemCode: "SND-001", QuantityUsed: "10"})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Exceeds available stock by 1.5", body["preview"])
	assert.Equal(t, false, body["submit_enabled"])
	assert.Equal(t, 8.5, body["available_stock"])
}
