package inventorylog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/sampledata"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/storetest"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetTransactions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStore := new(storetest.MockStore)
	router := gin.New()
	NewTransactionHandler(mockStore, zap.NewNop()).RegisterRoutes(router.Group("/api"))

	tests := []struct {
		name           string
		path           string
		setupMock      func()
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "all transactions",
			path: "/api/transactions",
			setupMock: func() {
				mockStore.On("ListTransactionLogs", mock.Anything).Return(sampledata.TransactionLogs(), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "filtered by type",
			path: "/api/transactions?type=Consumption",
			setupMock: func() {
				mockStore.On("ListTransactionLogs", mock.Anything).Return(sampledata.TransactionLogs(), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "unknown type",
			path:           "/api/transactions?type=transfer",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid limit",
			path:           "/api/transactions?limit=-1",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "backend down",
			path: "/api/transactions",
			setupMock: func() {
				mockStore.On("ListTransactionLogs", mock.Anything).Return(nil, errors.New("unreachable")).Once()
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var logs []models.TransactionLog
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
				assert.Len(t, logs, tt.expectedCount)
			}
		})
	}
	mockStore.AssertExpectations(t)
}
