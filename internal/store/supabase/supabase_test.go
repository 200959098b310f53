package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/sampledata"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorded struct {
	method  string
	path    string
	query   map[string]string
	headers http.Header
	body    []byte
}

func newTestStore(t *testing.T, status int, response any) (*Store, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.headers = r.Header.Clone()
		rec.query = map[string]string{}
		for key := range r.URL.Query() {
			rec.query[key] = r.URL.Query().Get(key)
		}
		rec.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)

	return NewStore(config.SupabaseConfig{URL: server.URL + "/", Key: "service-key"}, zap.NewNop()), rec
}

func TestListInventoryItems(t *testing.T) {
	s, rec := newTestStore(t, http.StatusOK, sampledata.Items())

	items, err := s.ListInventoryItems(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, "CEM-001", items[0].ItemCode)
	assert.True(t, items[0].CurrentStock.Equal(sampledata.Items()[0].CurrentStock))
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/rest/v1/inventory_items", rec.path)
	assert.Equal(t, "item_name.asc", rec.query["order"])
	assert.Equal(t, "service-key", rec.headers.Get("apikey"))
	assert.Equal(t, "Bearer service-key", rec.headers.Get("Authorization"))
}

func TestListOrdering(t *testing.T) {
	tests := []struct {
		name          string
		call          func(s *Store) error
		expectedPath  string
		expectedOrder string
	}{
		{
			name: "receipts",
			call: func(s *Store) error {
				_, err := s.ListStockReceipts(context.Background())
				return err
			},
			expectedPath:  "/rest/v1/stock_receipts",
			expectedOrder: "created_at.desc",
		},
		{
			name: "consumption",
			call: func(s *Store) error {
				_, err := s.ListStockConsumption(context.Background())
				return err
			},
			expectedPath:  "/rest/v1/stock_consumption",
			expectedOrder: "created_at.desc",
		},
		{
			name: "logs",
			call: func(s *Store) error {
				_, err := s.ListTransactionLogs(context.Background())
				return err
			},
			expectedPath:  "/rest/v1/transaction_logs",
			expectedOrder: "timestamp.desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestStore(t, http.StatusOK, []any{})

			require.NoError(t, tt.call(s))
			assert.Equal(t, tt.expectedPath, rec.path)
			assert.Equal(t, tt.expectedOrder, rec.query["order"])
		})
	}
}

func TestFindTransactionLogsFilters(t *testing.T) {
	s, rec := newTestStore(t, http.StatusOK, sampledata.TransactionLogs()[:1])

	logs, err := s.FindTransactionLogs(context.Background(), store.LogFilter{
		Type:     metadata.TransactionConsumption,
		ItemCode: "CEM-001",
		Limit:    10,
	})

	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, "eq.consumption", rec.query["type"])
	assert.Equal(t, "ilike.CEM-001", rec.query["item_code"])
	assert.Equal(t, "10", rec.query["limit"])
}

func TestFindTransactionLogsMatchesItemCodeLiterally(t *testing.T) {
	tests := []struct {
		name            string
		itemCode        string
		response        []models.TransactionLog
		expectedPattern string
		expectedLimit   string
		expectedIDs     []string
	}{
		{
			name:            "like wildcards are escaped",
			itemCode:        "PIPE_50%",
			response:        []models.TransactionLog{{ID: "1", ItemCode: "pipe_50%"}},
			expectedPattern: `ilike.PIPE\_50\%`,
			expectedLimit:   "1",
			expectedIDs:     []string{"1"},
		},
		{
			name:            "backslash is escaped",
			itemCode:        `A\B`,
			response:        []models.TransactionLog{{ID: "1", ItemCode: `A\B`}},
			expectedPattern: `ilike.A\\B`,
			expectedLimit:   "1",
			expectedIDs:     []string{"1"},
		},
		{
			name:     "star rows are narrowed locally",
			itemCode: "ROD*8",
			response: []models.TransactionLog{
				{ID: "3", ItemCode: "ROD-8"},
				{ID: "2", ItemCode: "rod*8"},
				{ID: "1", ItemCode: "ROD*8"},
			},
			expectedPattern: "ilike.ROD_8",
			expectedLimit:   "",
			expectedIDs:     []string{"2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestStore(t, http.StatusOK, tt.response)

			logs, err := s.FindTransactionLogs(context.Background(), store.LogFilter{ItemCode: tt.itemCode, Limit: 1})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPattern, rec.query["item_code"])
			assert.Equal(t, tt.expectedLimit, rec.query["limit"])
			ids := make([]string, 0, len(logs))
			for _, log := range logs {
				ids = append(ids, log.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestCreateStockReceipt(t *testing.T) {
	created := sampledata.Receipts()[:1]
	s, rec := newTestStore(t, http.StatusCreated, created)
	ctx := security.WithIdentity(context.Background(), security.Identity{Name: "Site Engineer", Token: "user-token"})

	entry, err := s.CreateStockReceipt(ctx, created[0].StockReceipt)

	require.NoError(t, err)
	assert.Equal(t, "1", entry.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/rest/v1/stock_receipts", rec.path)
	assert.Equal(t, "return=representation", rec.headers.Get("Prefer"))
	assert.Equal(t, "Bearer user-token", rec.headers.Get("Authorization"))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Site Engineer", body[0]["created_by"])
	assert.Equal(t, "CEM-001", body[0]["item_code"])
	assert.EqualValues(t, 21000, body[0]["total_value"])
	assert.Equal(t, "2024-01-08", body[0]["delivery_date"])
}

func TestCreateStockConsumptionFallsBackToUsedBy(t *testing.T) {
	created := sampledata.Consumption()[1:]
	s, rec := newTestStore(t, http.StatusCreated, created)

	entry, err := s.CreateStockConsumption(context.Background(), created[0].StockConsumption)

	require.NoError(t, err)
	assert.Equal(t, "CEM-001", entry.ItemCode)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, "Construction Team A", body[0]["created_by"])
}

func TestCreateRejected(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		response     any
		expectedCode string
		constraint   bool
	}{
		{
			name:         "check violation",
			status:       http.StatusBadRequest,
			response:     apiError{Code: "23514", Message: "new row violates check constraint"},
			expectedCode: custom_error.CodeCheckViolation,
			constraint:   true,
		},
		{
			name:         "raised by trigger",
			status:       http.StatusBadRequest,
			response:     apiError{Code: "P0001", Message: "Insufficient stock"},
			expectedCode: "P0001",
		},
		{
			name:     "outage",
			status:   http.StatusServiceUnavailable,
			response: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, tt.status, tt.response)

			_, err := s.CreateStockConsumption(context.Background(), sampledata.Consumption()[0].StockConsumption)

			var remote *custom_error.RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.expectedCode, remote.Code)
			assert.Equal(t, tt.constraint, remote.IsConstraintViolation())
		})
	}
}

func TestCreateEmptyRepresentation(t *testing.T) {
	s, _ := newTestStore(t, http.StatusCreated, []any{})

	_, err := s.CreateStockReceipt(context.Background(), sampledata.Receipts()[0].StockReceipt)

	assert.EqualError(t, err, "Unable to record stock receipt: empty response")
}

func TestUpsertInventoryItems(t *testing.T) {
	s, rec := newTestStore(t, http.StatusCreated, sampledata.Items())

	count, err := s.UpsertInventoryItems(context.Background(), sampledata.Items())

	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Equal(t, "item_code", rec.query["on_conflict"])
	assert.Equal(t, "resolution=merge-duplicates,return=representation", rec.headers.Get("Prefer"))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.NotContains(t, body[0], "id")
	assert.EqualValues(t, 18900, body[0]["total_value"])
}

func TestPing(t *testing.T) {
	s, rec := newTestStore(t, http.StatusOK, []any{})
	require.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, "1", rec.query["limit"])

	s, _ = newTestStore(t, http.StatusUnauthorized, apiError{Message: "Invalid API key"})
	assert.EqualError(t, s.Ping(context.Background()), "Supabase is unreachable: Invalid API key")
}
