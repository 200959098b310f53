// Package supabase talks to a hosted Postgres through its PostgREST API.
// Stock and log bookkeeping for new entries runs in the hosted database.
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/security"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Store struct {
	httpClient *resty.Client
	key        string
	logger     *zap.Logger
}

func NewStore(cfg config.SupabaseConfig, logger *zap.Logger) *Store {
	base := strings.TrimSuffix(cfg.URL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base+"/rest/v1").
		SetHeader("apikey", cfg.Key).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Store{
		httpClient: restyClient,
		key:        cfg.Key,
		logger:     logger.Named("supabase"),
	}
}

// apiError is the PostgREST error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// request acts on behalf of the caller when the request carried a token,
// otherwise with the service key.
func (s *Store) request(ctx context.Context) *resty.Request {
	token := s.key
	if identity, ok := security.IdentityFrom(ctx); ok && identity.Token != "" {
		token = identity.Token
	}
	return s.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token)
}

func (s *Store) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	err := s.list(ctx, "inventory_items", "item_name.asc", &items, "Unable to load inventory items")
	return items, err
}

func (s *Store) ListStockReceipts(ctx context.Context) ([]models.StockReceiptEntry, error) {
	receipts := []models.StockReceiptEntry{}
	err := s.list(ctx, "stock_receipts", "created_at.desc", &receipts, "Unable to load stock receipts")
	return receipts, err
}

func (s *Store) ListStockConsumption(ctx context.Context) ([]models.StockConsumptionEntry, error) {
	entries := []models.StockConsumptionEntry{}
	err := s.list(ctx, "stock_consumption", "created_at.desc", &entries, "Unable to load stock consumption")
	return entries, err
}

func (s *Store) ListTransactionLogs(ctx context.Context) ([]models.TransactionLog, error) {
	return s.FindTransactionLogs(ctx, store.LogFilter{})
}

func (s *Store) FindTransactionLogs(ctx context.Context, filter store.LogFilter) ([]models.TransactionLog, error) {
	params := map[string]string{
		"select": "*",
		"order":  "timestamp.desc",
	}
	if filter.Type != "" {
		params["type"] = "eq." + string(filter.Type)
	}
	exact := true
	if filter.ItemCode != "" {
		var pattern string
		pattern, exact = itemCodePattern(filter.ItemCode)
		params["item_code"] = "ilike." + pattern
	}
	if filter.Limit > 0 && exact {
		params["limit"] = strconv.Itoa(filter.Limit)
	}

	logs := []models.TransactionLog{}
	apiErr := new(apiError)
	resp, err := s.request(ctx).
		SetQueryParams(params).
		SetResult(&logs).
		SetError(apiErr).
		Get("/transaction_logs")
	if err := s.check(resp, err, apiErr, "Unable to load transaction logs"); err != nil {
		return nil, err
	}
	return filter.Apply(logs), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `*`, `_`)

// itemCodePattern turns an item code into a case-insensitive ilike pattern
// that matches the code literally. PostgREST reads "*" as "%" and has no
// escape for it, so "*" widens to a one-character wildcard and exact is
// false: the caller must filter the rows itself.
func itemCodePattern(code string) (pattern string, exact bool) {
	return likeEscaper.Replace(code), !strings.Contains(code, "*")
}

func (s *Store) list(ctx context.Context, table, order string, result any, message string) error {
	apiErr := new(apiError)
	resp, err := s.request(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  order,
		}).
		SetResult(result).
		SetError(apiErr).
		Get("/" + table)
	return s.check(resp, err, apiErr, message)
}

type receiptRow struct {
	models.StockReceipt
	CreatedBy string `json:"created_by"`
}

type consumptionRow struct {
	models.StockConsumption
	CreatedBy string `json:"created_by"`
}

func (s *Store) CreateStockReceipt(ctx context.Context, receipt models.StockReceipt) (*models.StockReceiptEntry, error) {
	row := receiptRow{StockReceipt: receipt, CreatedBy: security.AuthorFrom(ctx, receipt.ReceivedBy)}

	var created []models.StockReceiptEntry
	if err := s.insert(ctx, "stock_receipts", []receiptRow{row}, &created, "Unable to record stock receipt"); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, custom_error.NewRemoteError("Unable to record stock receipt: empty response", nil)
	}
	return &created[0], nil
}

func (s *Store) CreateStockConsumption(ctx context.Context, consumption models.StockConsumption) (*models.StockConsumptionEntry, error) {
	row := consumptionRow{StockConsumption: consumption, CreatedBy: security.AuthorFrom(ctx, consumption.UsedBy)}

	var created []models.StockConsumptionEntry
	if err := s.insert(ctx, "stock_consumption", []consumptionRow{row}, &created, "Unable to record stock consumption"); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, custom_error.NewRemoteError("Unable to record stock consumption: empty response", nil)
	}
	return &created[0], nil
}

func (s *Store) insert(ctx context.Context, table string, body, result any, message string) error {
	apiErr := new(apiError)
	resp, err := s.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(result).
		SetError(apiErr).
		Post("/" + table)
	return s.check(resp, err, apiErr, message)
}

type itemRow struct {
	ItemName          string          `json:"item_name"`
	ItemCode          string          `json:"item_code"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	LastRate          decimal.Decimal `json:"last_rate"`
	TotalValue        decimal.Decimal `json:"total_value"`
}

// UpsertInventoryItems merges items into inventory_items by item code.
func (s *Store) UpsertInventoryItems(ctx context.Context, items []models.InventoryItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow{
			ItemName:          item.ItemName,
			ItemCode:          item.ItemCode,
			CurrentStock:      item.CurrentStock,
			UnitOfMeasurement: item.UnitOfMeasurement,
			LastRate:          item.LastRate,
			TotalValue:        item.StockValue(),
		})
	}

	var upserted []models.InventoryItem
	apiErr := new(apiError)
	resp, err := s.request(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=representation").
		SetQueryParam("on_conflict", "item_code").
		SetBody(rows).
		SetResult(&upserted).
		SetError(apiErr).
		Post("/inventory_items")
	if err := s.check(resp, err, apiErr, "Unable to import inventory items"); err != nil {
		return 0, err
	}
	return len(upserted), nil
}

func (s *Store) Ping(ctx context.Context) error {
	apiErr := new(apiError)
	resp, err := s.request(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		SetError(apiErr).
		Get("/inventory_items")
	return s.check(resp, err, apiErr, "Supabase is unreachable")
}

// check turns transport failures and error statuses into RemoteError.
// Postgres codes reported by PostgREST keep their meaning.
func (s *Store) check(resp *resty.Response, err error, apiErr *apiError, message string) error {
	if err != nil {
		s.logger.Error(message, zap.Error(err))
		return custom_error.NewRemoteError(message, err)
	}
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	s.logger.Warn(message,
		zap.Int("status", resp.StatusCode()),
		zap.String("code", apiErr.Code),
		zap.String("message", apiErr.Message),
	)

	switch apiErr.Code {
	case custom_error.CodeUniqueViolation, custom_error.CodeForeignKeyViolation, custom_error.CodeCheckViolation:
		return custom_error.WrapDBError(message, apiErr.Code)
	}

	detail := apiErr.Message
	if detail == "" {
		detail = http.StatusText(resp.StatusCode())
	}
	return &custom_error.RemoteError{
		Message: fmt.Sprintf("%s: %s", message, detail),
		Code:    apiErr.Code,
	}
}
