// Package store defines the storage collaborator the inventory flows talk
// to. Implementations live in the sub-packages: memory, postgres (goqu),
// supabase (PostgREST over HTTP) and cache (a read-through decorator).
package store

import (
	"context"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"
)

type Store interface {
	// ListInventoryItems returns items ordered by item name.
	ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error)
	// ListStockReceipts returns receipts newest first.
	ListStockReceipts(ctx context.Context) ([]models.StockReceiptEntry, error)
	// ListStockConsumption returns consumption entries newest first.
	ListStockConsumption(ctx context.Context) ([]models.StockConsumptionEntry, error)
	// ListTransactionLogs returns log rows newest first.
	ListTransactionLogs(ctx context.Context) ([]models.TransactionLog, error)

	// CreateStockReceipt stores the receipt, raises the item's stock and
	// appends a transaction log row. Rejections are *custom_error.RemoteError.
	CreateStockReceipt(ctx context.Context, receipt models.StockReceipt) (*models.StockReceiptEntry, error)
	// CreateStockConsumption stores the entry, lowers the item's stock and
	// appends a transaction log row. Rejections are *custom_error.RemoteError.
	CreateStockConsumption(ctx context.Context, consumption models.StockConsumption) (*models.StockConsumptionEntry, error)
}

// ItemImporter is implemented by stores that accept bulk item upserts
// keyed by item code.
type ItemImporter interface {
	UpsertInventoryItems(ctx context.Context, items []models.InventoryItem) (int, error)
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
