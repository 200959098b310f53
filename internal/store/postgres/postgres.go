// Package postgres keeps the inventory in the schema under migrations/.
// Stock mutations, entry inserts and log inserts share one transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/repository"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/auditlog"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewStore(r *repository.Repository, logger *zap.Logger) *Store {
	return &Store{repo: r, logger: logger.Named("postgres")}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Store) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	if err := itemsQuery(s.repo.GoquDBWrapper).ScanStructsContext(ctx, &items); err != nil {
		return nil, wrapError("Unable to load inventory items", err)
	}
	return items, nil
}

func (s *Store) ListStockReceipts(ctx context.Context) ([]models.StockReceiptEntry, error) {
	receipts := []models.StockReceiptEntry{}
	if err := receiptsQuery(s.repo.GoquDBWrapper).ScanStructsContext(ctx, &receipts); err != nil {
		return nil, wrapError("Unable to load stock receipts", err)
	}
	return receipts, nil
}

func (s *Store) ListStockConsumption(ctx context.Context) ([]models.StockConsumptionEntry, error) {
	entries := []models.StockConsumptionEntry{}
	if err := consumptionQuery(s.repo.GoquDBWrapper).ScanStructsContext(ctx, &entries); err != nil {
		return nil, wrapError("Unable to load stock consumption", err)
	}
	return entries, nil
}

func (s *Store) ListTransactionLogs(ctx context.Context) ([]models.TransactionLog, error) {
	return s.FindTransactionLogs(ctx, store.LogFilter{})
}

func (s *Store) FindTransactionLogs(ctx context.Context, filter store.LogFilter) ([]models.TransactionLog, error) {
	logs := []models.TransactionLog{}
	if err := logsQuery(s.repo.GoquDBWrapper, filter).ScanStructsContext(ctx, &logs); err != nil {
		return nil, wrapError("Unable to load transaction logs", err)
	}
	return logs, nil
}

type inserted struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Store) CreateStockReceipt(ctx context.Context, receipt models.StockReceipt) (*models.StockReceiptEntry, error) {
	switch {
	case strings.TrimSpace(receipt.ItemCode) == "":
		return nil, checkViolation("item code is required")
	case !receipt.QuantityReceived.IsPositive():
		return nil, checkViolation("quantity received must be greater than zero")
	case receipt.RatePerUnit.IsNegative():
		return nil, checkViolation("rate per unit must not be negative")
	}

	entry := models.StockReceiptEntry{
		StockReceipt: receipt,
		CreatedBy:    security.AuthorFrom(ctx, receipt.ReceivedBy),
	}

	err := repository.WithTransaction(ctx, s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := upsertReceiptItem(tx, receipt).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to update stock for %s: %w", receipt.ItemCode, err)
		}

		var row inserted
		if _, err := insertReceipt(tx, receipt, entry.CreatedBy).Executor().ScanStructContext(ctx, &row); err != nil {
			return fmt.Errorf("failed to insert stock receipt: %w", err)
		}
		entry.ID, entry.CreatedAt = row.ID, row.CreatedAt.UTC()

		log := auditlog.NewEntry(&entry, metadata.ActionCreated, entry.CreatedBy, entry.CreatedAt)
		if _, err := insertLog(tx, log).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert transaction log: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Stock receipt rejected", zap.String("item_code", receipt.ItemCode), zap.Error(err))
		return nil, wrapError("Unable to record stock receipt", err)
	}

	return &entry, nil
}

func (s *Store) CreateStockConsumption(ctx context.Context, consumption models.StockConsumption) (*models.StockConsumptionEntry, error) {
	if !consumption.QuantityUsed.IsPositive() {
		return nil, checkViolation("quantity used must be greater than zero")
	}

	entry := models.StockConsumptionEntry{
		StockConsumption: consumption,
		CreatedBy:        security.AuthorFrom(ctx, consumption.UsedBy),
	}

	err := repository.WithTransaction(ctx, s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		result, err := decreaseStock(tx, consumption.ItemCode, consumption.QuantityUsed).Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to decrease stock for %s: %w", consumption.ItemCode, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected for %s: %w", consumption.ItemCode, err)
		}
		if rowsAffected == 0 {
			return s.explainRejectedDecrease(ctx, tx, consumption.ItemCode)
		}

		var row inserted
		if _, err := insertConsumption(tx, consumption, entry.CreatedBy).Executor().ScanStructContext(ctx, &row); err != nil {
			return fmt.Errorf("failed to insert stock consumption: %w", err)
		}
		entry.ID, entry.CreatedAt = row.ID, row.CreatedAt.UTC()

		log := auditlog.NewEntry(&entry, metadata.ActionCreated, entry.CreatedBy, entry.CreatedAt)
		if _, err := insertLog(tx, log).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert transaction log: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Stock consumption rejected", zap.String("item_code", consumption.ItemCode), zap.Error(err))
		return nil, wrapError("Unable to record stock consumption", err)
	}

	return &entry, nil
}

// explainRejectedDecrease tells a missing item apart from a short one.
func (s *Store) explainRejectedDecrease(ctx context.Context, tx *goqu.TxDatabase, itemCode string) error {
	var item models.InventoryItem
	found, err := tx.From(itemsTable).Where(goqu.Ex{"item_code": itemCode}).ScanStructContext(ctx, &item)
	if err != nil {
		return fmt.Errorf("failed to fetch inventory item %s: %w", itemCode, err)
	}
	if !found {
		return &custom_error.RemoteError{
			Message: fmt.Sprintf("inventory item %q does not exist", itemCode),
			Code:    custom_error.CodeForeignKeyViolation,
		}
	}
	return &custom_error.RemoteError{
		Message: fmt.Sprintf("insufficient stock for %s: %s %s available", item.ItemCode, item.CurrentStock, item.UnitOfMeasurement),
		Code:    custom_error.CodeInsufficientStock,
	}
}

// UpsertInventoryItems replaces items by item code in one statement.
func (s *Store) UpsertInventoryItems(ctx context.Context, items []models.InventoryItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	for _, item := range items {
		if item.CurrentStock.IsNegative() || item.LastRate.IsNegative() {
			return 0, checkViolation(fmt.Sprintf("item %s has negative stock or rate", item.ItemCode))
		}
	}

	result, err := upsertItems(s.repo.GoquDBWrapper, items).Executor().ExecContext(ctx)
	if err != nil {
		return 0, wrapError("Unable to import inventory items", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, wrapError("Unable to import inventory items", err)
	}

	s.logger.Info("Inventory items imported", zap.Int64("rows", affected))
	return int(affected), nil
}

func checkViolation(message string) error {
	return &custom_error.RemoteError{Message: message, Code: custom_error.CodeCheckViolation}
}

func wrapError(message string, err error) error {
	var remote *custom_error.RemoteError
	if errors.As(err, &remote) {
		return remote
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return custom_error.WrapDBError(message, string(pqErr.Code))
	}
	return custom_error.NewRemoteError(message, err)
}
