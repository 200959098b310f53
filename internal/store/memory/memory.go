// Package memory is an in-process store used for demos and tests. It
// enforces the same constraints as the Postgres schema.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/sampledata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/auditlog"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/security"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	items       []models.InventoryItem
	receipts    []models.StockReceiptEntry
	consumption []models.StockConsumptionEntry
	logs        []models.TransactionLog
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewSampleStore returns a store preloaded with the demo site.
func NewSampleStore() *Store {
	s := NewStore()
	s.items = sampledata.Items()
	s.receipts = sampledata.Receipts()
	s.consumption = sampledata.Consumption()
	s.logs = sampledata.TransactionLogs()
	return s
}

// WithClock replaces the clock used for created_at and log timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) ListInventoryItems(_ context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	items := slices.Clone(s.items)
	s.mu.RUnlock()

	slices.SortStableFunc(items, func(a, b models.InventoryItem) int {
		return strings.Compare(a.ItemName, b.ItemName)
	})
	return items, nil
}

func (s *Store) ListStockReceipts(_ context.Context) ([]models.StockReceiptEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.receipts), nil
}

func (s *Store) ListStockConsumption(_ context.Context) ([]models.StockConsumptionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.consumption), nil
}

func (s *Store) ListTransactionLogs(_ context.Context) ([]models.TransactionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.logs), nil
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

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	entry := models.StockReceiptEntry{
		ID:           uuid.NewString(),
		StockReceipt: receipt,
		CreatedAt:    now,
		CreatedBy:    security.AuthorFrom(ctx, receipt.ReceivedBy),
	}

	idx := s.indexOf(receipt.ItemCode)
	if idx < 0 {
		s.items = append(s.items, models.InventoryItem{
			ID:                uuid.NewString(),
			ItemName:          receipt.ItemName,
			ItemCode:          receipt.ItemCode,
			UnitOfMeasurement: receipt.UnitOfMeasurement,
		})
		idx = len(s.items) - 1
	}
	item := &s.items[idx]
	item.CurrentStock = item.CurrentStock.Add(receipt.QuantityReceived)
	item.LastRate = receipt.RatePerUnit
	item.TotalValue = item.StockValue()

	s.receipts = slices.Insert(s.receipts, 0, entry)
	s.logs = slices.Insert(s.logs, 0, auditlog.NewEntry(&entry, metadata.ActionCreated, entry.CreatedBy, now))

	return &entry, nil
}

func (s *Store) CreateStockConsumption(ctx context.Context, consumption models.StockConsumption) (*models.StockConsumptionEntry, error) {
	if !consumption.QuantityUsed.IsPositive() {
		return nil, checkViolation("quantity used must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(consumption.ItemCode)
	if idx < 0 {
		return nil, &custom_error.RemoteError{
			Message: fmt.Sprintf("inventory item %q does not exist", consumption.ItemCode),
			Code:    custom_error.CodeForeignKeyViolation,
		}
	}
	item := &s.items[idx]
	if item.CurrentStock.LessThan(consumption.QuantityUsed) {
		return nil, &custom_error.RemoteError{
			Message: fmt.Sprintf("insufficient stock for %s: %s %s available", item.ItemCode, item.CurrentStock, item.UnitOfMeasurement),
			Code:    custom_error.CodeInsufficientStock,
		}
	}

	now := s.now().UTC()
	entry := models.StockConsumptionEntry{
		ID:               uuid.NewString(),
		StockConsumption: consumption,
		CreatedAt:        now,
		CreatedBy:        security.AuthorFrom(ctx, consumption.UsedBy),
	}

	item.CurrentStock = item.CurrentStock.Sub(consumption.QuantityUsed)
	item.TotalValue = item.StockValue()

	s.consumption = slices.Insert(s.consumption, 0, entry)
	s.logs = slices.Insert(s.logs, 0, auditlog.NewEntry(&entry, metadata.ActionCreated, entry.CreatedBy, now))

	return &entry, nil
}

// UpsertInventoryItems replaces items by item code and appends unknown ones.
func (s *Store) UpsertInventoryItems(_ context.Context, items []models.InventoryItem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if item.CurrentStock.IsNegative() || item.LastRate.IsNegative() {
			return 0, checkViolation(fmt.Sprintf("item %s has negative stock or rate", item.ItemCode))
		}
		item.TotalValue = item.StockValue()

		if idx := s.indexOf(item.ItemCode); idx >= 0 {
			item.ID = s.items[idx].ID
			s.items[idx] = item
			continue
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		s.items = append(s.items, item)
	}

	return len(items), nil
}

func (s *Store) indexOf(itemCode string) int {
	return slices.IndexFunc(s.items, func(item models.InventoryItem) bool {
		return item.ItemCode == itemCode
	})
}

func checkViolation(message string) error {
	return &custom_error.RemoteError{Message: message, Code: custom_error.CodeCheckViolation}
}
