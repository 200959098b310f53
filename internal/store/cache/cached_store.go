package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"go.uber.org/zap"
)

const (
	KeyInventoryItems   = "site-inventory:inventory-items"
	KeyStockReceipts    = "site-inventory:stock-receipts"
	KeyStockConsumption = "site-inventory:stock-consumption"
	KeyTransactionLogs  = "site-inventory:transaction-logs"
)

// Store decorates a store.Store with cached list reads. A failing cache
// degrades to direct reads.
type Store struct {
	next   store.Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(next store.Store, c Cache, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{next: next, cache: c, ttl: ttl, logger: logger.Named("cache")}
}

func cachedList[T any](ctx context.Context, s *Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		var list []T
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
		s.logger.Warn("Discarding unreadable cache entry", zap.String("key", key))
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	list, err := load(ctx)
	if err != nil {
		return nil, err
	}

	raw, err = json.Marshal(list)
	if err == nil {
		err = s.cache.Set(ctx, key, raw, s.ttl)
	}
	if err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return list, nil
}

func (s *Store) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *Store) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	return cachedList(ctx, s, KeyInventoryItems, s.next.ListInventoryItems)
}

func (s *Store) ListStockReceipts(ctx context.Context) ([]models.StockReceiptEntry, error) {
	return cachedList(ctx, s, KeyStockReceipts, s.next.ListStockReceipts)
}

func (s *Store) ListStockConsumption(ctx context.Context) ([]models.StockConsumptionEntry, error) {
	return cachedList(ctx, s, KeyStockConsumption, s.next.ListStockConsumption)
}

func (s *Store) ListTransactionLogs(ctx context.Context) ([]models.TransactionLog, error) {
	return cachedList(ctx, s, KeyTransactionLogs, s.next.ListTransactionLogs)
}

// FindTransactionLogs filters the cached log.
func (s *Store) FindTransactionLogs(ctx context.Context, filter store.LogFilter) ([]models.TransactionLog, error) {
	logs, err := s.ListTransactionLogs(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(logs), nil
}

func (s *Store) CreateStockReceipt(ctx context.Context, receipt models.StockReceipt) (*models.StockReceiptEntry, error) {
	entry, err := s.next.CreateStockReceipt(ctx, receipt)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, KeyStockReceipts, KeyInventoryItems, KeyTransactionLogs)
	return entry, nil
}

func (s *Store) CreateStockConsumption(ctx context.Context, consumption models.StockConsumption) (*models.StockConsumptionEntry, error) {
	entry, err := s.next.CreateStockConsumption(ctx, consumption)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, KeyStockConsumption, KeyInventoryItems, KeyTransactionLogs)
	return entry, nil
}

// UpsertInventoryItems forwards to the wrapped store when it imports items.
func (s *Store) UpsertInventoryItems(ctx context.Context, items []models.InventoryItem) (int, error) {
	importer, ok := s.next.(store.ItemImporter)
	if !ok {
		return 0, errors.New("store does not support item import")
	}
	count, err := importer.UpsertInventoryItems(ctx, items)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, KeyInventoryItems)
	return count, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if pinger, ok := s.next.(store.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
