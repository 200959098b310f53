// Package storetest provides a testify mock of store.Store.
package storetest

import (
	"context"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

func (m *MockStore) ListStockReceipts(ctx context.Context) ([]models.StockReceiptEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockReceiptEntry), args.Error(1)
}

func (m *MockStore) ListStockConsumption(ctx context.Context) ([]models.StockConsumptionEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockConsumptionEntry), args.Error(1)
}

func (m *MockStore) ListTransactionLogs(ctx context.Context) ([]models.TransactionLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransactionLog), args.Error(1)
}

func (m *MockStore) CreateStockReceipt(ctx context.Context, receipt models.StockReceipt) (*models.StockReceiptEntry, error) {
	args := m.Called(ctx, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockReceiptEntry), args.Error(1)
}

func (m *MockStore) CreateStockConsumption(ctx context.Context, consumption models.StockConsumption) (*models.StockConsumptionEntry, error) {
	args := m.Called(ctx, consumption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockConsumptionEntry), args.Error(1)
}
