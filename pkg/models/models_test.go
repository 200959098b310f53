package models

import (
	"encoding/json"
	"testing"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFindItem(t *testing.T) {
	items := []InventoryItem{
		{ItemCode: "CEM-001", ItemName: "Portland Cement"},
		{ItemCode: "STL-012", ItemName: "Steel Reinforcement Bars 12mm"},
	}

	item, ok := FindItem(items, "STL-012")
	assert.True(t, ok)
	assert.Equal(t, "Steel Reinforcement Bars 12mm", item.ItemName)

	item, ok = FindItem(items, " CEM-001 ")
	assert.True(t, ok)
	assert.Equal(t, "Portland Cement", item.ItemName)

	_, ok = FindItem(items, "GRV-001")
	assert.False(t, ok)
}

func TestStockValue(t *testing.T) {
	item := InventoryItem{CurrentStock: decimal.RequireFromString("8.5"), LastRate: decimal.NewFromInt(2800)}
	assert.True(t, decimal.NewFromInt(23800).Equal(item.StockValue()))
}

func TestCreateLogView(t *testing.T) {
	receipt := &StockReceiptEntry{StockReceipt: StockReceipt{
		ItemCode:         "CEM-001",
		ItemName:         "Portland Cement",
		QuantityReceived: decimal.NewFromInt(50),
	}}
	view := receipt.CreateLogView()
	assert.Equal(t, metadata.TransactionReceipt, view.Type)
	assert.Equal(t, "CEM-001", view.ItemCode)
	assert.True(t, decimal.NewFromInt(50).Equal(view.Quantity))

	consumption := &StockConsumptionEntry{StockConsumption: StockConsumption{
		ItemCode:     "CEM-001",
		ItemName:     "Portland Cement",
		QuantityUsed: decimal.NewFromInt(5),
	}}
	view = consumption.CreateLogView()
	assert.Equal(t, metadata.TransactionConsumption, view.Type)
	assert.True(t, decimal.NewFromInt(5).Equal(view.Quantity))
}

func TestEntryJSONIsFlat(t *testing.T) {
	entry := StockConsumptionEntry{
		ID: "c-1",
		StockConsumption: StockConsumption{
			ItemCode:     "CEM-001",
			QuantityUsed: decimal.NewFromInt(5),
			Date:         metadata.Date("2024-01-09"),
		},
		CreatedBy: "David Wilson",
	}

	body, err := json.Marshal(entry)
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"item_code":"CEM-001"`)
	assert.Contains(t, string(body), `"quantity_used":5`)
	assert.Contains(t, string(body), `"date":"2024-01-09"`)
	assert.Contains(t, string(body), `"created_by":"David Wilson"`)
}
