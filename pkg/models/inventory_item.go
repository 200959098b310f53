package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID                string          `json:"id" db:"id"`
	ItemName          string          `json:"item_name" db:"item_name"`
	ItemCode          string          `json:"item_code" db:"item_code"`
	CurrentStock      decimal.Decimal `json:"current_stock" db:"current_stock"`
	UnitOfMeasurement string          `json:"unit_of_measurement" db:"unit_of_measurement"`
	LastRate          decimal.Decimal `json:"last_rate" db:"last_rate"`
	TotalValue        decimal.Decimal `json:"total_value" db:"total_value"`
}

// StockValue is what the item is worth at its last rate.
func (i InventoryItem) StockValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.LastRate)
}

// FindItem looks up an item by code. Surrounding whitespace in itemCode is
// ignored.
func FindItem(items []InventoryItem, itemCode string) (InventoryItem, bool) {
	itemCode = strings.TrimSpace(itemCode)
	for _, item := range items {
		if item.ItemCode == itemCode {
			return item, true
		}
	}
	return InventoryItem{}, false
}
