package ledger

import (
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/format"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/shopspring/decimal"
)

// LowStockThreshold applies to every unit of measurement alike.
var LowStockThreshold = decimal.NewFromInt(10)

func IsLowStock(item models.InventoryItem) bool {
	return item.CurrentStock.LessThan(LowStockThreshold)
}

type Row struct {
	models.InventoryItem
	Status       metadata.StockStatus `json:"status"`
	DisplayValue string               `json:"display_value"`
}

type Summary struct {
	ItemCount         int                    `json:"item_count"`
	TotalValue        decimal.Decimal        `json:"total_value"`
	TotalValueDisplay string                 `json:"total_value_display"`
	LowStockCount     int                    `json:"low_stock_count"`
	LowStock          []models.InventoryItem `json:"low_stock"`
	Rows              []Row                  `json:"rows"`
}

// Summarize aggregates the item list for the dashboard. Input order is
// kept in both LowStock and Rows.
func Summarize(items []models.InventoryItem) Summary {
	summary := Summary{
		ItemCount:  len(items),
		TotalValue: decimal.Zero,
		LowStock:   []models.InventoryItem{},
		Rows:       make([]Row, 0, len(items)),
	}

	for _, item := range items {
		summary.TotalValue = summary.TotalValue.Add(item.TotalValue)

		status := metadata.StockStatusInStock
		if IsLowStock(item) {
			status = metadata.StockStatusLow
			summary.LowStock = append(summary.LowStock, item)
		}
		summary.Rows = append(summary.Rows, Row{
			InventoryItem: item,
			Status:        status,
			DisplayValue:  format.Rupees(item.TotalValue),
		})
	}

	summary.LowStockCount = len(summary.LowStock)
	summary.TotalValueDisplay = format.Rupees(summary.TotalValue)
	return summary
}
