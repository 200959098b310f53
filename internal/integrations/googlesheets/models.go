package googlesheets

import (
	"fmt"
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/shopspring/decimal"
)

// RowError explains why a sheet row was not imported. Row is 1-based and
// counts the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// MapHeaders maps column positions to item fields by header text.
func MapHeaders(headers []interface{}) map[int]string {
	headerMap := make(map[int]string)

	for i, header := range headers {
		headerStr, ok := header.(string)
		if !ok {
			continue
		}

		switch strings.ToLower(strings.Join(strings.Fields(headerStr), " ")) {
		case "item code", "code":
			headerMap[i] = "item_code"
		case "item name", "item", "material":
			headerMap[i] = "item_name"
		case "current stock", "stock", "quantity":
			headerMap[i] = "current_stock"
		case "unit", "unit of measurement", "uom":
			headerMap[i] = "unit_of_measurement"
		case "rate", "rate per unit", "last rate":
			headerMap[i] = "last_rate"
		}
	}

	return headerMap
}

// ParseItems reads a header row followed by item rows. Blank rows are
// ignored and unreadable ones reported.
func ParseItems(values [][]interface{}) ([]models.InventoryItem, []RowError) {
	items := []models.InventoryItem{}
	skipped := []RowError{}
	if len(values) < 2 {
		return items, skipped
	}

	headerMap := MapHeaders(values[0])
	for i := 1; i < len(values); i++ {
		fields := map[string]string{}
		for j, cell := range values[i] {
			if name, ok := headerMap[j]; ok {
				fields[name] = strings.TrimSpace(fmt.Sprint(cell))
			}
		}
		if isBlank(fields) {
			continue
		}

		item, err := parseItem(fields)
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		items = append(items, item)
	}

	return items, skipped
}

func parseItem(fields map[string]string) (models.InventoryItem, error) {
	item := models.InventoryItem{
		ItemCode: fields["item_code"],
		ItemName: fields["item_name"],
	}
	if item.ItemCode == "" || item.ItemName == "" {
		return item, fmt.Errorf("item code and item name are required")
	}

	unit, err := metadata.NewUnit(fields["unit_of_measurement"])
	if err != nil {
		return item, err
	}
	item.UnitOfMeasurement = unit.String()

	if item.CurrentStock, err = parseAmount(fields["current_stock"]); err != nil {
		return item, fmt.Errorf("current stock: %w", err)
	}
	if item.LastRate, err = parseAmount(fields["last_rate"]); err != nil {
		return item, fmt.Errorf("rate: %w", err)
	}
	if item.CurrentStock.IsNegative() || item.LastRate.IsNegative() {
		return item, fmt.Errorf("stock and rate must not be negative")
	}
	item.TotalValue = item.StockValue()

	return item, nil
}

// parseAmount accepts sheet formatting such as "₹2,800" or "1,250.50".
// Empty cells read as zero.
func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(value)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleaned)
}

func isBlank(fields map[string]string) bool {
	for _, v := range fields {
		if v != "" {
			return false
		}
	}
	return true
}
