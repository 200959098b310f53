package reports

import (
	"fmt"
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"
)

type Kind string

const (
	KindReceipts    Kind = "receipts"
	KindConsumption Kind = "consumption"
	KindValuation   Kind = "valuation"
)

type Definition struct {
	Kind       Kind
	Title      string
	FilePrefix string
	Labels     []string
}

var definitions = map[Kind]Definition{
	KindReceipts: {
		Kind:       KindReceipts,
		Title:      "Stock Receipts",
		FilePrefix: "stock_receipt_report",
		Labels: []string{
			"Item Code", "Item Name", "Quantity Received", "Rate Per Unit", "Unit",
			"Total Value", "Supplier Name", "Delivery Date", "Received By",
		},
	},
	KindConsumption: {
		Kind:       KindConsumption,
		Title:      "Stock Consumption",
		FilePrefix: "stock_consumption_report",
		Labels: []string{
			"Item Code", "Item Name", "Quantity Used", "Purpose/Activity", "Used By", "Date", "Remarks",
		},
	},
	KindValuation: {
		Kind:       KindValuation,
		Title:      "Stock Valuation",
		FilePrefix: "stock_valuation_report",
		Labels: []string{
			"Item Code", "Item Name", "Current Stock", "Unit", "Rate Per Unit", "Total Value",
		},
	},
}

// ParseKind accepts the short kind ("receipts") or the file prefix
// ("stock_receipt_report").
func ParseKind(value string) (Kind, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for kind, def := range definitions {
		if value == string(kind) || value == def.FilePrefix {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown report %q, expected one of: receipts, consumption, valuation", value)
}

func DefinitionOf(kind Kind) Definition {
	return definitions[kind]
}

func ReceiptRows(entries []models.StockReceiptEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			"itemcode":         e.ItemCode,
			"itemname":         e.ItemName,
			"quantityreceived": e.QuantityReceived,
			"rateperunit":      e.RatePerUnit,
			"unit":             e.UnitOfMeasurement,
			"totalvalue":       e.TotalValue,
			"suppliername":     e.SupplierName,
			"deliverydate":     e.DeliveryDate,
			"receivedby":       e.ReceivedBy,
		})
	}
	return rows
}

func ConsumptionRows(entries []models.StockConsumptionEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			"itemcode":                         e.ItemCode,
			"itemname":                         e.ItemName,
			"quantityused":                     e.QuantityUsed,
			NormalizeLabel("Purpose/Activity"): e.PurposeActivityCode,
			"usedby":                           e.UsedBy,
			"date":                             e.Date,
			"remarks":                          e.Remarks,
		})
	}
	return rows
}

func ValuationRows(items []models.InventoryItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			"itemcode":     item.ItemCode,
			"itemname":     item.ItemName,
			"currentstock": item.CurrentStock,
			"unit":         item.UnitOfMeasurement,
			"rateperunit":  item.LastRate,
			"totalvalue":   item.TotalValue,
		})
	}
	return rows
}
