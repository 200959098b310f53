// Package sampledata holds the demo site used by the memory store and the
// seed command.
package sampledata

import (
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/shopspring/decimal"
)

func Items() []models.InventoryItem {
	return []models.InventoryItem{
		item("1", "Portland Cement", "CEM-001", "45", metadata.UnitBags, "420", "18900"),
		item("2", "Steel Reinforcement Bars 12mm", "STL-012", "120", metadata.UnitPieces, "850", "102000"),
		item("3", "Concrete Blocks", "BLK-001", "280", metadata.UnitPieces, "45", "12600"),
		item("4", "Sand (River)", "SND-001", "8.5", metadata.UnitCubicMeters, "2800", "23800"),
		item("5", "Gravel", "GRV-001", "12", metadata.UnitCubicMeters, "3200", "38400"),
	}
}

// Receipts are newest first.
func Receipts() []models.StockReceiptEntry {
	return []models.StockReceiptEntry{
		{
			ID: "1",
			StockReceipt: models.StockReceipt{
				ItemCode:          "CEM-001",
				ItemName:          "Portland Cement",
				QuantityReceived:  decimal.NewFromInt(50),
				RatePerUnit:       decimal.NewFromInt(420),
				UnitOfMeasurement: metadata.UnitBags.String(),
				TotalValue:        decimal.NewFromInt(21000),
				SupplierName:      "ABC Building Materials",
				DeliveryDate:      "2024-01-08",
				ReceivedBy:        "John Smith",
			},
			CreatedAt: timestamp("2024-01-08T09:30:00Z"),
			CreatedBy: "John Smith",
		},
		{
			ID: "2",
			StockReceipt: models.StockReceipt{
				ItemCode:          "STL-012",
				ItemName:          "Steel Reinforcement Bars 12mm",
				QuantityReceived:  decimal.NewFromInt(150),
				RatePerUnit:       decimal.NewFromInt(850),
				UnitOfMeasurement: metadata.UnitPieces.String(),
				TotalValue:        decimal.NewFromInt(127500),
				SupplierName:      "Steel Corp Ltd",
				DeliveryDate:      "2024-01-07",
				ReceivedBy:        "Mike Johnson",
			},
			CreatedAt: timestamp("2024-01-07T14:15:00Z"),
			CreatedBy: "Mike Johnson",
		},
	}
}

// Consumption entries are newest first.
func Consumption() []models.StockConsumptionEntry {
	return []models.StockConsumptionEntry{
		{
			ID: "2",
			StockConsumption: models.StockConsumption{
				ItemCode:            "STL-012",
				ItemName:            "Steel Reinforcement Bars 12mm",
				QuantityUsed:        decimal.NewFromInt(30),
				PurposeActivityCode: "FND-001",
				UsedBy:              "Construction Team A",
				Date:                "2024-01-09",
				Remarks:             "Foundation reinforcement",
			},
			CreatedAt: timestamp("2024-01-09T15:45:00Z"),
			CreatedBy: "David Wilson",
		},
		{
			ID: "1",
			StockConsumption: models.StockConsumption{
				ItemCode:            "CEM-001",
				ItemName:            "Portland Cement",
				QuantityUsed:        decimal.NewFromInt(5),
				PurposeActivityCode: "FND-001",
				UsedBy:              "Construction Team A",
				Date:                "2024-01-09",
				Remarks:             "Foundation work - Block A",
			},
			CreatedAt: timestamp("2024-01-09T11:20:00Z"),
			CreatedBy: "David Wilson",
		},
	}
}

// TransactionLogs are newest first.
func TransactionLogs() []models.TransactionLog {
	return []models.TransactionLog{
		{
			ID:        "2",
			Type:      metadata.TransactionConsumption,
			ItemCode:  "CEM-001",
			ItemName:  "Portland Cement",
			Quantity:  decimal.NewFromInt(5),
			Timestamp: timestamp("2024-01-09T11:20:00Z"),
			User:      "David Wilson",
			Action:    metadata.ActionCreated,
		},
		{
			ID:        "1",
			Type:      metadata.TransactionReceipt,
			ItemCode:  "CEM-001",
			ItemName:  "Portland Cement",
			Quantity:  decimal.NewFromInt(50),
			Timestamp: timestamp("2024-01-08T09:30:00Z"),
			User:      "John Smith",
			Action:    metadata.ActionCreated,
		},
	}
}

func item(id, name, code, stock string, unit metadata.Unit, rate, total string) models.InventoryItem {
	return models.InventoryItem{
		ID:                id,
		ItemName:          name,
		ItemCode:          code,
		CurrentStock:      decimal.RequireFromString(stock),
		UnitOfMeasurement: unit.String(),
		LastRate:          decimal.RequireFromString(rate),
		TotalValue:        decimal.RequireFromString(total),
	}
}

func timestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
