package models

import (
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"

	"github.com/shopspring/decimal"
)

// StockReceipt is a receipt as submitted, before the store assigns
// identity and authorship.
type StockReceipt struct {
	ItemCode          string          `json:"item_code" db:"item_code"`
	ItemName          string          `json:"item_name" db:"item_name"`
	QuantityReceived  decimal.Decimal `json:"quantity_received" db:"quantity_received"`
	RatePerUnit       decimal.Decimal `json:"rate_per_unit" db:"rate_per_unit"`
	UnitOfMeasurement string          `json:"unit_of_measurement" db:"unit_of_measurement"`
	TotalValue        decimal.Decimal `json:"total_value" db:"total_value"`
	SupplierName      string          `json:"supplier_name" db:"supplier_name"`
	DeliveryDate      metadata.Date   `json:"delivery_date" db:"delivery_date"`
	ReceivedBy        string          `json:"received_by" db:"received_by"`
}

type StockReceiptEntry struct {
	ID string `json:"id" db:"id"`
	StockReceipt
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy string    `json:"created_by" db:"created_by"`
}

func (e *StockReceiptEntry) CreateLogView() TransactionLog {
	return TransactionLog{
		Type:     metadata.TransactionReceipt,
		ItemCode: e.ItemCode,
		ItemName: e.ItemName,
		Quantity: e.QuantityReceived,
	}
}
