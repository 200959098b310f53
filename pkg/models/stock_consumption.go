package models

import (
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"

	"github.com/shopspring/decimal"
)

type StockConsumption struct {
	ItemCode            string          `json:"item_code" db:"item_code"`
	ItemName            string          `json:"item_name" db:"item_name"`
	QuantityUsed        decimal.Decimal `json:"quantity_used" db:"quantity_used"`
	PurposeActivityCode string          `json:"purpose_activity_code" db:"purpose_activity_code"`
	UsedBy              string          `json:"used_by" db:"used_by"`
	Date                metadata.Date   `json:"date" db:"date"`
	Remarks             string          `json:"remarks" db:"remarks"`
}

type StockConsumptionEntry struct {
	ID string `json:"id" db:"id"`
	StockConsumption
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy string    `json:"created_by" db:"created_by"`
}

func (e *StockConsumptionEntry) CreateLogView() TransactionLog {
	return TransactionLog{
		Type:     metadata.TransactionConsumption,
		ItemCode: e.ItemCode,
		ItemName: e.ItemName,
		Quantity: e.QuantityUsed,
	}
}
