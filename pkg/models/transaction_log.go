package models

import (
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"

	"github.com/shopspring/decimal"
)

type TransactionLog struct {
	ID        string                   `json:"id" db:"id"`
	Type      metadata.TransactionType `json:"type" db:"type"`
	ItemCode  string                   `json:"item_code" db:"item_code"`
	ItemName  string                   `json:"item_name" db:"item_name"`
	Quantity  decimal.Decimal          `json:"quantity" db:"quantity"`
	Timestamp time.Time                `json:"timestamp" db:"timestamp"`
	User      string                   `json:"user" db:"user_name"`
	Action    metadata.Action          `json:"action" db:"action"`
}
