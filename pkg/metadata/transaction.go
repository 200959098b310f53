package metadata

import "fmt"

type TransactionType string

const (
	TransactionReceipt     TransactionType = "receipt"
	TransactionConsumption TransactionType = "consumption"
)

func NewTransactionType(value string) (TransactionType, error) {
	t := TransactionType(value)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", value)
	}
	return t, nil
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionReceipt, TransactionConsumption:
		return true
	default:
		return false
	}
}

type Action string

const (
	ActionCreated Action = "created"
	ActionEdited  Action = "edited"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCreated, ActionEdited:
		return true
	default:
		return false
	}
}

// StockStatus is the badge shown next to a ledger row.
type StockStatus string

const (
	StockStatusLow     StockStatus = "Low Stock"
	StockStatusInStock StockStatus = "In Stock"
)
