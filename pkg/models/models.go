package models

import "github.com/shopspring/decimal"

func init() {
	// Quantities and money travel as JSON numbers, matching the hosted
	// backend's numeric columns.
	decimal.MarshalJSONWithoutQuotes = true
}
