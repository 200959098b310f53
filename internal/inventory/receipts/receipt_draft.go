package receipts

import (
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/forms"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/shopspring/decimal"
)

// Draft is the receipt form as typed. Every edit produces a new value; the
// zero value is the empty form.
type Draft struct {
	ItemCode          string `json:"item_code"`
	ItemName          string `json:"item_name"`
	QuantityReceived  string `json:"quantity_received"`
	RatePerUnit       string `json:"rate_per_unit"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
	SupplierName      string `json:"supplier_name"`
	DeliveryDate      string `json:"delivery_date"`
	ReceivedBy        string `json:"received_by"`
}

// SelectItem fills name, unit and the last rate from the chosen item. The
// rate is only a suggestion and stays editable. Unknown codes leave the
// draft as it was.
func (d Draft) SelectItem(items []models.InventoryItem, itemCode string) Draft {
	item, ok := models.FindItem(items, itemCode)
	if !ok {
		return d
	}

	d.ItemCode = item.ItemCode
	d.ItemName = item.ItemName
	d.UnitOfMeasurement = item.UnitOfMeasurement
	d.RatePerUnit = item.LastRate.String()
	return d
}

// TotalValue is quantity times rate, zero while either is blank or not a
// number.
func (d Draft) TotalValue() decimal.Decimal {
	quantity, ok := forms.ParseNumber(d.QuantityReceived)
	if !ok {
		return decimal.Zero
	}
	rate, ok := forms.ParseNumber(d.RatePerUnit)
	if !ok {
		return decimal.Zero
	}
	return quantity.Mul(rate)
}

func (d Draft) Validate() error {
	missing := forms.Missing(
		forms.Field{Name: "item_name", Value: d.ItemName},
		forms.Field{Name: "item_code", Value: d.ItemCode},
		forms.Field{Name: "quantity_received", Value: d.QuantityReceived},
		forms.Field{Name: "rate_per_unit", Value: d.RatePerUnit},
		forms.Field{Name: "unit_of_measurement", Value: d.UnitOfMeasurement},
		forms.Field{Name: "supplier_name", Value: d.SupplierName},
		forms.Field{Name: "delivery_date", Value: d.DeliveryDate},
		forms.Field{Name: "received_by", Value: d.ReceivedBy},
	)
	if len(missing) > 0 {
		return &custom_error.ValidationError{Missing: missing}
	}
	return nil
}

// Record converts a complete draft into the receipt handed to the store.
func (d Draft) Record() (models.StockReceipt, error) {
	if err := d.Validate(); err != nil {
		return models.StockReceipt{}, err
	}

	var invalid []string
	quantity, ok := forms.ParseNumber(d.QuantityReceived)
	if !ok {
		invalid = append(invalid, "quantity_received")
	}
	rate, ok := forms.ParseNumber(d.RatePerUnit)
	if !ok {
		invalid = append(invalid, "rate_per_unit")
	}
	deliveryDate, err := metadata.NewDate(d.DeliveryDate)
	if err != nil {
		invalid = append(invalid, "delivery_date")
	}
	if len(invalid) > 0 {
		return models.StockReceipt{}, &custom_error.ValidationError{Invalid: invalid}
	}

	return models.StockReceipt{
		ItemCode:          strings.TrimSpace(d.ItemCode),
		ItemName:          strings.TrimSpace(d.ItemName),
		QuantityReceived:  quantity,
		RatePerUnit:       rate,
		UnitOfMeasurement: strings.TrimSpace(d.UnitOfMeasurement),
		TotalValue:        quantity.Mul(rate),
		SupplierName:      strings.TrimSpace(d.SupplierName),
		DeliveryDate:      deliveryDate,
		ReceivedBy:        strings.TrimSpace(d.ReceivedBy),
	}, nil
}
