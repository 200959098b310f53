package consumption

import (
	"fmt"
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/forms"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/shopspring/decimal"
)

// Draft is the consumption form as typed. Stock is deliberately absent:
// it is read from the live item list every time it is needed.
type Draft struct {
	ItemCode            string `json:"item_code"`
	ItemName            string `json:"item_name"`
	QuantityUsed        string `json:"quantity_used"`
	PurposeActivityCode string `json:"purpose_activity_code"`
	UsedBy              string `json:"used_by"`
	Date                string `json:"date"`
	Remarks             string `json:"remarks"`
}

func (d Draft) SelectItem(items []models.InventoryItem, itemCode string) Draft {
	item, ok := models.FindItem(items, itemCode)
	if !ok {
		return d
	}

	d.ItemCode = item.ItemCode
	d.ItemName = item.ItemName
	return d
}

// Assessment holds the values derived from a draft against the current
// item list.
type Assessment struct {
	Item              *models.InventoryItem `json:"item,omitempty"`
	AvailableStock    decimal.Decimal       `json:"available_stock"`
	RequestedQuantity decimal.Decimal       `json:"requested_quantity"`
	Exceeds           bool                  `json:"exceeds"`
	Preview           string                `json:"preview,omitempty"`
	SubmitEnabled     bool                  `json:"submit_enabled"`
}

func Assess(d Draft, items []models.InventoryItem) Assessment {
	var a Assessment
	if item, ok := models.FindItem(items, d.ItemCode); ok {
		a.Item = &item
		a.AvailableStock = item.CurrentStock
	}
	a.RequestedQuantity = forms.NumberOrZero(d.QuantityUsed)
	a.Exceeds = a.RequestedQuantity.GreaterThan(a.AvailableStock)
	a.SubmitEnabled = a.Item != nil && !a.Exceeds

	if a.RequestedQuantity.IsPositive() {
		if a.Exceeds {
			a.Preview = fmt.Sprintf("Exceeds available stock by %s", a.RequestedQuantity.Sub(a.AvailableStock))
		} else {
			a.Preview = fmt.Sprintf("%s will remain in stock", a.AvailableStock.Sub(a.RequestedQuantity))
		}
	}

	return a
}

// Validate runs the submit checks in order: required fields, then stock
// sufficiency against items.
func (d Draft) Validate(items []models.InventoryItem) error {
	if err := d.checkRequired(); err != nil {
		return err
	}
	return d.checkStock(items)
}

func (d Draft) checkRequired() error {
	missing := forms.Missing(
		forms.Field{Name: "item_code", Value: d.ItemCode},
		forms.Field{Name: "quantity_used", Value: d.QuantityUsed},
		forms.Field{Name: "purpose_activity_code", Value: d.PurposeActivityCode},
		forms.Field{Name: "used_by", Value: d.UsedBy},
		forms.Field{Name: "date", Value: d.Date},
	)
	if len(missing) > 0 {
		return &custom_error.ValidationError{Missing: missing}
	}
	return nil
}

func (d Draft) checkStock(items []models.InventoryItem) error {
	a := Assess(d, items)
	if !a.Exceeds {
		return nil
	}

	err := &custom_error.InsufficientStockError{
		ItemCode:  strings.TrimSpace(d.ItemCode),
		Available: a.AvailableStock,
		Requested: a.RequestedQuantity,
	}
	if a.Item != nil {
		err.Unit = a.Item.UnitOfMeasurement
	}
	return err
}

// Record converts a validated draft into the entry handed to the store.
func (d Draft) Record(items []models.InventoryItem) (models.StockConsumption, error) {
	if err := d.Validate(items); err != nil {
		return models.StockConsumption{}, err
	}

	var invalid []string
	quantity, ok := forms.ParseNumber(d.QuantityUsed)
	if !ok {
		invalid = append(invalid, "quantity_used")
	}
	if _, ok := metadata.LookupActivityCode(d.PurposeActivityCode); !ok {
		invalid = append(invalid, "purpose_activity_code")
	}
	date, err := metadata.NewDate(d.Date)
	if err != nil {
		invalid = append(invalid, "date")
	}
	if len(invalid) > 0 {
		return models.StockConsumption{}, &custom_error.ValidationError{Invalid: invalid}
	}

	itemName := strings.TrimSpace(d.ItemName)
	if item, ok := models.FindItem(items, d.ItemCode); ok && itemName == "" {
		itemName = item.ItemName
	}

	return models.StockConsumption{
		ItemCode:            strings.TrimSpace(d.ItemCode),
		ItemName:            itemName,
		QuantityUsed:        quantity,
		PurposeActivityCode: strings.TrimSpace(d.PurposeActivityCode),
		UsedBy:              strings.TrimSpace(d.UsedBy),
		Date:                date,
		Remarks:             strings.TrimSpace(d.Remarks),
	}, nil
}
