package receipts

import (
	"errors"
	"testing"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/sampledata"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDraft() Draft {
	return Draft{
		ItemCode:          "CEM-001",
		ItemName:          "Portland Cement",
		QuantityReceived:  "50",
		RatePerUnit:       "420",
		UnitOfMeasurement: "Bags",
		SupplierName:      "ABC Building Materials",
		DeliveryDate:      "2024-01-08",
		ReceivedBy:        "John Smith",
	}
}

func TestSelectItem(t *testing.T) {
	items := sampledata.Items()
	draft := Draft{QuantityReceived: "10", SupplierName: "Steel Corp Ltd"}

	selected := draft.SelectItem(items, "STL-012")

	assert.Equal(t, "STL-012", selected.ItemCode)
	assert.Equal(t, "Steel Reinforcement Bars 12mm", selected.ItemName)
	assert.Equal(t, "Pieces", selected.UnitOfMeasurement)
	assert.Equal(t, "850", selected.RatePerUnit)
	assert.Equal(t, "10", selected.QuantityReceived)
	assert.Equal(t, "Steel Corp Ltd", selected.SupplierName)
	assert.Equal(t, Draft{QuantityReceived: "10", SupplierName: "Steel Corp Ltd"}, draft)

	assert.Equal(t, draft, draft.SelectItem(items, "NOPE-404"))
}

func TestTotalValue(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		rate     string
		expected string
	}{
		{"cement delivery", "50", "420", "21000"},
		{"fractional quantity", "2.5", "2800", "7000"},
		{"zero rate", "10", "0", "0"},
		{"blank quantity", "", "420", "0"},
		{"blank rate", "50", "", "0"},
		{"non-numeric quantity", "fifty", "420", "0"},
		{"non-numeric rate", "50", "4x0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Draft{QuantityReceived: tt.quantity, RatePerUnit: tt.rate}
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(d.TotalValue()), "got %s", d.TotalValue())
		})
	}
}

func TestValidateReportsEachMissingField(t *testing.T) {
	clear := map[string]func(*Draft){
		"item_name":           func(d *Draft) { d.ItemName = "" },
		"item_code":           func(d *Draft) { d.ItemCode = "" },
		"quantity_received":   func(d *Draft) { d.QuantityReceived = "" },
		"rate_per_unit":       func(d *Draft) { d.RatePerUnit = " " },
		"unit_of_measurement": func(d *Draft) { d.UnitOfMeasurement = "" },
		"supplier_name":       func(d *Draft) { d.SupplierName = "" },
		"delivery_date":       func(d *Draft) { d.DeliveryDate = "" },
		"received_by":         func(d *Draft) { d.ReceivedBy = "" },
	}

	assert.NoError(t, completeDraft().Validate())

	for field, apply := range clear {
		t.Run(field, func(t *testing.T) {
			d := completeDraft()
			apply(&d)

			err := d.Validate()

			var validation *custom_error.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Equal(t, []string{field}, validation.Missing)
		})
	}
}

func TestRecord(t *testing.T) {
	receipt, err := completeDraft().Record()

	require.NoError(t, err)
	assert.Equal(t, "CEM-001", receipt.ItemCode)
	assert.True(t, decimal.NewFromInt(21000).Equal(receipt.TotalValue))
	assert.Equal(t, metadata.Date("2024-01-08"), receipt.DeliveryDate)

	d := completeDraft()
	d.QuantityReceived = "lots"
	d.DeliveryDate = "yesterday"
	_, err = d.Record()

	var validation *custom_error.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"quantity_received", "delivery_date"}, validation.Invalid)
}
