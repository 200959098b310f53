package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/sampledata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "itemcode", NormalizeLabel("Item Code"))
	assert.Equal(t, "rateperunit", NormalizeLabel("Rate  Per\tUnit"))
	assert.Equal(t, "purpose/activity", NormalizeLabel("Purpose/Activity"))
}

func TestValuationExport(t *testing.T) {
	def := DefinitionOf(KindValuation)

	out, err := Export(ValuationRows(sampledata.Items()), def.Labels)

	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Item Code,Item Name,Current Stock,Unit,Rate Per Unit,Total Value", lines[0])
	assert.Equal(t, "CEM-001,Portland Cement,45,Bags,420,18900", lines[1])
	assert.Equal(t, "SND-001,Sand (River),8.5,Cubic Meters,2800,23800", lines[4])
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestExportShape(t *testing.T) {
	tests := []struct {
		name   string
		rows   []Row
		labels []string
	}{
		{"receipts", ReceiptRows(sampledata.Receipts()), DefinitionOf(KindReceipts).Labels},
		{"consumption", ConsumptionRows(sampledata.Consumption()), DefinitionOf(KindConsumption).Labels},
		{"valuation", ValuationRows(sampledata.Items()), DefinitionOf(KindValuation).Labels},
		{"no rows", nil, DefinitionOf(KindValuation).Labels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Export(tt.rows, tt.labels)
			require.NoError(t, err)

			lines := strings.Split(out, "\n")
			assert.Len(t, lines, len(tt.rows)+1)
			for _, line := range lines {
				assert.Len(t, strings.Split(line, ","), len(tt.labels), line)
			}
		})
	}
}

func TestExportColumnCounts(t *testing.T) {
	assert.Len(t, DefinitionOf(KindReceipts).Labels, 9)
	assert.Len(t, DefinitionOf(KindConsumption).Labels, 7)
	assert.Len(t, DefinitionOf(KindValuation).Labels, 6)
}

func TestExportQuotesCommas(t *testing.T) {
	rows := []Row{{
		"suppliername": "Steel Corp, Ltd",
		"quantity":     decimal.RequireFromString("1500.25"),
		"remarks":      "plain",
	}}

	out, err := Export(rows, []string{"Supplier Name", "Quantity", "Remarks", "Missing"})

	require.NoError(t, err)
	assert.Equal(t, "Supplier Name,Quantity,Remarks,Missing\n\"Steel Corp, Ltd\",1500.25,plain,", out)
}

func TestExportQuotesFieldsLikeRFC4180(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "plain", value: "Steel Corp", expected: "Steel Corp"},
		{name: "comma", value: "Steel Corp, Ltd", expected: `"Steel Corp, Ltd"`},
		{name: "double quote", value: `12" pipe`, expected: `"12"" pipe"`},
		{name: "leading space", value: " Team", expected: `" Team"`},
		{name: "line break", value: "Block A\nBlock B", expected: "\"Block A\nBlock B\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Export([]Row{{"remarks": tt.value}}, []string{"Remarks"})

			require.NoError(t, err)
			assert.Equal(t, "Remarks\n"+tt.expected, out)
		})
	}
}

func TestConsumptionExportFillsActivity(t *testing.T) {
	out, err := Export(ConsumptionRows(sampledata.Consumption()), DefinitionOf(KindConsumption).Labels)

	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "Item Code,Item Name,Quantity Used,Purpose/Activity,Used By,Date,Remarks", lines[0])
	assert.Equal(t, "CEM-001,Portland Cement,5,FND-001,Construction Team A,2024-01-09,Foundation work - Block A", lines[2])
}

func TestReceiptExportRow(t *testing.T) {
	out, err := Export(ReceiptRows(sampledata.Receipts()), DefinitionOf(KindReceipts).Labels)

	require.NoError(t, err)
	assert.Equal(t,
		"CEM-001,Portland Cement,50,420,Bags,21000,ABC Building Materials,2024-01-08,John Smith",
		strings.Split(out, "\n")[1])
}

func TestFilename(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2024, 1, 10, 2, 0, 0, 0, ist)

	assert.Equal(t, "stock_valuation_report_2024-01-09.csv", Filename("stock_valuation_report", at, "csv"))
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("Receipts")
	assert.NoError(t, err)
	assert.Equal(t, KindReceipts, kind)

	kind, err = ParseKind("stock_consumption_report")
	assert.NoError(t, err)
	assert.Equal(t, KindConsumption, kind)

	_, err = ParseKind("transfers")
	assert.Error(t, err)
}

func TestExportXLSX(t *testing.T) {
	def := DefinitionOf(KindValuation)

	body, err := ExportXLSX(def.Title, ValuationRows(sampledata.Items()), def.Labels)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(def.Title)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, def.Labels, rows[0])
	assert.Equal(t, []string{"CEM-001", "Portland Cement", "45", "Bags", "420", "18900"}, rows[1])
}
