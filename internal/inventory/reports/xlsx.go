package reports

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the same table as Export into a single-sheet workbook.
// Decimal values become numeric cells.
func ExportXLSX(sheet string, rows []Row, labels []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, label := range labels {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		for col, label := range labels {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheet, cell, cellValue(row[NormalizeLabel(label)])); err != nil {
				return nil, err
			}
		}
	}

	if len(labels) > 0 {
		last, _ := excelize.ColumnNumberToName(len(labels))
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(value any) any {
	if d, ok := value.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	if value == nil {
		return ""
	}
	return formatValue(value)
}
