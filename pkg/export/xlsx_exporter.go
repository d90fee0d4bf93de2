package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// XLSXExporter renders Dataset records into a single-sheet workbook.
type XLSXExporter struct {
	minColWidth float64
	maxColWidth float64
}

// NewXLSXExporter builds an XLSX exporter with sane column sizing bounds.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{minColWidth: 12, maxColWidth: 48}
}

// Render produces workbook bytes for the dataset: one sheet, a bold-free
// header row, and columns pre-sized to their longest cell.
func (e *XLSXExporter) Render(data Dataset, sheetTitle string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := defaultSheetName
	if sheetTitle != "" {
		if err := f.SetSheetName(defaultSheetName, sheetTitle); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = sheetTitle
	}

	widths := make([]float64, len(data.Headers))
	for col, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header %q: %w", header, err)
		}
		widths[col] = cellWidth(header)
	}

	for rowIdx, row := range data.Rows {
		for col, header := range data.Headers {
			value := row[header]
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("cell name row %d: %w", rowIdx+2, err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
			if w := cellWidth(value); w > widths[col] {
				widths[col] = w
			}
		}
	}

	for col := range data.Headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", col+1, err)
		}
		width := widths[col]
		if width < e.minColWidth {
			width = e.minColWidth
		}
		if width > e.maxColWidth {
			width = e.maxColWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return nil, fmt.Errorf("size column %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// cellWidth approximates the display width of a value in column units.
func cellWidth(value string) float64 {
	return float64(len([]rune(value)))*1.2 + 2
}
