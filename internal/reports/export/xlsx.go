package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kaizen-academy/kaizen-admin/internal/reports"
)

const (
	defaultSheet = "Sheet1"
	columnWidth  = 18
)

// WriteXLSX writes the table as a single-sheet workbook named sheet.
func WriteXLSX(w io.Writer, sheet string, table reports.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for rowIdx, row := range table.Rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if n := len(table.Headers); n > 0 {
		last, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, columnWidth); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
