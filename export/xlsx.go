package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/finledger/finledger/reporting"
)

// XLSX renders report as a single-sheet spreadsheet with a header row;
// numeric columns are written as numbers, not strings (spec.md §4.H).
func XLSX(report *reporting.Report, banner Banner) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(report.Title)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", report.Title)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("%s — %s", banner.Company, banner.Period))

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	const headerRow = 4
	for i, col := range report.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, col.Header)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(report.Columns), headerRow)
	firstCol, _ := excelize.CoordinatesToCellName(1, headerRow)
	f.SetCellStyle(sheet, firstCol, lastCol, headerStyle)

	for r, row := range report.Rows {
		excelRow := headerRow + 1 + r
		for c, col := range report.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, excelRow)
			if n, ok := rawNumber(row[col.Key]); ok {
				f.SetCellValue(sheet, cell, n)
			} else if row[col.Key] != nil {
				f.SetCellValue(sheet, cell, fmt.Sprintf("%v", row[col.Key]))
			}
		}
	}

	for i := range report.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}

	if f.GetSheetName(0) == "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
