package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders a table as an xlsx workbook
type ExcelExporter struct {
	sheetName string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(sheetName string) *ExcelExporter {
	if sheetName == "" {
		sheetName = "Report"
	}
	return &ExcelExporter{sheetName: sheetName}
}

// Render writes the table to w as an xlsx workbook with a styled, frozen
// header row.
func (e *ExcelExporter) Render(table Table, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", e.sheetName)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(e.sheetName, cell, col)
		file.SetCellStyle(e.sheetName, cell, cell, headerStyle)
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			file.SetCellValue(e.sheetName, cell, value)
		}
	}

	file.SetPanes(e.sheetName, &excelize.Panes{
		Freeze: true,
		YSplit: 1,
	})

	if len(table.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), 1)
		file.AutoFilter(e.sheetName, "A1:"+last, nil)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
