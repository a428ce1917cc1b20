// Package export serializes report tables to XLSX workbooks and bundles
// them into the downloadable ZIP archive.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/arc-moshe/GCO-RideAmigos/internal/report"
)

// Workbook renders one report table as a single-sheet XLSX workbook.
func Workbook(t report.Table) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	if err != nil {
		return nil, eris.Wrapf(err, "export: add sheet for %s", t.Name)
	}

	headerRow := sheet.AddRow()
	for _, col := range t.Columns {
		headerRow.AddCell().SetString(col)
	}

	for _, row := range t.Rows {
		out := sheet.AddRow()
		for _, v := range row {
			setCell(out.AddCell(), v)
		}
	}
	return f, nil
}

// setCell writes one typed value. Nil pointers render as blank cells so
// "absent" stays distinguishable from zero in the output.
func setCell(cell *xlsx.Cell, v any) {
	switch val := v.(type) {
	case nil:
		cell.SetString("")
	case string:
		cell.SetString(val)
	case float64:
		cell.SetFloat(val)
	case int:
		cell.SetInt(val)
	case *int:
		if val == nil {
			cell.SetString("")
		} else {
			cell.SetInt(*val)
		}
	case *float64:
		if val == nil {
			cell.SetString("")
		} else {
			cell.SetFloat(*val)
		}
	case bool:
		if val {
			cell.SetInt(1)
		} else {
			cell.SetInt(0)
		}
	default:
		cell.SetValue(val)
	}
}
