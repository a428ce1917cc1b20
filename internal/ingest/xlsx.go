// Package ingest parses the Users and Trips XLSX extracts into domain
// records and removes internal/test accounts before the pipeline runs.
package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX reads the first sheet of an XLSX file as string rows.
func ReadXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	return sheetRows(f)
}

// ReadXLSXBytes reads the first sheet of an in-memory XLSX document,
// as received from an upload.
func ReadXLSXBytes(data []byte) ([][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open uploaded workbook")
	}
	return sheetRows(f)
}

func sheetRows(f *xlsx.File) ([][]string, error) {
	if len(f.Sheets) == 0 {
		return nil, eris.New("ingest: workbook has no sheets")
	}
	sheet := f.Sheets[0]

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// header maps lower-cased column names to their index.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[normalizeKey(name)] = i
	}
	return h
}

// require returns the index of each named column, failing fast with one
// error listing everything missing.
func (h header) require(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		j, ok := h[normalizeKey(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = j
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("ingest: required columns missing: %v", missing)
	}
	return idx, nil
}

// optional returns a column index or -1.
func (h header) optional(name string) int {
	if j, ok := h[normalizeKey(name)]; ok {
		return j
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
