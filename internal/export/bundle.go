package export

import (
	"archive/zip"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/arc-moshe/GCO-RideAmigos/internal/report"
)

// WriteBundle writes the report tables as XLSX workbooks inside a ZIP
// archive at path.
func WriteBundle(path string, tables []report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create bundle %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := WriteBundleTo(f, tables); err != nil {
		return err
	}
	zap.L().Info("export: bundle written",
		zap.String("path", path),
		zap.Int("tables", len(tables)),
	)
	return nil
}

// WriteBundleTo streams the ZIP bundle to w, one "<table name>.xlsx"
// entry per table.
func WriteBundleTo(w io.Writer, tables []report.Table) error {
	zw := zip.NewWriter(w)
	for _, t := range tables {
		wb, err := Workbook(t)
		if err != nil {
			return err
		}
		entry, err := zw.Create(t.Name + ".xlsx")
		if err != nil {
			return eris.Wrapf(err, "export: create bundle entry %s", t.Name)
		}
		if err := wb.Write(entry); err != nil {
			return eris.Wrapf(err, "export: write workbook %s", t.Name)
		}
	}
	if err := zw.Close(); err != nil {
		return eris.Wrap(err, "export: close bundle")
	}
	return nil
}
