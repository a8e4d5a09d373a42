package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/rib-extractor/internal/models"
)

const sheetName = "RIB"

// XLSXWriter writes records to an Excel workbook. Cells are set with
// SetCellStr so Excel never reinterprets "00794" as the number 794; no
// apostrophe guard is needed here.
type XLSXWriter struct{}

// WriteToFile writes records to an XLSX file at the given path.
func (w *XLSXWriter) WriteToFile(path string, records []models.RibRecord) error {
	f, err := w.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write streams the workbook to the given writer.
func (w *XLSXWriter) Write(out io.Writer, records []models.RibRecord) error {
	f, err := w.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(records []models.RibRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for c, h := range Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStr(sheetName, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	for r, rec := range records {
		for c, v := range recordRow(&rec) {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellStr(sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	// Wide enough for a grouped IBAN and a multi-line address.
	if err := f.SetColWidth(sheetName, "A", "I", 24); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}
