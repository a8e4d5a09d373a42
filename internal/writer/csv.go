// Package writer exports processed records to CSV and XLSX. Every cell
// is text: bank codes and RIB keys carry leading zeros that a numeric
// column would destroy.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/insightdelivered/rib-extractor/internal/models"
	"github.com/insightdelivered/rib-extractor/internal/rib"
)

// MissingMarker fills cells for fields that could not be extracted nor
// reconstructed.
const MissingMarker = "MANQUANT"

// Columns is the export header, shared by the CSV and XLSX writers.
var Columns = []string{
	"Fichier",
	"Titulaire du compte",
	"Code Banque",
	"Code Guichet",
	"N° de compte",
	"Clé RIB",
	"BIC / SWIFT",
	"IBAN",
	"Domiciliation",
}

// CSVWriter writes records to CSV format.
type CSVWriter struct {
	// TextGuard prefixes numeric codes with an apostrophe so spreadsheet
	// imports keep their leading zeros. Off for machine consumers.
	TextGuard bool
}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, records []models.RibRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, records)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, records []models.RibRecord) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := recordRow(&rec)
		if w.TextGuard {
			guardNumericCells(row)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

// recordRow renders one record in Columns order.
func recordRow(rec *models.RibRecord) []string {
	return []string{
		rec.SourceFile,
		cellValue(rec.AccountHolder),
		cellValue(rec.BankCode),
		cellValue(rec.BranchCode),
		cellValue(rec.AccountNumber),
		cellValue(rec.RIBKey),
		cellValue(rec.BIC),
		ibanCell(rec.IBAN),
		domiciliationCell(rec.Domiciliation),
	}
}

func cellValue(f models.Field) string {
	if !f.Present() {
		return MissingMarker
	}
	return f.Value
}

// ibanCell renders the IBAN in display form, grouped in fours.
func ibanCell(f models.Field) string {
	if !f.Present() {
		return MissingMarker
	}
	return rib.FormatIBAN(f.Value)
}

func domiciliationCell(d models.Domiciliation) string {
	if len(d.Lines) == 0 {
		return MissingMarker
	}
	return strings.Join(d.Lines, "\n")
}

// guardNumericCells protects the bank code, branch code, account number
// and RIB key columns (indexes 2..5) from numeric coercion.
func guardNumericCells(row []string) {
	for i := 2; i <= 5; i++ {
		if row[i] != MissingMarker && row[i] != "" {
			row[i] = "'" + row[i]
		}
	}
}
