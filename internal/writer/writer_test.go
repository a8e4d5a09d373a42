package writer

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/rib-extractor/internal/models"
)

func sampleRecord() models.RibRecord {
	rec := models.NewRecord()
	rec.SourceFile = "rib_dupont.pdf"
	rec.AccountHolder = models.Extracted("M. JEAN DUPONT")
	rec.BankCode = models.Field{Value: "30001", Status: models.StatusValidated}
	rec.BranchCode = models.Field{Value: "00794", Status: models.StatusValidated}
	rec.AccountNumber = models.Field{Value: "12345678901", Status: models.StatusValidated}
	rec.RIBKey = models.Field{Value: "85", Status: models.StatusValidated}
	rec.IBAN = models.Field{Value: "FR7630001007941234567890185", Status: models.StatusValidated}
	rec.Domiciliation = models.Domiciliation{
		Lines:  []string{"AGENCE DE PARIS OPERA", "12 RUE DE LA PAIX", "75002 PARIS"},
		Status: models.StatusExtracted,
	}
	// BIC left absent on purpose.
	return rec
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, []models.RibRecord{sampleRecord()}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}

	if rows[0][0] != "Fichier" || rows[0][8] != "Domiciliation" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "rib_dupont.pdf" {
		t.Errorf("source file = %q", row[0])
	}
	if row[2] != "30001" || row[3] != "00794" || row[5] != "85" {
		t.Errorf("component cells = %q %q %q", row[2], row[3], row[5])
	}
	if row[6] != MissingMarker {
		t.Errorf("absent BIC = %q, want %q", row[6], MissingMarker)
	}
	if row[7] != "FR76 3000 1007 9412 3456 7890 185" {
		t.Errorf("iban cell = %q, want display grouping", row[7])
	}
	if row[8] != "AGENCE DE PARIS OPERA\n12 RUE DE LA PAIX\n75002 PARIS" {
		t.Errorf("domiciliation cell = %q", row[8])
	}
}

func TestCSVWriter_TextGuard(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{TextGuard: true}
	if err := w.Write(&buf, []models.RibRecord{sampleRecord()}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	row := rows[1]

	if row[2] != "'30001" || row[3] != "'00794" || row[4] != "'12345678901" || row[5] != "'85" {
		t.Errorf("numeric cells not guarded: %q %q %q %q", row[2], row[3], row[4], row[5])
	}
	if row[6] != MissingMarker {
		t.Errorf("missing marker must not be guarded, got %q", row[6])
	}
	if row[1] != "M. JEAN DUPONT" {
		t.Errorf("holder must not be guarded, got %q", row[1])
	}
}

func TestCSVWriter_EmptyRecords(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil || len(rows) != 1 {
		t.Fatalf("want header only, got %v (err %v)", rows, err)
	}
}

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{}
	if err := w.Write(&buf, []models.RibRecord{sampleRecord()}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		return v
	}

	if get("A1") != "Fichier" || get("C1") != "Code Banque" {
		t.Errorf("unexpected header row: %q %q", get("A1"), get("C1"))
	}
	// Leading zeros survive the spreadsheet round trip.
	if get("D2") != "00794" {
		t.Errorf("branch code cell = %q, want 00794", get("D2"))
	}
	if get("H2") != "FR76 3000 1007 9412 3456 7890 185" {
		t.Errorf("iban cell = %q", get("H2"))
	}
	if get("G2") != MissingMarker {
		t.Errorf("absent BIC cell = %q", get("G2"))
	}
}
