package pipeline

import (
	"strings"

	"github.com/insightdelivered/rib-extractor/internal/models"
	"github.com/insightdelivered/rib-extractor/internal/rib"
)

// Normalize puts every present field into its canonical form: compact
// uppercase IBAN, uppercase BIC, zero-padded numeric codes, trimmed
// text. Running it twice changes nothing.
func Normalize(rec *models.RibRecord) {
	if rec.IBAN.Present() {
		rec.IBAN.Value = rib.Compact(rec.IBAN.Value)
	}
	if rec.BIC.Present() {
		rec.BIC.Value = rib.Compact(rec.BIC.Value)
	}
	if rec.BankCode.Present() {
		rec.BankCode.Value = padNumeric(rec.BankCode.Value, 5)
	}
	if rec.BranchCode.Present() {
		rec.BranchCode.Value = padNumeric(rec.BranchCode.Value, 5)
	}
	if rec.RIBKey.Present() {
		rec.RIBKey.Value = padNumeric(rec.RIBKey.Value, 2)
	}
	if rec.AccountNumber.Present() {
		rec.AccountNumber.Value = strings.ToUpper(strings.TrimSpace(rec.AccountNumber.Value))
	}
	if rec.AccountHolder.Present() {
		rec.AccountHolder.Value = strings.TrimSpace(rec.AccountHolder.Value)
	}

	var lines []string
	for _, l := range rec.Domiciliation.Lines {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	rec.Domiciliation.Lines = lines
	if len(lines) == 0 && rec.Domiciliation.Status != models.StatusAbsent {
		rec.Domiciliation = models.Domiciliation{Status: models.StatusAbsent}
	}
}

// padNumeric left-pads an all-digit value that lost leading zeros (a
// spreadsheet round trip turns "00794" into "794"). Non-numeric or
// full-width values pass through untouched.
func padNumeric(v string, width int) string {
	v = strings.TrimSpace(v)
	if len(v) >= width || !allDigits(v) {
		return v
	}
	return strings.Repeat("0", width-len(v)) + v
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
