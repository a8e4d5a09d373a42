// Package pipeline runs the extraction stages in order: parse, validate
// checksums, reconstruct missing pieces, normalize for output. Each stage
// only upgrades or annotates the record; extracted values are never
// silently discarded.
package pipeline

import (
	"github.com/insightdelivered/rib-extractor/internal/models"
	"github.com/insightdelivered/rib-extractor/internal/parser"
	"github.com/insightdelivered/rib-extractor/internal/rib"
)

// Process turns one document's raw text into a finished record.
func Process(text string) models.RibRecord {
	rec := parser.Extract(text)
	Validate(&rec)
	Reconstruct(&rec)
	Normalize(&rec)
	return rec
}

// Validate checks the RIB key, the IBAN checksum and the BIC structure,
// marking fields validated or invalid. It never changes a value.
func Validate(rec *models.RibRecord) {
	if rec.HasRIBComponents() {
		ok := rib.ValidateKey(
			rec.BankCode.Value,
			rec.BranchCode.Value,
			rec.AccountNumber.Value,
			rec.RIBKey.Value,
		)
		if ok {
			rec.BankCode.Status = models.StatusValidated
			rec.BranchCode.Status = models.StatusValidated
			rec.AccountNumber.Status = models.StatusValidated
			rec.RIBKey.Status = models.StatusValidated
		} else {
			// The key is the usual OCR victim; the components keep
			// their extracted status so the writer still shows them.
			rec.RIBKey.Status = models.StatusInvalid
		}
	}

	if rec.IBAN.Present() {
		if rib.ValidateIBAN(rec.IBAN.Value) {
			rec.IBAN.Status = models.StatusValidated
		} else {
			rec.IBAN.Status = models.StatusInvalid
		}
	}

	if rec.BIC.Present() {
		if rib.ValidateBIC(rib.CleanBIC(rec.BIC.Value)) {
			rec.BIC.Status = models.StatusValidated
		} else {
			rec.BIC.Status = models.StatusInvalid
		}
	}
}

// Reconstruct fills what validation proved derivable: absent components
// from a validated French IBAN, a missing RIB key from the other three
// components, and the IBAN itself from components that pass the key
// check. A validated IBAN is never overwritten.
func Reconstruct(rec *models.RibRecord) {
	if rec.IBAN.Status == models.StatusValidated {
		if bank, branch, account, key, err := rib.SplitFrenchIBAN(rec.IBAN.Value); err == nil {
			fillAbsent(&rec.BankCode, bank)
			fillAbsent(&rec.BranchCode, branch)
			fillAbsent(&rec.AccountNumber, account)
			fillAbsent(&rec.RIBKey, key)
		}
	}

	if !rec.RIBKey.Present() &&
		rec.BankCode.Present() && rec.BranchCode.Present() && rec.AccountNumber.Present() {
		if key, err := rib.ComputeKey(rec.BankCode.Value, rec.BranchCode.Value, rec.AccountNumber.Value); err == nil {
			rec.RIBKey = models.Field{Value: key, Status: models.StatusReconstructed}
		}
	}

	if rec.IBAN.Status != models.StatusValidated && rec.HasRIBComponents() &&
		rib.ValidateKey(rec.BankCode.Value, rec.BranchCode.Value, rec.AccountNumber.Value, rec.RIBKey.Value) {
		if iban, err := rib.BuildFrenchIBAN(rec.BankCode.Value, rec.BranchCode.Value, rec.AccountNumber.Value, rec.RIBKey.Value); err == nil {
			rec.IBAN = models.Field{Value: iban, Status: models.StatusReconstructed}
		}
	}
}

func fillAbsent(f *models.Field, value string) {
	if !f.Present() {
		*f = models.Field{Value: value, Status: models.StatusReconstructed}
	}
}
