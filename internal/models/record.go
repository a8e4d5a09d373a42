package models

// FieldStatus tracks what the pipeline did with a field.
type FieldStatus string

const (
	// StatusAbsent means no label/pattern matched. Not an error: optional
	// or OCR-damaged fields end up here.
	StatusAbsent FieldStatus = "absent"
	// StatusExtracted means a value was found but not yet checked.
	StatusExtracted FieldStatus = "extracted"
	// StatusValidated means the value passed its checksum/format rule.
	StatusValidated FieldStatus = "validated"
	// StatusInvalid means the value failed its checksum/format rule.
	StatusInvalid FieldStatus = "invalid"
	// StatusReconstructed means the value was derived from other fields.
	StatusReconstructed FieldStatus = "reconstructed"
)

// Field is one extracted value together with its processing status.
// A Field is never a bare string: an absent field and an extracted-but-empty
// field stay distinguishable all the way to export.
type Field struct {
	Value  string      `json:"value"`
	Status FieldStatus `json:"status"`
}

// Extracted wraps a freshly extracted value.
func Extracted(value string) Field {
	return Field{Value: value, Status: StatusExtracted}
}

// Absent is the zero outcome for a field with no pattern match.
func Absent() Field {
	return Field{Status: StatusAbsent}
}

// Present reports whether the field carries a usable value.
func (f Field) Present() bool {
	return f.Status != StatusAbsent && f.Status != "" && f.Value != ""
}

// Domiciliation is the bank branch address as printed on the document:
// an ordered sequence of lines, possibly empty.
type Domiciliation struct {
	Lines  []string    `json:"lines"`
	Status FieldStatus `json:"status"`
}

// RibRecord is the structured result of processing one RIB document.
// All numeric-looking fields (bank code, branch code, account number,
// RIB key) are text so leading zeros survive export.
type RibRecord struct {
	AccountHolder Field         `json:"accountHolder"`
	BankCode      Field         `json:"bankCode"`      // exactly 5 digits
	BranchCode    Field         `json:"branchCode"`    // "code guichet", exactly 5 digits
	AccountNumber Field         `json:"accountNumber"` // up to 11 alphanumerics
	RIBKey        Field         `json:"ribKey"`        // 2-digit checksum
	IBAN          Field         `json:"iban"`          // canonical compact form, no spaces
	BIC           Field         `json:"bic"`           // 8 or 11 characters
	Domiciliation Domiciliation `json:"domiciliation"`
	SourceFile    string        `json:"sourceFile,omitempty"`
}

// NewRecord returns an empty record with every field marked absent.
func NewRecord() RibRecord {
	return RibRecord{
		AccountHolder: Absent(),
		BankCode:      Absent(),
		BranchCode:    Absent(),
		AccountNumber: Absent(),
		RIBKey:        Absent(),
		IBAN:          Absent(),
		BIC:           Absent(),
		Domiciliation: Domiciliation{Status: StatusAbsent},
	}
}

// HasRIBComponents reports whether the four fields needed for the RIB key
// check are all present.
func (r *RibRecord) HasRIBComponents() bool {
	return r.BankCode.Present() && r.BranchCode.Present() &&
		r.AccountNumber.Present() && r.RIBKey.Present()
}
