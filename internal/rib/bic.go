package rib

import "regexp"

// bicPattern is the structural SWIFT/BIC rule: 4-letter bank code,
// 2-letter country code, 2 alphanumeric location characters, optional
// 3-character branch suffix. No registry lookup is attempted.
var bicPattern = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

// ValidateBIC reports whether a BIC matches the 8/11-character format.
func ValidateBIC(bic string) bool {
	return bicPattern.MatchString(bic)
}

// CleanBIC strips OCR debris from a BIC candidate: removes everything
// non-alphanumeric, uppercases, and truncates to the nearest valid
// length (11, else 8). Returns "" when fewer than 8 characters remain.
func CleanBIC(raw string) string {
	bic := Compact(raw)
	switch {
	case len(bic) >= 11:
		return bic[:11]
	case len(bic) >= 8:
		return bic[:8]
	default:
		return ""
	}
}
