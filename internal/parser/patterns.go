package parser

import "regexp"

// A fieldRule locates one scalar field: find the label anchor, skip
// separator characters, and require the value shape right after. Rules
// for a field are tried in order, most specific anchor first; within one
// rule every anchor occurrence is tried until the value shape matches.
// Labels are assumed to precede their values, as on standard RIB layouts,
// so the first plausible match after the label wins.
type fieldRule struct {
	anchor *regexp.Regexp
	// value is anchored at the start of the text following the label and
	// carries exactly one capture group.
	value *regexp.Regexp
	// filter optionally rejects a shaped candidate (e.g. a name word
	// caught by a loose anchor).
	filter func(string) bool
}

func (r fieldRule) find(text string) string {
	for _, loc := range r.anchor.FindAllStringIndex(text, -1) {
		m := r.value.FindStringSubmatch(text[loc[1]:])
		if m == nil {
			continue
		}
		if r.filter != nil && !r.filter(m[1]) {
			continue
		}
		return m[1]
	}
	return ""
}

// firstMatch evaluates a prioritized rule list and returns the first hit.
func firstMatch(rules []fieldRule, text string) string {
	for _, r := range rules {
		if v := r.find(text); v != "" {
			return v
		}
	}
	return ""
}

// Value shapes. Each skips forward over non-digits only, so the value is
// the first digit run after the label, as on printed RIB tables where a
// row of labels precedes the row of values.
var (
	fiveDigits = regexp.MustCompile(`^[^0-9]*([0-9]{5})\b`)
	twoDigits  = regexp.MustCompile(`^[^0-9]*([0-9]{2})\b`)
	// French account numbers may contain letters but start with a digit
	// in practice; up to 34 so oversized candidates (an IBAN caught by a
	// loose "compte" anchor) reach the filter and get rejected there.
	accountRun = regexp.MustCompile(`(?i)^[^0-9]*([0-9][0-9a-z]{3,33})\b`)
)

func accountFilter(v string) bool {
	return len(v) >= 4 && len(v) <= 11 && containsDigit(v)
}

// Anchors are matched against accent-folded text ("clé" arrives from OCR
// as "cle" often enough that folding both sides is the only stable way).
var (
	bankCodeRules = []fieldRule{
		{anchor: regexp.MustCompile(`(?i)\bcode\s*(?:banque|bq)\b`), value: fiveDigits},
		{anchor: regexp.MustCompile(`(?i)\bbanque\b`), value: fiveDigits},
	}

	branchCodeRules = []fieldRule{
		{anchor: regexp.MustCompile(`(?i)\bcode\s*guichet\b`), value: fiveDigits},
		{anchor: regexp.MustCompile(`(?i)\bguichet\b`), value: fiveDigits},
	}

	accountNumberRules = []fieldRule{
		{anchor: regexp.MustCompile(`(?i)\bnum(?:ero)?\s*(?:de\s*)?compte\b`), value: accountRun, filter: accountFilter},
		{anchor: regexp.MustCompile(`(?i)n\s*[°º]\s*(?:de\s*)?compte`), value: accountRun, filter: accountFilter},
		{anchor: regexp.MustCompile(`(?i)\bcompte\b`), value: accountRun, filter: accountFilter},
	}

	ribKeyRules = []fieldRule{
		{anchor: regexp.MustCompile(`(?i)\bcle\s*rib\b`), value: twoDigits},
		{anchor: regexp.MustCompile(`(?i)\bcle\b`), value: twoDigits},
	}
)

// IBAN patterns: a compact scan over de-spaced text catches IBANs that
// OCR broke into groups, the label form catches everything else.
var (
	ibanCompactPattern = regexp.MustCompile(`FR\d{2}[A-Z0-9]{23}`)
	ibanLabelPattern   = regexp.MustCompile(`(?i)\bIBAN\b\s*[:\-]?\s*([A-Z0-9 ]{8,50})`)
)

// BIC patterns. The label is OCR-tolerant: periods and spaces may be
// interleaved ("B.I.C", "S W I F T").
var (
	bicLabelPattern = regexp.MustCompile(`(?i)\b(?:b[\s.]*i[\s.]*c|s[\s.]*w[\s.]*i[\s.]*f[\s.]*t)\b`)
	// Structural candidate, word-bounded for raw text scans.
	bicCandidatePattern = regexp.MustCompile(`\b[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?\b`)
	// Unbounded variant for compacted windows where word boundaries are gone.
	bicCompactPattern = regexp.MustCompile(`[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?`)
)

// bicStopWords are French words that pass the structural BIC check but
// never are one (addresses and document boilerplate).
var bicStopWords = map[string]bool{
	"PARIS":    true,
	"FRANCE":   true,
	"BOULOGNE": true,
	"CHIFFRES": true,
}

// Account holder: label form first, civility/company-marker line as
// fallback. Matched on the original text so accented names survive.
var (
	holderAnchorPattern = regexp.MustCompile(
		`(?i)\b(?:titulaire(?:\s*du\s*compte)?|nom\s+du\s+titul(?:aire)?|b[ée]n[ée]ficiaire|au\s*nom\s*de)\b\s*[:\-]?\s*([0-9A-Za-zÀ-ÖØ-öø-ÿ .'\-]+)`)
	holderRejectPattern = regexp.MustCompile(`(?i)\b(?:BIC|IBAN|DOMICILIATION|CODE|BANQUE|GUICHET|COMPTE|RIB|AGENCE)\b`)
	civilityPattern     = regexp.MustCompile(`(?i)\b(?:M\.|MME|MLLE|MONSIEUR|MADAME|SARL|SAS|EURL|SCI|SOCIETE|SOCIÉTÉ|ASSOCIATION)\b`)
)

// Domiciliation block: everything after an address-like anchor until the
// next recognized label.
var (
	domAnchorPattern = regexp.MustCompile(`(?i)\b(?:domiciliation|agence|adresse)\b[:\-\s]*`)
	stopLabelPattern = regexp.MustCompile(`(?i)\b(?:BIC|IBAN|TITULAIRE|COMPTE|CODE\s*BANQUE|CLE\s*RIB|RIB|SWIFT|GUICHET)\b`)
	streetPattern    = regexp.MustCompile(`(?i)\b\d{1,4}\s*,?\s*(?:rue|avenue|av\.|bd|boulevard|place|impasse|allee|quai|cours)\b`)
)
