// Package parser locates RIB fields inside noisy OCR or vision-model
// text. Extraction is label-driven: each field has a prioritized list of
// (anchor, value shape) rules, and the first plausible value after a
// label wins. The package never validates checksums; that is the
// pipeline's job.
package parser

import (
	"strings"

	"github.com/insightdelivered/rib-extractor/internal/models"
	"github.com/insightdelivered/rib-extractor/internal/rib"
)

// Extract scans one document's raw text and returns a record with each
// field set to the best single candidate found, or left absent. It is a
// pure function of its input: empty or garbage text yields an all-absent
// record, never an error.
func Extract(text string) models.RibRecord {
	rec := models.NewRecord()

	clean := cleanText(text)
	if strings.TrimSpace(clean) == "" {
		return rec
	}
	folded := foldAccents(clean)

	if v := firstMatch(bankCodeRules, folded); v != "" {
		rec.BankCode = models.Extracted(v)
	}
	if v := firstMatch(branchCodeRules, folded); v != "" {
		rec.BranchCode = models.Extracted(v)
	}
	if v := firstMatch(accountNumberRules, folded); v != "" {
		rec.AccountNumber = models.Extracted(strings.ToUpper(v))
	}
	if v := firstMatch(ribKeyRules, folded); v != "" {
		rec.RIBKey = models.Extracted(v)
	}
	if v := extractIBAN(folded); v != "" {
		rec.IBAN = models.Extracted(v)
	}
	if v := extractBIC(folded); v != "" {
		rec.BIC = models.Extracted(v)
	}
	if v := extractHolder(clean); v != "" {
		rec.AccountHolder = models.Extracted(v)
	}
	if lines := extractDomiciliation(clean); len(lines) > 0 {
		rec.Domiciliation = models.Domiciliation{Lines: lines, Status: models.StatusExtracted}
	}

	return rec
}

// extractIBAN returns the compact IBAN candidate. A checksum-valid
// candidate from the de-spaced scan is preferred; otherwise the first
// shaped candidate is returned and left for the validator to judge.
func extractIBAN(text string) string {
	compact := rib.Compact(text)
	candidates := ibanCompactPattern.FindAllString(compact, -1)
	for _, c := range candidates {
		if rib.ValidateIBAN(c) {
			return c
		}
	}

	for _, m := range ibanLabelPattern.FindAllStringSubmatch(text, -1) {
		cand := rib.Compact(m[1])
		if strings.HasPrefix(cand, "FR") && len(cand) >= 27 {
			return cand[:27]
		}
	}

	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// extractBIC searches a window of lines following a BIC/SWIFT label, the
// compacted window first (OCR splits codes like "BOUS FRPP XXX"), then the
// raw window. The window starts after the label itself: compacting would
// otherwise glue the label letters onto the value. Without any label a
// cautious word-bounded global scan runs.
func extractBIC(text string) string {
	lines := strings.Split(strings.ToUpper(text), "\n")
	for i, line := range lines {
		loc := bicLabelPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		end := i + 6
		if end > len(lines) {
			end = len(lines)
		}
		parts := append([]string{line[loc[1]:]}, lines[i+1:end]...)
		window := strings.Join(parts, "\n")

		if bic := pickBIC(bicCompactPattern.FindAllString(rib.Compact(window), -1)); bic != "" {
			return bic
		}
		if bic := pickBIC(bicCandidatePattern.FindAllString(window, -1)); bic != "" {
			return bic
		}
	}

	return pickBIC(bicCandidatePattern.FindAllString(strings.ToUpper(text), -1))
}

// pickBIC returns the first candidate that survives cleanup, the
// structural check, the stop-word list, and the FR country filter
// (a French RIB carries an FR-countried BIC; address words like
// "BOULOGNE" do not).
func pickBIC(candidates []string) string {
	for _, c := range candidates {
		bic := rib.CleanBIC(c)
		if bic == "" || !rib.ValidateBIC(bic) {
			continue
		}
		if bic[4:6] != "FR" || bicStopWords[bic] {
			continue
		}
		return bic
	}
	return ""
}

// extractHolder finds the account holder name: label form first, then any
// line carrying a civility or company marker.
func extractHolder(text string) string {
	if m := holderAnchorPattern.FindStringSubmatch(text); m != nil {
		val := strings.TrimSpace(m[1])
		if len(val) > 3 && !holderRejectPattern.MatchString(val) {
			return val
		}
	}
	for _, line := range nonEmptyLines(text) {
		if civilityPattern.MatchString(line) {
			return line
		}
	}
	return ""
}

// extractDomiciliation collects the address lines following a
// domiciliation/agence/adresse anchor, in original order, until the next
// recognized label or a line too short to be part of an address. Falls
// back to a single street-looking line when no anchor exists.
func extractDomiciliation(text string) []string {
	lines := nonEmptyLines(text)
	folded := make([]string, len(lines))
	for i, l := range lines {
		folded[i] = foldAccents(l)
	}

	for i, line := range lines {
		// The anchor words carry no accents, so matching the original
		// line keeps offsets usable for the inline remainder.
		loc := domAnchorPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}

		// "ADRESSE SWIFT" is a BIC label, not an address anchor.
		if rest := strings.TrimSpace(line[loc[1]:]); rest != "" && stopLabelPattern.MatchString(foldAccents(rest)) {
			continue
		}

		var block []string
		if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
			block = append(block, rest)
		}
		for j := i + 1; j < len(lines); j++ {
			if stopLabelPattern.MatchString(folded[j]) {
				break
			}
			if len(lines[j]) < 3 {
				break
			}
			block = append(block, lines[j])
		}
		if len(block) > 0 {
			return block
		}
	}

	for i, fl := range folded {
		if streetPattern.MatchString(fl) {
			return []string{lines[i]}
		}
	}
	return nil
}
