package parser

import (
	"strings"
	"testing"

	"github.com/insightdelivered/rib-extractor/internal/models"
)

const sampleRIB = `RELEVE D'IDENTITE BANCAIRE
Titulaire du compte : M. JEAN DUPONT
Domiciliation :
AGENCE DE PARIS OPERA
12 RUE DE LA PAIX
75002 PARIS
Code Banque : 30001
Code Guichet : 00794
N° de compte : 12345678901
Clé RIB : 85
IBAN : FR76 3000 1007 9412 3456 7890 185
BIC : BNPAFRPP
`

func TestExtract_FullDocument(t *testing.T) {
	rec := Extract(sampleRIB)

	checks := []struct {
		name  string
		field models.Field
		want  string
	}{
		{"bank code", rec.BankCode, "30001"},
		{"branch code", rec.BranchCode, "00794"},
		{"account number", rec.AccountNumber, "12345678901"},
		{"rib key", rec.RIBKey, "85"},
		{"iban", rec.IBAN, "FR7630001007941234567890185"},
		{"bic", rec.BIC, "BNPAFRPP"},
		{"holder", rec.AccountHolder, "M. JEAN DUPONT"},
	}
	for _, c := range checks {
		if c.field.Status != models.StatusExtracted {
			t.Errorf("%s: status = %q, want extracted", c.name, c.field.Status)
		}
		if c.field.Value != c.want {
			t.Errorf("%s: value = %q, want %q", c.name, c.field.Value, c.want)
		}
	}

	wantDom := []string{"AGENCE DE PARIS OPERA", "12 RUE DE LA PAIX", "75002 PARIS"}
	if rec.Domiciliation.Status != models.StatusExtracted {
		t.Errorf("domiciliation status = %q, want extracted", rec.Domiciliation.Status)
	}
	if len(rec.Domiciliation.Lines) != len(wantDom) {
		t.Fatalf("domiciliation = %q, want %q", rec.Domiciliation.Lines, wantDom)
	}
	for i := range wantDom {
		if rec.Domiciliation.Lines[i] != wantDom[i] {
			t.Errorf("domiciliation[%d] = %q, want %q", i, rec.Domiciliation.Lines[i], wantDom[i])
		}
	}
}

func TestExtract_SpacedIBANOnly(t *testing.T) {
	rec := Extract("IBAN: FR76 3000 1007 9412 3456 7890 185")

	if rec.IBAN.Status != models.StatusExtracted {
		t.Fatalf("iban status = %q, want extracted", rec.IBAN.Status)
	}
	if rec.IBAN.Value != "FR7630001007941234567890185" {
		t.Errorf("iban = %q, want spaces stripped", rec.IBAN.Value)
	}
	for name, f := range map[string]models.Field{
		"bank code": rec.BankCode, "branch code": rec.BranchCode,
		"account": rec.AccountNumber, "key": rec.RIBKey, "bic": rec.BIC,
	} {
		if f.Status != models.StatusAbsent {
			t.Errorf("%s: status = %q, want absent", name, f.Status)
		}
	}
}

func TestExtract_NoAnchors(t *testing.T) {
	rec := Extract("lorem ipsum dolor sit amet consectetur adipiscing elit")

	fields := map[string]models.Field{
		"holder": rec.AccountHolder, "bank": rec.BankCode, "branch": rec.BranchCode,
		"account": rec.AccountNumber, "key": rec.RIBKey, "iban": rec.IBAN, "bic": rec.BIC,
	}
	for name, f := range fields {
		if f.Status != models.StatusAbsent {
			t.Errorf("%s: status = %q (value %q), want absent", name, f.Status, f.Value)
		}
	}
	if rec.Domiciliation.Status != models.StatusAbsent {
		t.Errorf("domiciliation status = %q, want absent", rec.Domiciliation.Status)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\n", "\r\n \t"} {
		rec := Extract(input)
		if rec.BankCode.Status != models.StatusAbsent || rec.IBAN.Status != models.StatusAbsent {
			t.Errorf("Extract(%q): expected all-absent record", input)
		}
	}
}

func TestExtract_MissingAccents(t *testing.T) {
	// OCR frequently drops accents; "Cle" must anchor as well as "Clé".
	rec := Extract("Cle RIB : 85\nCode Banque : 30001")
	if rec.RIBKey.Value != "85" {
		t.Errorf("rib key = %q, want 85", rec.RIBKey.Value)
	}
	if rec.BankCode.Value != "30001" {
		t.Errorf("bank code = %q, want 30001", rec.BankCode.Value)
	}
}

func TestExtract_CorruptedIBANStillExtracted(t *testing.T) {
	// A shaped-but-invalid IBAN is extracted; judging it is the
	// validator's job, replacing it the reconstructor's.
	rec := Extract("IBAN : FR76 3000 1057 9412 3456 7890 185")
	if rec.IBAN.Status != models.StatusExtracted {
		t.Fatalf("iban status = %q, want extracted", rec.IBAN.Status)
	}
	if rec.IBAN.Value != "FR7630001057941234567890185" {
		t.Errorf("iban = %q", rec.IBAN.Value)
	}
}

func TestExtract_BICVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain label", "BIC : BNPAFRPP", "BNPAFRPP"},
		{"swift label", "Code SWIFT : SOGEFRPP", "SOGEFRPP"},
		{"dotted label", "B.I.C. AGRIFRPP882", "AGRIFRPP882"},
		{"value on following line", "BIC / SWIFT\nCCBPFRPPNAN", "CCBPFRPPNAN"},
		{"ocr-split value", "BIC : BOUS FRPP XXX", "BOUSFRPPXXX"},
		{"address word rejected", "BIC :\nBOULOGNE", ""},
		{"no label no value", "aucun code ici", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Extract(tt.text)
			if rec.BIC.Value != tt.want {
				t.Errorf("bic = %q, want %q", rec.BIC.Value, tt.want)
			}
			if tt.want == "" && rec.BIC.Status != models.StatusAbsent {
				t.Errorf("bic status = %q, want absent", rec.BIC.Status)
			}
		})
	}
}

func TestExtract_HolderFallbackCivility(t *testing.T) {
	rec := Extract("RELEVE BANCAIRE\nMME CLAIRE MARTIN\nIBAN : FR76 3000 1007 9412 3456 7890 185")
	if rec.AccountHolder.Value != "MME CLAIRE MARTIN" {
		t.Errorf("holder = %q, want civility line", rec.AccountHolder.Value)
	}
}

func TestExtract_DomiciliationInlineAndBlock(t *testing.T) {
	text := "Domiciliation : CREDIT AGRICOLE DE LYON\n3 PLACE BELLECOUR\n69002 LYON\nIBAN : FR76 3000 1007 9412 3456 7890 185"
	rec := Extract(text)

	want := []string{"CREDIT AGRICOLE DE LYON", "3 PLACE BELLECOUR", "69002 LYON"}
	if len(rec.Domiciliation.Lines) != len(want) {
		t.Fatalf("domiciliation = %q, want %q", rec.Domiciliation.Lines, want)
	}
	for i := range want {
		if rec.Domiciliation.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, rec.Domiciliation.Lines[i], want[i])
		}
	}
}

func TestExtract_DomiciliationStreetFallback(t *testing.T) {
	rec := Extract("BANQUE DU NORD\n14 rue des Lilas 59000 Lille\nIBAN : FR76 3000 1007 9412 3456 7890 185")
	if len(rec.Domiciliation.Lines) != 1 || !strings.Contains(rec.Domiciliation.Lines[0], "rue des Lilas") {
		t.Errorf("domiciliation = %q, want the street line", rec.Domiciliation.Lines)
	}
}

func TestExtract_FirstCandidateAfterLabelWins(t *testing.T) {
	// Two five-digit runs after the label: the first one is taken.
	rec := Extract("Code Banque : 30001 30002")
	if rec.BankCode.Value != "30001" {
		t.Errorf("bank code = %q, want first candidate 30001", rec.BankCode.Value)
	}
}
