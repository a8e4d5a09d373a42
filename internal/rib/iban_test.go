package rib

import "testing"

func TestValidateIBAN(t *testing.T) {
	tests := []struct {
		name string
		iban string
		want bool
	}{
		{"canonical French IBAN", "FR7630001007941234567890185", true},
		{"letter-bearing account", "FR9820041010050500013M02646", true},
		{"one digit corrupted", "FR7630001057941234567890185", false},
		{"wrong check digits", "FR7730001007941234567890185", false},
		{"too short", "FR761234", false},
		{"lowercase country", "fr7630001007941234567890185", false},
		{"digits where country expected", "1276300010079412345678901", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateIBAN(tt.iban); got != tt.want {
				t.Errorf("ValidateIBAN(%q) = %v, want %v", tt.iban, got, tt.want)
			}
		})
	}
}

func TestBuildFrenchIBAN(t *testing.T) {
	tests := []struct {
		name    string
		bank    string
		branch  string
		account string
		key     string
		want    string
		wantErr bool
	}{
		{
			name: "canonical components",
			bank: "30001", branch: "00794", account: "12345678901", key: "85",
			want: "FR7630001007941234567890185",
		},
		{
			name: "letter account",
			bank: "20041", branch: "01005", account: "0500013M026", key: "46",
			want: "FR9820041010050500013M02646",
		},
		{
			name: "short account is left-padded",
			bank: "30001", branch: "00794", account: "1234567", key: "85",
			// padded BBAN differs from the canonical one, but the result
			// must still be 27 characters with "00001234567" inside
			wantErr: false,
		},
		{
			name: "bad bank width",
			bank: "301", branch: "00794", account: "12345678901", key: "85",
			wantErr: true,
		},
		{
			name: "empty account",
			bank: "30001", branch: "00794", account: "", key: "85",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildFrenchIBAN(tt.bank, tt.branch, tt.account, tt.key)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != frenchIBANLength {
				t.Errorf("IBAN %q has length %d, want %d", got, len(got), frenchIBANLength)
			}
			if !ValidateIBAN(got) {
				t.Errorf("derived IBAN %q fails the mod-97 check", got)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Round-trip property: for components whose RIB key validates, the derived
// IBAN passes the mod-97 check and splits back into the same components.
func TestBuildFrenchIBAN_RoundTrip(t *testing.T) {
	components := []struct {
		bank, branch, account string
	}{
		{"30001", "00794", "12345678901"},
		{"20041", "01005", "0500013M026"},
		{"30002", "00550", "0000157841Z"},
		{"10278", "06041", "00020033701"},
	}

	for _, c := range components {
		key, err := ComputeKey(c.bank, c.branch, c.account)
		if err != nil {
			t.Fatalf("ComputeKey(%v): %v", c, err)
		}
		if !ValidateKey(c.bank, c.branch, c.account, key) {
			t.Fatalf("computed key %q does not validate for %v", key, c)
		}

		iban, err := BuildFrenchIBAN(c.bank, c.branch, c.account, key)
		if err != nil {
			t.Fatalf("BuildFrenchIBAN(%v): %v", c, err)
		}
		if !ValidateIBAN(iban) {
			t.Errorf("IBAN %q derived from %v fails validation", iban, c)
		}

		bank, branch, account, gotKey, err := SplitFrenchIBAN(iban)
		if err != nil {
			t.Fatalf("SplitFrenchIBAN(%q): %v", iban, err)
		}
		if bank != c.bank || branch != c.branch || gotKey != key {
			t.Errorf("split of %q = %q/%q/%q, want %q/%q/%q",
				iban, bank, branch, gotKey, c.bank, c.branch, key)
		}
		if account != c.account {
			t.Errorf("split account = %q, want %q", account, c.account)
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"FR76 3000 1007 9412 3456 7890 185", "FR7630001007941234567890185"},
		{"fr76-3000.1007", "FR7630001007"},
		{"  ", ""},
		{"Clé RIB : 85", "CLRIB85"},
	}

	for _, tt := range tests {
		if got := Compact(tt.input); got != tt.want {
			t.Errorf("Compact(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatIBAN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"FR7630001007941234567890185", "FR76 3000 1007 9412 3456 7890 185"},
		{"FR76 3000 1007 9412 3456 7890 185", "FR76 3000 1007 9412 3456 7890 185"},
		{"", ""},
		{"FR76", "FR76"},
	}

	for _, tt := range tests {
		if got := FormatIBAN(tt.input); got != tt.want {
			t.Errorf("FormatIBAN(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitFrenchIBAN_Rejects(t *testing.T) {
	if _, _, _, _, err := SplitFrenchIBAN("DE44500105175407324931"); err == nil {
		t.Error("expected error for non-French IBAN")
	}
	if _, _, _, _, err := SplitFrenchIBAN("FR7630001057941234567890185"); err == nil {
		t.Error("expected error for checksum-invalid IBAN")
	}
}
