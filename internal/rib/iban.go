package rib

import (
	"fmt"
	"strings"
)

// frenchIBANLength is the length of a compact French IBAN:
// "FR" + 2 check digits + 23-character BBAN.
const frenchIBANLength = 27

// Compact strips everything that is not a letter or digit and uppercases
// the rest. Both spaced display IBANs and OCR debris reduce to the
// canonical form this way.
func Compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		}
	}
	return b.String()
}

// ValidateIBAN reports whether a compact IBAN passes the ISO 7064 mod-97
// check: move the first four characters to the end, substitute letters
// with their alphabetic position, and the resulting number must be
// congruent to 1 modulo 97.
func ValidateIBAN(iban string) bool {
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	if !isUpperAlpha(iban[0]) || !isUpperAlpha(iban[1]) ||
		!isDigit(iban[2]) || !isDigit(iban[3]) {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	digits, ok := substituteLetters(rearranged)
	if !ok {
		return false
	}
	r, ok := mod97(digits)
	return ok && r == 1
}

// CheckDigits computes the two IBAN check digits for a French BBAN:
// form BBAN + "FR00", substitute letters, and take 98 - (value mod 97).
func CheckDigits(bban string) (string, error) {
	digits, ok := substituteLetters(bban + "FR00")
	if !ok {
		return "", fmt.Errorf("BBAN %q contains non-alphanumeric characters", bban)
	}
	r, ok := mod97(digits)
	if !ok {
		return "", fmt.Errorf("empty BBAN")
	}
	return fmt.Sprintf("%02d", 98-r), nil
}

// BuildFrenchIBAN assembles a canonical IBAN from the four RIB components.
// The account number is left-padded with zeros to its fixed 11-character
// BBAN slot. The caller is responsible for having validated the RIB key:
// this function only derives, it never checks.
func BuildFrenchIBAN(bankCode, branchCode, accountNumber, key string) (string, error) {
	if len(bankCode) != 5 || len(branchCode) != 5 || len(key) != 2 {
		return "", fmt.Errorf("malformed RIB components %q/%q/%q", bankCode, branchCode, key)
	}
	if accountNumber == "" || len(accountNumber) > accountWidth {
		return "", fmt.Errorf("account number must be 1-%d characters, got %q", accountWidth, accountNumber)
	}
	padded := strings.Repeat("0", accountWidth-len(accountNumber)) + strings.ToUpper(accountNumber)
	bban := bankCode + branchCode + padded + key
	check, err := CheckDigits(bban)
	if err != nil {
		return "", err
	}
	iban := "FR" + check + bban
	if !ValidateIBAN(iban) {
		return "", fmt.Errorf("derived IBAN %q failed its own checksum", iban)
	}
	return iban, nil
}

// SplitFrenchIBAN decomposes a compact, checksum-valid French IBAN into
// bank code, branch code, account number and RIB key.
func SplitFrenchIBAN(iban string) (bankCode, branchCode, accountNumber, key string, err error) {
	if len(iban) != frenchIBANLength || !strings.HasPrefix(iban, "FR") {
		return "", "", "", "", fmt.Errorf("not a French IBAN: %q", iban)
	}
	if !ValidateIBAN(iban) {
		return "", "", "", "", fmt.Errorf("IBAN %q fails the mod-97 check", iban)
	}
	bban := iban[4:]
	return bban[:5], bban[5:10], bban[10:21], bban[21:23], nil
}

// FormatIBAN renders an IBAN in display form: groups of four characters
// separated by single spaces, starting from the first character.
func FormatIBAN(iban string) string {
	compact := Compact(iban)
	var b strings.Builder
	for i, c := range []byte(compact) {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isUpperAlpha(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
