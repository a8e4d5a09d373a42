// Package rib implements the checksum algorithms behind French domestic
// bank account identifiers: the 2-digit RIB key, the ISO 7064 mod-97
// IBAN check, and the SWIFT/BIC format rule.
package rib

import (
	"fmt"
	"strconv"
)

// accountWidth is the fixed width of the account number slot inside a
// French BBAN.
const accountWidth = 11

// substituteLetters maps account number letters to their two-digit
// alphabetic position (A=10 ... Z=35), keeping digits as they are.
// Returns false if the input contains anything else.
func substituteLetters(s string) (string, bool) {
	buf := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			buf = append(buf, c)
		case c >= 'A' && c <= 'Z':
			n := 10 + int(c-'A')
			buf = append(buf, byte('0'+n/10), byte('0'+n%10))
		case c >= 'a' && c <= 'z':
			n := 10 + int(c-'a')
			buf = append(buf, byte('0'+n/10), byte('0'+n%10))
		default:
			return "", false
		}
	}
	return string(buf), true
}

// mod97 computes the remainder of an arbitrarily long decimal string
// modulo 97 by streaming digits, so account numbers longer than an int64
// never overflow.
func mod97(digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}
	r := 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		r = (r*10 + int(c-'0')) % 97
	}
	return r, true
}

// ComputeKey returns the 2-digit RIB key for a bank code, branch code and
// account number, per the official weighted formula:
//
//	key = 97 - ((89*bank + 15*branch + 3*account) mod 97)
//
// with account letters substituted A=10 ... Z=35 before the multiplication.
func ComputeKey(bankCode, branchCode, accountNumber string) (string, error) {
	bank, err := strconv.Atoi(bankCode)
	if err != nil || len(bankCode) != 5 {
		return "", fmt.Errorf("bank code must be 5 digits, got %q", bankCode)
	}
	branch, err := strconv.Atoi(branchCode)
	if err != nil || len(branchCode) != 5 {
		return "", fmt.Errorf("branch code must be 5 digits, got %q", branchCode)
	}
	if accountNumber == "" || len(accountNumber) > accountWidth {
		return "", fmt.Errorf("account number must be 1-%d characters, got %q", accountWidth, accountNumber)
	}
	digits, ok := substituteLetters(accountNumber)
	if !ok {
		return "", fmt.Errorf("account number %q contains non-alphanumeric characters", accountNumber)
	}
	acc, ok := mod97(digits)
	if !ok {
		return "", fmt.Errorf("account number %q is empty after substitution", accountNumber)
	}
	key := 97 - (89*bank+15*branch+3*acc)%97
	return fmt.Sprintf("%02d", key), nil
}

// ValidateKey reports whether the given RIB key is the correct checksum
// for the three preceding fields.
func ValidateKey(bankCode, branchCode, accountNumber, key string) bool {
	if len(key) != 2 {
		return false
	}
	want, err := ComputeKey(bankCode, branchCode, accountNumber)
	if err != nil {
		return false
	}
	return key == want
}
