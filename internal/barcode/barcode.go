// Package barcode normalizes scanned product codes.
package barcode

import (
	"errors"
	"strings"
)

// MinLength is the shortest accepted code after normalization.
const MinLength = 8

// ErrInvalid is returned for codes that are too short after stripping
// non-digit characters.
var ErrInvalid = errors.New("invalid barcode")

// Normalize strips everything but digits from a scanned code.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	code := b.String()
	if len(code) < MinLength {
		return "", ErrInvalid
	}
	return code, nil
}

// ValidChecksum verifies the GS1 check digit of EAN-8, UPC-A, EAN-13 and
// GTIN-14 codes. Codes of other lengths (UPC-E, Code 39, Code 128) carry no
// GTIN check digit and are accepted.
func ValidChecksum(code string) bool {
	switch len(code) {
	case 8, 12, 13, 14:
	default:
		return true
	}

	sum := 0
	// Weights alternate 3,1,3,... starting from the digit left of the check digit.
	for i := len(code) - 2; i >= 0; i-- {
		d := int(code[i] - '0')
		if d > 9 {
			return false
		}
		if (len(code)-2-i)%2 == 0 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return int(code[len(code)-1]-'0') == check
}
