package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

// IBANPrefix is the country-style prefix of every generated account identifier.
const IBANPrefix = "LT"

const ibanGroupDigits = 9

var (
	ibanPattern  = regexp.MustCompile(`^[A-Z]{2}[0-9]{18}$`)
	ibanGroupMax = big.NewInt(999_999_999)
)

// GenerateIBAN returns IBANPrefix followed by two independently drawn, zero padded
// 9 digit groups. Uniqueness is not checked here.
func GenerateIBAN() (string, error) {
	first, err := rand.Int(rand.Reader, ibanGroupMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate account identifier: %w", err)
	}
	second, err := rand.Int(rand.Reader, ibanGroupMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate account identifier: %w", err)
	}
	return fmt.Sprintf("%s%0*d%0*d", IBANPrefix, ibanGroupDigits, first.Int64(), ibanGroupDigits, second.Int64()), nil
}

// IsValidIBAN reports whether s has the shape of an account identifier.
func IsValidIBAN(s string) bool {
	return ibanPattern.MatchString(s)
}
