package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// CardNumberLength is the PAN length issued for every debit card.
const CardNumberLength = 16

// GenerateCardNumber returns a Luhn-valid card number of the given length
// that starts with prefix.
func GenerateCardNumber(prefix string, length int) (string, error) {
	if length < len(prefix)+1 || length > 19 {
		return "", fmt.Errorf("invalid card number length: %d", length)
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("card prefix must be numeric: %q", prefix)
		}
	}

	var builder strings.Builder
	builder.WriteString(prefix)
	for builder.Len() < length-1 {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		builder.WriteByte(byte('0' + n.Int64()))
	}

	partial := builder.String()
	return partial + string(luhnCheckDigit(partial)), nil
}

// LuhnValid reports whether number is all digits and passes the Luhn check.
func LuhnValid(number string) bool {
	if len(number) < 2 {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return luhnCheckDigit(number[:len(number)-1]) == number[len(number)-1]
}

func luhnCheckDigit(partial string) byte {
	sum := 0
	double := true
	for i := len(partial) - 1; i >= 0; i-- {
		d := int(partial[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return byte('0' + (10-sum%10)%10)
}

// CardExpiration returns the expiration timestamp for a card issued at issuedAt.
func CardExpiration(issuedAt time.Time, validityYears int) time.Time {
	if validityYears < 1 {
		validityYears = 1
	}
	return issuedAt.AddDate(validityYears, 0, 0)
}
