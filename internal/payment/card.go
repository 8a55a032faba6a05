// Package payment validates payment-card data before the booking may advance.
// The checks are a gate only: card data is never charged and never persisted.
package payment

import (
	"strings"
	"time"

	"forfly/internal/apperrors"
)

// Card holds the raw wizard input for the payment step.
type Card struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
}

// Validate runs all three independent checks. All must pass.
func (c Card) Validate(now time.Time) error {
	if err := ValidateNumber(c.Number); err != nil {
		return err
	}
	if err := ValidateExpiry(c.ExpiryMonth, c.ExpiryYear, now); err != nil {
		return err
	}
	return ValidateCVC(c.CVC)
}

// ValidateNumber checks that the card number (spaces stripped) is 13-19
// decimal digits and passes the Luhn checksum.
func ValidateNumber(number string) error {
	digits := strings.ReplaceAll(number, " ", "")
	if !isDigits(digits) || len(digits) < 13 || len(digits) > 19 {
		return apperrors.NewValidation("card_number", apperrors.CodeInvalidFormat,
			"card number must be 13 to 19 digits")
	}
	if !luhn(digits) {
		return apperrors.NewValidation("card_number", apperrors.CodeChecksumFailed,
			"card number failed the checksum")
	}
	return nil
}

// ValidateExpiry checks the MM/YYYY format and that the card has not expired.
// A card expiring in the current month is still valid through that month.
func ValidateExpiry(month, year string, now time.Time) error {
	if len(month) != 2 || !isDigits(month) || len(year) != 4 || !isDigits(year) {
		return apperrors.NewValidation("expiry", apperrors.CodeInvalidFormat,
			"expiry must be a two-digit month and four-digit year")
	}
	m := int(month[0]-'0')*10 + int(month[1]-'0')
	if m < 1 || m > 12 {
		return apperrors.NewValidation("expiry", apperrors.CodeInvalidFormat,
			"expiry month must be between 01 and 12")
	}
	y := 0
	for _, r := range year {
		y = y*10 + int(r-'0')
	}
	if y < now.Year() || (y == now.Year() && m < int(now.Month())) {
		return apperrors.NewValidation("expiry", apperrors.CodeExpired, "card has expired")
	}
	return nil
}

// ValidateCVC checks that the CVC is 3 or 4 decimal digits.
func ValidateCVC(cvc string) error {
	if !isDigits(cvc) || len(cvc) < 3 || len(cvc) > 4 {
		return apperrors.NewValidation("cvc", apperrors.CodeInvalidFormat,
			"CVC must be 3 or 4 digits")
	}
	return nil
}

// FormatNumber regroups card digits into blocks of four for display, capping
// entry at 16 digits. Cosmetic only; validation always strips the spaces.
func FormatNumber(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var b strings.Builder
	for i := 0; i < len(digits); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// luhn applies the Luhn checksum: from the rightmost digit, double every
// second digit, subtract 9 from doubled values over 9, and require the total
// to be divisible by 10.
func luhn(digits string) bool {
	total := 0
	for i := 0; i < len(digits); i++ {
		n := int(digits[len(digits)-1-i] - '0')
		if i%2 == 1 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		total += n
	}
	return total%10 == 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
