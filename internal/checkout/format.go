package checkout

import "strings"

// digitsOnly strips everything but digits, capped at max characters.
func digitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == max {
			break
		}
	}
	return b.String()
}

// FormatCardNumber reformats a card number as typed: digits only, grouped in
// fours, at most 16 digits.
func FormatCardNumber(s string) string {
	digits := digitsOnly(s, 16)
	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatExpiry reformats an expiry as typed: digits only, split as MM/YY.
func FormatExpiry(s string) string {
	digits := digitsOnly(s, 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}
