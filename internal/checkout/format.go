package checkout

import "strings"

const (
	maxCardDigits   = 16
	cardGroupSize   = 4
	maxExpiryDigits = 4
)

// FormatCardNumber keeps the digits of v, at most 16, and groups them in
// blocks of four: "4242424242424242" becomes "4242 4242 4242 4242".
func FormatCardNumber(v string) string {
	digits := onlyDigits(v)
	if len(digits) > maxCardDigits {
		digits = digits[:maxCardDigits]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i += cardGroupSize {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := min(i+cardGroupSize, len(digits))
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// FormatExpiry keeps the digits of v and inserts the "/" separator once the
// month is complete: "0926" becomes "09/26", "1" stays "1".
func FormatExpiry(v string) string {
	digits := onlyDigits(v)
	if len(digits) < 2 {
		return digits
	}
	if len(digits) > maxExpiryDigits {
		digits = digits[:maxExpiryDigits]
	}
	return digits[:2] + "/" + digits[2:]
}

func onlyDigits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
