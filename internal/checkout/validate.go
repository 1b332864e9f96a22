package checkout

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	phonePattern  = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cardPattern   = regexp.MustCompile(`^[0-9]{13,19}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// rule checks one field. required is the message for a blank value; when the
// value is present, format (if set) must match or invalid is reported.
type rule struct {
	required string
	format   func(string) bool
	invalid  string
}

var rules = map[Field]rule{
	FieldName:    {required: "Name is required"},
	FieldAddress: {required: "Address is required"},
	FieldCity:    {required: "City is required"},
	FieldCardName: {
		required: "Cardholder name is required",
	},
	FieldPhone: {
		required: "Phone number is required",
		format:   phonePattern.MatchString,
		invalid:  "Please enter a valid phone number",
	},
	FieldEmail: {
		required: "Email is required",
		format:   emailPattern.MatchString,
		invalid:  "Please enter a valid email address",
	},
	FieldCardNumber: {
		required: "Card number is required",
		format:   func(v string) bool { return cardPattern.MatchString(stripSpaces(v)) },
		invalid:  "Please enter a valid card number",
	},
	FieldExpiryDate: {
		required: "Expiry date is required",
		format:   expiryPattern.MatchString,
		invalid:  "Please enter a valid expiry date (MM/YY)",
	},
	FieldCVV: {
		required: "CVV is required",
		format:   cvvPattern.MatchString,
		invalid:  "Please enter a valid CVV",
	},
}

// Validate checks every field and returns all failures at once, keyed by
// field. An empty map means the values are valid.
func Validate(values map[Field]string) map[Field]string {
	errs := make(map[Field]string)
	for _, field := range Fields {
		if msg := validateField(field, values[field]); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func validateField(field Field, value string) string {
	r, ok := rules[field]
	if !ok {
		return ""
	}
	if strings.TrimSpace(value) == "" {
		return r.required
	}
	if r.format != nil && !r.format(value) {
		return r.invalid
	}
	return ""
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
