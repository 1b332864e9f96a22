package checkout

import (
	"testing"
)

func validValues() map[Field]string {
	return map[Field]string{
		FieldName:       "Mona Said",
		FieldPhone:      "+20 (123) 456-7890",
		FieldEmail:      "mona@example.com",
		FieldAddress:    "12 Tahrir Street",
		FieldCity:       "Cairo",
		FieldCardNumber: "4242 4242 4242 4242",
		FieldCardName:   "Mona Said",
		FieldExpiryDate: "09/26",
		FieldCVV:        "123",
	}
}

func TestValidate_AllValid(t *testing.T) {
	if errs := Validate(validValues()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_ReportsEveryFieldAtOnce(t *testing.T) {
	errs := Validate(map[Field]string{})
	if len(errs) != len(Fields) {
		t.Fatalf("expected %d errors, got %d: %v", len(Fields), len(errs), errs)
	}
	want := map[Field]string{
		FieldName:       "Name is required",
		FieldPhone:      "Phone number is required",
		FieldEmail:      "Email is required",
		FieldAddress:    "Address is required",
		FieldCity:       "City is required",
		FieldCardNumber: "Card number is required",
		FieldCardName:   "Cardholder name is required",
		FieldExpiryDate: "Expiry date is required",
		FieldCVV:        "CVV is required",
	}
	for f, msg := range want {
		if errs[f] != msg {
			t.Errorf("%s: expected %q, got %q", f, msg, errs[f])
		}
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
		want  string
	}{
		{"blank name", FieldName, "   ", "Name is required"},
		{"phone digits and dash", FieldPhone, "555-1234", ""},
		{"phone letters", FieldPhone, "abc", "Please enter a valid phone number"},
		{"phone blank", FieldPhone, " ", "Phone number is required"},
		{"email ok", FieldEmail, "a@b.co", ""},
		{"email no tld", FieldEmail, "a@b", "Please enter a valid email address"},
		{"email with space", FieldEmail, "a b@c.de", "Please enter a valid email address"},
		{"blank city", FieldCity, "", "City is required"},
		{"card 13 digits", FieldCardNumber, "4222222222222", ""},
		{"card 19 digits spaced", FieldCardNumber, "4242 4242 4242 4242 424", ""},
		{"card 12 digits", FieldCardNumber, "4242 4242 4242", "Please enter a valid card number"},
		{"card 20 digits", FieldCardNumber, "42424242424242424242", "Please enter a valid card number"},
		{"card letters", FieldCardNumber, "4242 abcd 4242 4242", "Please enter a valid card number"},
		{"expiry ok", FieldExpiryDate, "09/26", ""},
		{"expiry month 13", FieldExpiryDate, "13/25", "Please enter a valid expiry date (MM/YY)"},
		{"expiry month 00", FieldExpiryDate, "00/25", "Please enter a valid expiry date (MM/YY)"},
		{"expiry no slash", FieldExpiryDate, "0926", "Please enter a valid expiry date (MM/YY)"},
		{"cvv 3", FieldCVV, "123", ""},
		{"cvv 4", FieldCVV, "1234", ""},
		{"cvv 2", FieldCVV, "12", "Please enter a valid CVV"},
		{"cvv letters", FieldCVV, "12a", "Please enter a valid CVV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			values[tt.field] = tt.value

			errs := Validate(values)
			if got := errs[tt.field]; got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if len(errs) > 1 {
				t.Errorf("other fields must stay valid, got %v", errs)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("cardNumber")
	if err != nil || f != FieldCardNumber {
		t.Errorf("expected cardNumber, got %q, %v", f, err)
	}
	if _, err := ParseField("ssn"); err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestForm_SetClearsFieldErrorOnly(t *testing.T) {
	form := NewForm()
	if form.Validate() {
		t.Fatal("empty form must be invalid")
	}

	form.Set(FieldName, "M")

	errs := form.Errors()
	if _, ok := errs[FieldName]; ok {
		t.Error("editing a field must clear its error")
	}
	if errs[FieldEmail] != "Email is required" {
		t.Errorf("other errors must remain, got %v", errs)
	}
}

func TestForm_SetFormatsAsTyped(t *testing.T) {
	form := NewForm()

	if got := form.Set(FieldCardNumber, "42424242424242"); got != "4242 4242 4242 42" {
		t.Errorf("unexpected card number %q", got)
	}
	if got := form.Set(FieldExpiryDate, "0926"); got != "09/26" {
		t.Errorf("unexpected expiry %q", got)
	}
	if got := form.Value(FieldExpiryDate); got != "09/26" {
		t.Errorf("expected stored 09/26, got %q", got)
	}
}

func TestForm_FailedValidationKeepsValues(t *testing.T) {
	form := NewForm()
	for f, v := range validValues() {
		form.Set(f, v)
	}
	form.Set(FieldCVV, "1")

	if form.Validate() {
		t.Fatal("expected invalid form")
	}
	if got := form.Value(FieldEmail); got != "mona@example.com" {
		t.Errorf("values must be retained, got %q", got)
	}
	if got := form.Errors(); len(got) != 1 || got[FieldCVV] == "" {
		t.Errorf("expected only a cvv error, got %v", got)
	}
}
