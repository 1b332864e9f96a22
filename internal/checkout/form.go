package checkout

import (
	"fmt"
	"sync"
)

// Field names a checkout input. Values match the form's JSON names.
type Field string

const (
	FieldName       Field = "name"
	FieldPhone      Field = "phone"
	FieldEmail      Field = "email"
	FieldAddress    Field = "address"
	FieldCity       Field = "city"
	FieldCardNumber Field = "cardNumber"
	FieldCardName   Field = "cardName"
	FieldExpiryDate Field = "expiryDate"
	FieldCVV        Field = "cvv"
)

// Fields lists every field in display order.
var Fields = []Field{
	FieldName, FieldPhone, FieldEmail,
	FieldAddress, FieldCity,
	FieldCardNumber, FieldCardName, FieldExpiryDate, FieldCVV,
}

// ParseField maps a JSON field name to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("checkout: unknown field %q", s)
}

// Form is the state of one checkout attempt: entered values and the current
// per-field error messages. A field without an error is valid.
type Form struct {
	mu     sync.Mutex
	values map[Field]string
	errors map[Field]string
}

func NewForm() *Form {
	f := &Form{
		values: make(map[Field]string, len(Fields)),
		errors: make(map[Field]string),
	}
	for _, field := range Fields {
		f.values[field] = ""
	}
	return f
}

// Set stores value for field and clears that field's error. Card number and
// expiry date are reformatted as they are typed. It returns the stored value.
func (f *Form) Set(field Field, value string) string {
	switch field {
	case FieldCardNumber:
		value = FormatCardNumber(value)
	case FieldExpiryDate:
		value = FormatExpiry(value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	delete(f.errors, field)
	return value
}

// Value returns the stored value for field.
func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values returns a copy of all stored values.
func (f *Form) Values() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyFields(f.values)
}

// Errors returns a copy of the current error messages.
func (f *Form) Errors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyFields(f.errors)
}

// Validate checks every field, replaces the form's errors with the result
// and reports whether the form is valid.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors = Validate(f.values)
	return len(f.errors) == 0
}

func copyFields(m map[Field]string) map[Field]string {
	out := make(map[Field]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
