package validator

import (
	"sort"
	"strings"
)

// FieldErrors carries client-side validation failures keyed by field name.
// It satisfies error so services can return it directly; the display string
// joins messages in stable field order.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, f[field])
	}
	return strings.Join(lines, "\n")
}

// Check validates a struct and returns FieldErrors, or nil when valid.
func Check(s interface{}) error {
	if errs := Validate(s); len(errs) > 0 {
		return FieldErrors(errs)
	}
	return nil
}
