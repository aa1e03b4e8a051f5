package shared

// FieldError is a validation failure scoped to a single input field.
// Callers render it as "<field>: <message>" when reporting mutation errors.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String formats the error in the canonical "<field>: <message>" form.
func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// FormatFieldErrors renders a list of field errors in check order.
func FormatFieldErrors(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.String()
	}
	return out
}
