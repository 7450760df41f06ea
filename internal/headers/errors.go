package headers

import "fmt"

// FieldError wraps a codec failure with the canonical name of the header
// that caused it. Decoding stops at the first FieldError; no partial bundle
// is returned.
type FieldError struct {
	Name string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("header %s: %v", e.Name, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
