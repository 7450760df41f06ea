// internal/codec/errors.go
package codec

import (
	"fmt"

	"github.com/solatis/hxwire/internal/types"
)

// UnknownTokenError reports token bytes that match no declared spelling.
// Token holds the original bytes as received.
type UnknownTokenError struct {
	Token []byte
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token %q", e.Token)
}

func (e *UnknownTokenError) Unwrap() error {
	return types.ErrUnknownToken
}

// EncodingError reports a text value whose escaping cannot be reversed.
// Err is types.ErrInvalidEscape or types.ErrInvalidUTF8.
type EncodingError struct {
	Err    error
	Offset int // byte offset in the raw header value
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// JSONError reports a structured payload failure.
// Err is types.ErrUnserializable or types.ErrMalformedJSON; Cause is the
// error returned by encoding/json.
type JSONError struct {
	Err    error
	Offset int64 // parser offset in the unescaped text, malformed input only
	Cause  error
}

func (e *JSONError) Error() string {
	if e.Err == types.ErrMalformedJSON {
		return fmt.Sprintf("%v at offset %d: %v", e.Err, e.Offset, e.Cause)
	}
	return fmt.Sprintf("%v: %v", e.Err, e.Cause)
}

func (e *JSONError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
