// internal/codec/json.go
package codec

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/solatis/hxwire/internal/types"
)

/*
 * JSON payloads.
 *
 * Structured headers (locations, trigger details) are serialized to compact
 * JSON and then passed through EncodeText, because string literals inside
 * the JSON may hold characters outside the pass-through set. HTML escaping
 * is disabled so '<', '>' and '&' stay readable on the wire.
 *
 * Decoding runs the same steps in reverse. Parser offsets refer to the
 * unescaped JSON text, not to the raw header bytes.
 */

// MarshalJSON returns the canonical compact JSON text of v, unescaped.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, &JSONError{Err: types.ErrUnserializable, Cause: err}
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeJSON serializes v and escapes the result into header-safe bytes.
func EncodeJSON(v any) ([]byte, error) {
	text, err := MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	return EncodeText(string(text)), nil
}

// DecodeJSON unescapes raw and parses the JSON text into v.
// Escaping failures are returned as *EncodingError, parse failures as
// *JSONError carrying the parser offset.
func DecodeJSON(raw []byte, v any) error {
	text, err := DecodeText(raw)
	if err != nil {
		return err
	}
	return UnmarshalJSON([]byte(text), v)
}

// UnmarshalJSON parses already unescaped JSON text into v.
func UnmarshalJSON(text []byte, v any) error {
	if err := json.Unmarshal(text, v); err != nil {
		return malformed(err)
	}
	return nil
}

// CompactJSON validates JSON text and strips insignificant whitespace.
func CompactJSON(text []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, text); err != nil {
		return nil, malformed(err)
	}
	return buf.Bytes(), nil
}

func malformed(err error) *JSONError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &JSONError{Err: types.ErrMalformedJSON, Offset: syntaxErr.Offset, Cause: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &JSONError{Err: types.ErrMalformedJSON, Offset: typeErr.Offset, Cause: err}
	}
	return &JSONError{Err: types.ErrMalformedJSON, Cause: err}
}
