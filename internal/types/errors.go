package types

import "errors"

// Sentinel errors for header encoding and decoding.
// Structured errors in the codec and headers packages unwrap to these, so
// callers can match with errors.Is regardless of the carried context.
var (
	// ErrUnknownToken indicates a token header value outside its closed set.
	ErrUnknownToken = errors.New("unknown token")

	// ErrInvalidEscape indicates a truncated or non-hex percent escape.
	ErrInvalidEscape = errors.New("invalid escape sequence")

	// ErrInvalidUTF8 indicates unescaped header bytes that are not UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrUnserializable indicates a value the JSON encoder cannot represent.
	ErrUnserializable = errors.New("value cannot be serialized to json")

	// ErrMalformedJSON indicates a JSON header payload that does not parse.
	ErrMalformedJSON = errors.New("malformed json")

	// ErrMultipleValues indicates a header that appears more than once.
	ErrMultipleValues = errors.New("header has multiple values")

	// ErrMissingPath indicates a JSON location without a path member.
	ErrMissingPath = errors.New("location has no path")

	// ErrInvalidEventName indicates an event name the list form cannot carry.
	ErrInvalidEventName = errors.New("invalid trigger event name")

	// ErrTriggerNotObject indicates trigger details that are not a JSON object.
	ErrTriggerNotObject = errors.New("trigger details must be a json object")
)
