// Package types provides definitions shared by the htmx header codec and
// registry.
//
// Nothing here imports beyond the standard library.
package types

// Direction says which side of an exchange a header belongs to.
type Direction int

const (
	DirectionRequest Direction = iota + 1
	DirectionResponse
	DirectionBoth
)

func (d Direction) String() string {
	switch d {
	case DirectionRequest:
		return "request"
	case DirectionResponse:
		return "response"
	case DirectionBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Includes reports whether a header with direction d may be read or written
// when processing headers travelling in direction other.
func (d Direction) Includes(other Direction) bool {
	return d == other || d == DirectionBoth
}

// Shape is the structural category of a header value. It selects the codec
// functions that apply to the header.
type Shape int

const (
	ShapeFlag Shape = iota + 1
	ShapeToken
	ShapeOpaqueText
	ShapeJSONObject
)

func (s Shape) String() string {
	switch s {
	case ShapeFlag:
		return "flag"
	case ShapeToken:
		return "token"
	case ShapeOpaqueText:
		return "text"
	case ShapeJSONObject:
		return "json"
	default:
		return "unknown"
	}
}

// Optional holds a value that may be absent.
// Valid=false is the only "no value" signal; the zero Value of a valid
// Optional (such as an empty string) is a real value.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}
