// Package headers binds typed htmx request and response bundles to their
// canonical header names and drives the value codec for each field.
//
// The descriptor tables are package-level data built once at init and never
// mutated, so every function here is safe for concurrent use.
package headers

import (
	"strings"

	"github.com/solatis/hxwire/internal/codec"
	"github.com/solatis/hxwire/internal/types"
)

/*
 * Header registry.
 *
 * Each header is a binding: a Descriptor (canonical name, direction, shape)
 * plus a decode and an encode function that move one bundle field through
 * the codec. Request and response bundles each have their own table.
 * hx-trigger appears in both tables under the same name: an element id on
 * requests, client-side events on responses.
 *
 * Decode workflow:
 *   1. For each binding in table order whose direction includes the one
 *      being decoded, collect values for the name
 *   2. Absent: leave the field unset
 *   3. More than one value: fail with ErrMultipleValues
 *   4. Decode through the codec; any error aborts the whole bundle
 *
 * Encode emits set fields in table order. False flags and unset optionals
 * are omitted, never written as empty values.
 */

// Descriptor describes one protocol header.
type Descriptor struct {
	Name      string
	Direction types.Direction
	Shape     types.Shape
}

type binding[B any] struct {
	Descriptor
	decode func(b *B, raw []byte) error
	encode func(b *B) ([]byte, bool)
}

func flagBinding[B any](name string, dir types.Direction, field func(*B) *bool) binding[B] {
	return binding[B]{
		Descriptor: Descriptor{Name: name, Direction: dir, Shape: types.ShapeFlag},
		decode: func(b *B, raw []byte) error {
			*field(b) = codec.DecodeFlag(raw, true)
			return nil
		},
		encode: func(b *B) ([]byte, bool) {
			return codec.EncodeFlag(*field(b))
		},
	}
}

func valueBinding[B, T any](
	name string,
	dir types.Direction,
	shape types.Shape,
	field func(*B) *types.Optional[T],
	dec func([]byte) (T, error),
	enc func(T) []byte,
) binding[B] {
	return binding[B]{
		Descriptor: Descriptor{Name: name, Direction: dir, Shape: shape},
		decode: func(b *B, raw []byte) error {
			v, err := dec(raw)
			if err != nil {
				return err
			}
			*field(b) = types.Some(v)
			return nil
		},
		encode: func(b *B) ([]byte, bool) {
			v, ok := field(b).Get()
			if !ok {
				return nil, false
			}
			return enc(v), true
		},
	}
}

func decodeFields[B any](h Fields, dir types.Direction, table []binding[B]) (*B, error) {
	b := new(B)
	for _, f := range table {
		if !f.Direction.Includes(dir) {
			continue
		}
		values := h.Values(f.Name)
		switch len(values) {
		case 0:
			continue
		case 1:
		default:
			return nil, &FieldError{Name: f.Name, Err: types.ErrMultipleValues}
		}
		if err := f.decode(b, values[0]); err != nil {
			return nil, &FieldError{Name: f.Name, Err: err}
		}
	}
	return b, nil
}

func encodeFields[B any](b *B, table []binding[B]) Fields {
	out := make(Fields, 0, len(table))
	if b == nil {
		return out
	}
	for _, f := range table {
		if raw, ok := f.encode(b); ok {
			out.Add(f.Name, raw)
		}
	}
	return out
}

func descriptors[B any](table []binding[B]) []Descriptor {
	out := make([]Descriptor, len(table))
	for i, f := range table {
		out[i] = f.Descriptor
	}
	return out
}

func lookup[B any](table []binding[B], name string) (Descriptor, bool) {
	for _, f := range table {
		if strings.EqualFold(f.Name, name) {
			return f.Descriptor, true
		}
	}
	return Descriptor{}, false
}
