// internal/headers/fields.go
package headers

import (
	"net/http"
	"sort"
	"strings"

	"google.golang.org/grpc/metadata"
)

/*
 * Generic header collection.
 *
 * Fields is the ordered name/value list the registry reads from and writes
 * to. Name matching is case-insensitive, as in HTTP. Repeated names are kept
 * as separate entries so the registry can reject headers sent twice.
 *
 * Adapters convert to and from net/http.Header and gRPC metadata.MD. Both
 * are maps, so adapters sort names to keep Fields deterministic.
 */

// Field is a single header line.
type Field struct {
	Name  string
	Value []byte
}

// Fields is an ordered collection of header lines.
type Fields []Field

// Values returns every value stored under name, in order.
func (f Fields) Values(name string) [][]byte {
	var out [][]byte
	for _, field := range f {
		if strings.EqualFold(field.Name, name) {
			out = append(out, field.Value)
		}
	}
	return out
}

// Get returns the first value stored under name.
func (f Fields) Get(name string) ([]byte, bool) {
	for _, field := range f {
		if strings.EqualFold(field.Name, name) {
			return field.Value, true
		}
	}
	return nil, false
}

// Add appends a header line.
func (f *Fields) Add(name string, value []byte) {
	*f = append(*f, Field{Name: name, Value: value})
}

// FromHTTP copies an http.Header. Names are lowercased and sorted.
func FromHTTP(h http.Header) Fields {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Fields, 0, len(h))
	for _, name := range names {
		for _, v := range h[name] {
			out.Add(strings.ToLower(name), []byte(v))
		}
	}
	return out
}

// HTTP converts the collection to an http.Header with canonical keys.
func (f Fields) HTTP() http.Header {
	h := make(http.Header, len(f))
	for _, field := range f {
		h.Add(field.Name, string(field.Value))
	}
	return h
}

// FromMetadata copies gRPC metadata. Keys are already lowercase in
// metadata.MD; they are sorted here.
func FromMetadata(md metadata.MD) Fields {
	names := make([]string, 0, md.Len())
	for name := range md {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Fields, 0, md.Len())
	for _, name := range names {
		for _, v := range md[name] {
			out.Add(name, []byte(v))
		}
	}
	return out
}

// Metadata converts the collection to gRPC metadata.
func (f Fields) Metadata() metadata.MD {
	md := metadata.MD{}
	for _, field := range f {
		md.Append(field.Name, string(field.Value))
	}
	return md
}
