// internal/codec/token.go
package codec

import "fmt"

/*
 * Closed token sets.
 *
 * A TokenSet binds every variant of an enumeration to exactly one wire
 * spelling and back. Decoding is an exact, case-sensitive byte match with no
 * trimming; there is no fallback variant, so an unknown spelling always
 * surfaces as *UnknownTokenError.
 */

// TokenSet is an immutable bidirectional table between variants and their
// wire spellings. It is safe for concurrent use.
type TokenSet[T comparable] struct {
	spellings map[T]string
	variants  map[string]T
	order     []T
}

// NewTokenSet builds a table from the declared variants and their spelling
// function. It panics if two variants share a spelling or a variant is
// listed twice, since the table would no longer be a bijection.
func NewTokenSet[T comparable](variants []T, spell func(T) string) *TokenSet[T] {
	s := &TokenSet[T]{
		spellings: make(map[T]string, len(variants)),
		variants:  make(map[string]T, len(variants)),
		order:     make([]T, 0, len(variants)),
	}
	for _, v := range variants {
		name := spell(v)
		if _, dup := s.spellings[v]; dup {
			panic(fmt.Sprintf("codec: variant %v declared twice", v))
		}
		if prev, dup := s.variants[name]; dup {
			panic(fmt.Sprintf("codec: spelling %q shared by %v and %v", name, prev, v))
		}
		s.spellings[v] = name
		s.variants[name] = v
		s.order = append(s.order, v)
	}
	return s
}

// Encode returns the wire spelling of v.
// It panics for a value outside the declared variants.
func (s *TokenSet[T]) Encode(v T) []byte {
	name, ok := s.spellings[v]
	if !ok {
		panic(fmt.Sprintf("codec: undeclared token variant %v", v))
	}
	return []byte(name)
}

// Decode maps raw to its variant.
func (s *TokenSet[T]) Decode(raw []byte) (T, error) {
	v, ok := s.variants[string(raw)]
	if !ok {
		var zero T
		return zero, &UnknownTokenError{Token: append([]byte(nil), raw...)}
	}
	return v, nil
}

// Variants returns the declared variants in declaration order.
func (s *TokenSet[T]) Variants() []T {
	return append([]T(nil), s.order...)
}
