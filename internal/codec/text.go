// internal/codec/text.go
package codec

import (
	"strings"
	"unicode/utf8"

	"github.com/solatis/hxwire/internal/types"
)

/*
 * Header-safe text escaping.
 *
 * HTTP field values admit visible ASCII, SP and HTAB (RFC 9110 5.5). Raw
 * bytes >= 0x80 are obsolete and control characters are forbidden, so any
 * Unicode payload has to be escaped before it reaches the transport.
 *
 * Pass-through set:
 *   - 0x21-0x7E except '%' (the escape marker itself)
 *   - SP, unless it is the first or last byte (parsers strip surrounding
 *     whitespace, which would lose it)
 *
 * Every other byte of the UTF-8 encoding becomes '%' followed by two
 * uppercase hex digits. Encoding is deterministic and leaves a value made
 * only of pass-through bytes byte-identical.
 */

const upperHex = "0123456789ABCDEF"

// passThrough reports whether byte c at position i of an n byte value is
// written unescaped.
func passThrough(c byte, i, n int) bool {
	if c == ' ' {
		return i > 0 && i < n-1
	}
	return c > ' ' && c < 0x7f && c != '%'
}

// IsWireLegal reports whether EncodeText would return s unchanged.
func IsWireLegal(s string) bool {
	for i := 0; i < len(s); i++ {
		if !passThrough(s[i], i, len(s)) {
			return false
		}
	}
	return true
}

// EncodeText escapes s into a header-safe byte sequence.
// The empty string encodes to an empty, non-nil slice.
func EncodeText(s string) []byte {
	n := len(s)
	escapes := 0
	for i := 0; i < n; i++ {
		if !passThrough(s[i], i, n) {
			escapes++
		}
	}
	if escapes == 0 {
		return []byte(s)
	}

	out := make([]byte, 0, n+2*escapes)
	for i := 0; i < n; i++ {
		c := s[i]
		if passThrough(c, i, n) {
			out = append(out, c)
			continue
		}
		out = append(out, '%', upperHex[c>>4], upperHex[c&0x0f])
	}
	return out
}

// DecodeText reverses EncodeText.
// Escapes with lowercase hex digits are accepted. The unescaped bytes must
// form valid UTF-8.
func DecodeText(raw []byte) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(raw) {
			return "", &EncodingError{Err: types.ErrInvalidEscape, Offset: i}
		}
		hi, ok1 := unhex(raw[i+1])
		lo, ok2 := unhex(raw[i+2])
		if !ok1 || !ok2 {
			return "", &EncodingError{Err: types.ErrInvalidEscape, Offset: i}
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}

	s := b.String()
	if !utf8.ValidString(s) {
		return "", &EncodingError{Err: types.ErrInvalidUTF8, Offset: invalidUTF8Offset(s)}
	}
	return s, nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// invalidUTF8Offset returns the offset of the first invalid sequence in the
// unescaped text.
func invalidUTF8Offset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(s)
}
