// Package codec converts typed htmx header values to and from header-safe
// byte sequences.
//
// Every function is pure and stateless. Each shape has one encode and one
// decode function:
//   - Flag: presence-only boolean (EncodeFlag, DecodeFlag)
//   - Token: closed enumeration via TokenSet
//   - OpaqueText: percent-style escaping (EncodeText, DecodeText)
//   - JSONObject: canonical JSON wrapped in text escaping (EncodeJSON, DecodeJSON)
package codec

// FlagTrue is the wire value written for a set flag.
const FlagTrue = "true"

// EncodeFlag returns the truthy token when v is true. A false flag is not
// written at all, signalled by ok=false.
func EncodeFlag(v bool) (raw []byte, ok bool) {
	if !v {
		return nil, false
	}
	return []byte(FlagTrue), true
}

// DecodeFlag reports whether the flag header was present.
// The bytes are not inspected: some peers send a sentinel other than "true",
// and any present value counts as set.
func DecodeFlag(raw []byte, present bool) bool {
	return present
}
