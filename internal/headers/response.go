// internal/headers/response.go
package headers

import (
	"github.com/solatis/hxwire/internal/codec"
	"github.com/solatis/hxwire/internal/types"
)

// Response header names. HeaderTrigger is shared with requests.
const (
	HeaderLocation           = "hx-location"
	HeaderPushURL            = "hx-push-url"
	HeaderRedirect           = "hx-redirect"
	HeaderRefresh            = "hx-refresh"
	HeaderReplaceURL         = "hx-replace-url"
	HeaderReswap             = "hx-reswap"
	HeaderRetarget           = "hx-retarget"
	HeaderReselect           = "hx-reselect"
	HeaderTriggerAfterSettle = "hx-trigger-after-settle"
	HeaderTriggerAfterSwap   = "hx-trigger-after-swap"
)

var swapTokens = codec.NewTokenSet(types.AllSwaps(), types.Swap.String)

// ParseSwap maps a wire spelling to its Swap variant.
func ParseSwap(s string) (types.Swap, error) {
	return swapTokens.Decode([]byte(s))
}

// SwapVariants returns every swap style accepted by hx-reswap.
func SwapVariants() []types.Swap {
	return swapTokens.Variants()
}

// ResponseBundle holds the htmx headers of one response.
// A false flag and an unset Optional both mean the header is absent.
type ResponseBundle struct {
	// Location does a client-side redirect without a full page reload.
	Location types.Optional[Location]
	// PushURL pushes a new url into the history stack.
	PushURL types.Optional[HistoryUpdate]
	// Redirect does a client-side redirect to a new location.
	Redirect types.Optional[string]
	// Refresh makes the client do a full refresh of the page.
	Refresh bool
	// ReplaceURL replaces the current url in the history stack.
	ReplaceURL types.Optional[HistoryUpdate]
	// Reswap specifies how the response will be swapped. It must hold a
	// declared Swap; EncodeResponse panics on any other value.
	Reswap types.Optional[types.Swap]
	// Retarget is a CSS selector that updates the target of the content
	// update to a different element on the page.
	Retarget types.Optional[string]
	// Reselect is a CSS selector choosing which part of the response is
	// swapped in.
	Reselect types.Optional[string]
	// Trigger fires client-side events as soon as the response is received.
	Trigger types.Optional[Trigger]
	// TriggerAfterSettle fires client-side events after the settle step.
	TriggerAfterSettle types.Optional[Trigger]
	// TriggerAfterSwap fires client-side events after the swap step.
	TriggerAfterSwap types.Optional[Trigger]
}

var responseTable = []binding[ResponseBundle]{
	valueBinding(HeaderLocation, types.DirectionResponse, types.ShapeJSONObject,
		func(b *ResponseBundle) *types.Optional[Location] { return &b.Location },
		decodeLocation, encodeLocation),
	valueBinding(HeaderPushURL, types.DirectionResponse, types.ShapeOpaqueText,
		func(b *ResponseBundle) *types.Optional[HistoryUpdate] { return &b.PushURL },
		decodeHistory, encodeHistory),
	valueBinding(HeaderRedirect, types.DirectionResponse, types.ShapeOpaqueText,
		func(b *ResponseBundle) *types.Optional[string] { return &b.Redirect },
		codec.DecodeText, codec.EncodeText),
	flagBinding(HeaderRefresh, types.DirectionResponse,
		func(b *ResponseBundle) *bool { return &b.Refresh }),
	valueBinding(HeaderReplaceURL, types.DirectionResponse, types.ShapeOpaqueText,
		func(b *ResponseBundle) *types.Optional[HistoryUpdate] { return &b.ReplaceURL },
		decodeHistory, encodeHistory),
	valueBinding(HeaderReswap, types.DirectionResponse, types.ShapeToken,
		func(b *ResponseBundle) *types.Optional[types.Swap] { return &b.Reswap },
		swapTokens.Decode, swapTokens.Encode),
	valueBinding(HeaderRetarget, types.DirectionResponse, types.ShapeOpaqueText,
		func(b *ResponseBundle) *types.Optional[string] { return &b.Retarget },
		codec.DecodeText, codec.EncodeText),
	valueBinding(HeaderReselect, types.DirectionResponse, types.ShapeOpaqueText,
		func(b *ResponseBundle) *types.Optional[string] { return &b.Reselect },
		codec.DecodeText, codec.EncodeText),
	valueBinding(HeaderTrigger, types.DirectionBoth, types.ShapeJSONObject,
		func(b *ResponseBundle) *types.Optional[Trigger] { return &b.Trigger },
		decodeTrigger, encodeTrigger),
	valueBinding(HeaderTriggerAfterSettle, types.DirectionResponse, types.ShapeJSONObject,
		func(b *ResponseBundle) *types.Optional[Trigger] { return &b.TriggerAfterSettle },
		decodeTrigger, encodeTrigger),
	valueBinding(HeaderTriggerAfterSwap, types.DirectionResponse, types.ShapeJSONObject,
		func(b *ResponseBundle) *types.Optional[Trigger] { return &b.TriggerAfterSwap },
		decodeTrigger, encodeTrigger),
}

// DecodeResponse builds a ResponseBundle from response headers.
// Only response and bidirectional headers are read. The first header that
// fails to decode aborts with a *FieldError.
func DecodeResponse(h Fields) (*ResponseBundle, error) {
	return decodeFields(h, types.DirectionResponse, responseTable)
}

// EncodeResponse writes every set field of b as response headers.
// b.Reswap must hold one of types.AllSwaps; an undeclared Swap panics.
func EncodeResponse(b *ResponseBundle) Fields {
	return encodeFields(b, responseTable)
}

// ResponseFields returns the response header descriptors in encoding order.
func ResponseFields() []Descriptor {
	return descriptors(responseTable)
}

// LookupResponseField finds a response header descriptor by name.
func LookupResponseField(name string) (Descriptor, bool) {
	return lookup(responseTable, name)
}
