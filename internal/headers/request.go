// internal/headers/request.go
package headers

import (
	"github.com/solatis/hxwire/internal/codec"
	"github.com/solatis/hxwire/internal/types"
)

// Request header names.
const (
	HeaderRequest               = "hx-request"
	HeaderBoosted               = "hx-boosted"
	HeaderHistoryRestoreRequest = "hx-history-restore-request"
	HeaderCurrentURL            = "hx-current-url"
	HeaderPrompt                = "hx-prompt"
	HeaderTarget                = "hx-target"
	HeaderTriggerName           = "hx-trigger-name"
	HeaderTrigger               = "hx-trigger"
)

// RequestBundle holds the htmx headers of one request.
// A false flag and an unset Optional both mean the header is absent.
type RequestBundle struct {
	// Request is always set by htmx on its own requests.
	Request bool
	// Boosted indicates the request comes from an element using hx-boost.
	Boosted bool
	// HistoryRestoreRequest is set for history restoration after a miss in
	// the local history cache.
	HistoryRestoreRequest bool

	// CurrentURL is the current URL of the browser.
	CurrentURL types.Optional[string]
	// Prompt is the user response to an hx-prompt.
	Prompt types.Optional[string]
	// Target is the id of the target element if it exists.
	Target types.Optional[string]
	// TriggerName is the name of the triggered element if it exists.
	TriggerName types.Optional[string]
	// Trigger is the id of the triggered element if it exists.
	Trigger types.Optional[string]
}

var requestTable = []binding[RequestBundle]{
	flagBinding(HeaderRequest, types.DirectionRequest,
		func(b *RequestBundle) *bool { return &b.Request }),
	flagBinding(HeaderBoosted, types.DirectionRequest,
		func(b *RequestBundle) *bool { return &b.Boosted }),
	flagBinding(HeaderHistoryRestoreRequest, types.DirectionRequest,
		func(b *RequestBundle) *bool { return &b.HistoryRestoreRequest }),
	valueBinding(HeaderCurrentURL, types.DirectionRequest, types.ShapeOpaqueText,
		func(b *RequestBundle) *types.Optional[string] { return &b.CurrentURL },
		codec.DecodeText, codec.EncodeText),
	valueBinding(HeaderPrompt, types.DirectionRequest, types.ShapeOpaqueText,
		func(b *RequestBundle) *types.Optional[string] { return &b.Prompt },
		codec.DecodeText, codec.EncodeText),
	valueBinding(HeaderTarget, types.DirectionRequest, types.ShapeOpaqueText,
		func(b *RequestBundle) *types.Optional[string] { return &b.Target },
		codec.DecodeText, codec.EncodeText),
	valueBinding(HeaderTriggerName, types.DirectionRequest, types.ShapeOpaqueText,
		func(b *RequestBundle) *types.Optional[string] { return &b.TriggerName },
		codec.DecodeText, codec.EncodeText),
	valueBinding(HeaderTrigger, types.DirectionBoth, types.ShapeOpaqueText,
		func(b *RequestBundle) *types.Optional[string] { return &b.Trigger },
		codec.DecodeText, codec.EncodeText),
}

// DecodeRequest builds a RequestBundle from request headers.
// Only request and bidirectional headers are read. The first header that
// fails to decode aborts with a *FieldError.
func DecodeRequest(h Fields) (*RequestBundle, error) {
	return decodeFields(h, types.DirectionRequest, requestTable)
}

// EncodeRequest writes every set field of b as request headers.
func EncodeRequest(b *RequestBundle) Fields {
	return encodeFields(b, requestTable)
}

// RequestFields returns the request header descriptors in encoding order.
func RequestFields() []Descriptor {
	return descriptors(requestTable)
}

// LookupRequestField finds a request header descriptor by name.
func LookupRequestField(name string) (Descriptor, bool) {
	return lookup(requestTable, name)
}
