// internal/headers/location.go
package headers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/solatis/hxwire/internal/codec"
	"github.com/solatis/hxwire/internal/types"
)

// AjaxContext mirrors the htmx ajax API context carried by hx-location.
type AjaxContext struct {
	// Source is the source element of the request.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Event is the event that triggered the request.
	Event string `json:"event,omitempty" yaml:"event,omitempty"`
	// Handler is a callback that will handle the response HTML.
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty"`
	// Target is the target to swap the response into.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	// Swap is how the response will be swapped in relative to the target.
	Swap string `json:"swap,omitempty" yaml:"swap,omitempty"`
	// Values to submit with the request.
	Values map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	// Headers to submit with the request.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	// Select picks the part of the response to swap in.
	Select string `json:"select,omitempty" yaml:"select,omitempty"`
}

// Location is a client-side redirect that does not do a full page reload.
//
// Without a Context the header carries the bare path. With a Context, even
// an empty one, it carries a JSON object holding the path and the context
// members flattened next to it. A Path starting with '{' is always written
// as the JSON object, so it decodes with an empty, non-nil Context.
type Location struct {
	Path    string
	Context *AjaxContext
}

type locationWire struct {
	Path string `json:"path"`
	*AjaxContext
}

// MarshalJSON encodes l as the hx-location JSON object.
func (l Location) MarshalJSON() ([]byte, error) {
	return codec.MarshalJSON(locationWire{Path: l.Path, AjaxContext: l.Context})
}

// UnmarshalJSON decodes the hx-location JSON object. The path member is
// required. Context is always non-nil afterwards.
func (l *Location) UnmarshalJSON(data []byte) error {
	var w struct {
		Path *string `json:"path"`
		*AjaxContext
	}
	w.AjaxContext = new(AjaxContext)
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Path == nil {
		return types.ErrMissingPath
	}
	*l = Location{Path: *w.Path, Context: w.AjaxContext}
	return nil
}

// isJSONText reports whether s starts a JSON object.
func isJSONText(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, " \t"), "{")
}

// encodeLocation never fails: Location holds only strings and string maps.
// A path that itself looks like JSON is written in object form so it
// cannot be misread.
func encodeLocation(l Location) []byte {
	if l.Context == nil && !isJSONText(l.Path) {
		return codec.EncodeText(l.Path)
	}
	raw, err := codec.EncodeJSON(l)
	if err != nil {
		panic(fmt.Sprintf("headers: encode location: %v", err))
	}
	return raw
}

func decodeLocation(raw []byte) (Location, error) {
	text, err := codec.DecodeText(raw)
	if err != nil {
		return Location{}, err
	}
	if !isJSONText(text) {
		return Location{Path: text}, nil
	}
	var l Location
	if err := codec.UnmarshalJSON([]byte(text), &l); err != nil {
		return Location{}, err
	}
	return l, nil
}
