// internal/types/swap.go
package types

import "strconv"

// Swap specifies how response content is placed relative to the target
// element of a request.
// Wire spellings follow htmx: innerHTML and outerHTML, the rest lowercase.
type Swap int

const (
	// SwapInnerHTML replaces the inner html of the target element.
	SwapInnerHTML Swap = iota
	// SwapOuterHTML replaces the entire target element with the response.
	SwapOuterHTML
	// SwapBeforeBegin inserts the response before the target element.
	SwapBeforeBegin
	// SwapAfterBegin inserts the response before the first child of the target.
	SwapAfterBegin
	// SwapBeforeEnd inserts the response after the last child of the target.
	SwapBeforeEnd
	// SwapAfterEnd inserts the response after the target element.
	SwapAfterEnd
	// SwapDelete deletes the target element regardless of the response.
	SwapDelete
	// SwapNone does not append content from the response. Out of band
	// items are still processed.
	SwapNone
)

var swapNames = [...]string{
	SwapInnerHTML:   "innerHTML",
	SwapOuterHTML:   "outerHTML",
	SwapBeforeBegin: "beforebegin",
	SwapAfterBegin:  "afterbegin",
	SwapBeforeEnd:   "beforeend",
	SwapAfterEnd:    "afterend",
	SwapDelete:      "delete",
	SwapNone:        "none",
}

// AllSwaps returns every declared Swap variant in declaration order.
func AllSwaps() []Swap {
	out := make([]Swap, len(swapNames))
	for i := range swapNames {
		out[i] = Swap(i)
	}
	return out
}

// String returns the wire spelling of s.
func (s Swap) String() string {
	if s >= 0 && int(s) < len(swapNames) {
		return swapNames[s]
	}
	return "Swap(" + strconv.Itoa(int(s)) + ")"
}
