// internal/headers/trigger.go
package headers

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/solatis/hxwire/internal/codec"
	"github.com/solatis/hxwire/internal/types"
)

/*
 * Client-side event triggers (hx-trigger, hx-trigger-after-settle,
 * hx-trigger-after-swap).
 *
 * Two wire forms:
 *   - event list:  "event1, event2"
 *   - detail map:  {"event1":"A message","event2":{"level":2}}
 *
 * Details are marshalled when the Trigger is built, so a bundle holding a
 * Trigger always encodes. A value starting with '{' is parsed strictly as
 * JSON; malformed JSON is an error, not a fallback to the list form.
 *
 * List names must survive the split on ',' and the trim around each item:
 * non-empty, no ',', no surrounding whitespace, no leading '{'. A Trigger
 * assembled by hand with other names is written in the detail form with
 * null details, so its names still reach the client intact.
 */

// Trigger is a set of client-side events to fire.
// When Details is non-nil it takes precedence over Events.
type Trigger struct {
	Events  []string
	Details json.RawMessage
}

// TriggerEvents returns a Trigger firing the named events without details.
// Names that the list form cannot carry fail with ErrInvalidEventName.
func TriggerEvents(names ...string) (Trigger, error) {
	for _, name := range names {
		if !ValidEventName(name) {
			return Trigger{}, fmt.Errorf("%w: %q", types.ErrInvalidEventName, name)
		}
	}
	return Trigger{Events: names}, nil
}

// ValidEventName reports whether name round-trips through the list form.
func ValidEventName(name string) bool {
	if name == "" || name[0] == '{' || strings.ContainsRune(name, ',') {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	last, _ := utf8.DecodeLastRuneInString(name)
	return !unicode.IsSpace(first) && !unicode.IsSpace(last)
}

// TriggerDetails returns a Trigger carrying a map of event names to detail
// payloads. details must marshal to a JSON object.
func TriggerDetails(details any) (Trigger, error) {
	raw, err := codec.MarshalJSON(details)
	if err != nil {
		return Trigger{}, err
	}
	if len(raw) == 0 || raw[0] != '{' {
		return Trigger{}, types.ErrTriggerNotObject
	}
	return Trigger{Details: raw}, nil
}

// DecodeDetails unmarshals the detail map into v.
func (t Trigger) DecodeDetails(v any) error {
	return codec.UnmarshalJSON(t.Details, v)
}

func encodeTrigger(t Trigger) []byte {
	if t.Details != nil {
		return codec.EncodeText(string(t.Details))
	}
	for _, name := range t.Events {
		if !ValidEventName(name) {
			return encodeEventMap(t.Events)
		}
	}
	return codec.EncodeText(strings.Join(t.Events, ", "))
}

// encodeEventMap writes names as a detail map with null details.
func encodeEventMap(names []string) []byte {
	m := make(map[string]any, len(names))
	for _, name := range names {
		m[name] = nil
	}
	raw, err := codec.EncodeJSON(m)
	if err != nil {
		panic(fmt.Sprintf("headers: encode trigger events: %v", err))
	}
	return raw
}

func decodeTrigger(raw []byte) (Trigger, error) {
	text, err := codec.DecodeText(raw)
	if err != nil {
		return Trigger{}, err
	}
	if isJSONText(text) {
		details, err := codec.CompactJSON([]byte(text))
		if err != nil {
			return Trigger{}, err
		}
		return Trigger{Details: details}, nil
	}

	var events []string
	for _, name := range strings.Split(text, ",") {
		if name = strings.TrimSpace(name); name != "" {
			events = append(events, name)
		}
	}
	return Trigger{Events: events}, nil
}

// HistoryUpdate is the value of hx-push-url and hx-replace-url: either a
// URL to record, or Prevent to stop htmx from updating the history.
// Prevent is written as the literal "false", so a URL spelled "false" cannot
// be expressed.
type HistoryUpdate struct {
	URL     string
	Prevent bool
}

const historyPrevent = "false"

func encodeHistory(h HistoryUpdate) []byte {
	if h.Prevent {
		return []byte(historyPrevent)
	}
	return codec.EncodeText(h.URL)
}

func decodeHistory(raw []byte) (HistoryUpdate, error) {
	if string(raw) == historyPrevent {
		return HistoryUpdate{Prevent: true}, nil
	}
	url, err := codec.DecodeText(raw)
	if err != nil {
		return HistoryUpdate{}, err
	}
	return HistoryUpdate{URL: url}, nil
}
