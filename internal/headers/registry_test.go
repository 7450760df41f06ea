package headers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/hxwire/internal/codec"
	"github.com/solatis/hxwire/internal/types"
)

func fields(pairs ...string) Fields {
	var f Fields
	for i := 0; i+1 < len(pairs); i += 2 {
		f.Add(pairs[i], []byte(pairs[i+1]))
	}
	return f
}

func TestDecodeRequest(t *testing.T) {
	h := fields(
		"HX-Request", "true",
		"HX-Boosted", "1",
		"HX-Current-URL", "https://example.com/items?page=2",
		"HX-Prompt", "caf%C3%A9",
		"HX-Target", "list",
		"HX-Trigger-Name", "q",
		"HX-Trigger", "search",
		"Content-Type", "text/html",
	)

	got, err := DecodeRequest(h)
	if err != nil {
		t.Fatalf("DecodeRequest() error = %v", err)
	}

	want := &RequestBundle{
		Request:     true,
		Boosted:     true,
		CurrentURL:  types.Some("https://example.com/items?page=2"),
		Prompt:      types.Some("café"),
		Target:      types.Some("list"),
		TriggerName: types.Some("q"),
		Trigger:     types.Some("search"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeRequest() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRequest(t *testing.T) {
	b := &RequestBundle{
		Request:    true,
		Boosted:    false,
		Prompt:     types.Some("are you sure? ✔"),
		Target:     types.Some(""),
		CurrentURL: types.Optional[string]{},
	}

	got := EncodeRequest(b)
	want := fields(
		"hx-request", "true",
		"hx-prompt", "are you sure? %E2%9C%94",
		"hx-target", "",
	)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("EncodeRequest() mismatch (-want +got):\n%s", diff)
	}
}

func TestRequest_EmptyTextIsPresent(t *testing.T) {
	got, err := DecodeRequest(fields("hx-target", ""))
	if err != nil {
		t.Fatalf("DecodeRequest() error = %v", err)
	}
	if v, ok := got.Target.Get(); !ok || v != "" {
		t.Errorf("Target = %q, %v; want \"\", true", v, ok)
	}
}

// Scenario A: a location with an empty context is written as JSON.
func TestEncodeResponse_LocationWithEmptyContext(t *testing.T) {
	b := &ResponseBundle{
		Location: types.Some(Location{Path: "/a b", Context: &AjaxContext{}}),
	}

	got := EncodeResponse(b)
	if len(got) != 1 {
		t.Fatalf("len(EncodeResponse()) = %d, want 1", len(got))
	}
	if got[0].Name != HeaderLocation {
		t.Errorf("header name = %q, want %q", got[0].Name, HeaderLocation)
	}

	text, err := codec.DecodeText(got[0].Value)
	if err != nil {
		t.Fatalf("DecodeText() error = %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v", text, err)
	}
	if diff := cmp.Diff(map[string]any{"path": "/a b"}, parsed); diff != "" {
		t.Errorf("location payload mismatch (-want +got):\n%s", diff)
	}
}

// Scenario B: an unknown swap token fails the whole decode.
func TestDecodeResponse_UnknownSwapToken(t *testing.T) {
	h := fields(
		"hx-redirect", "/home",
		"hx-reswap", "outer-html-x",
	)

	got, err := DecodeResponse(h)
	if got != nil {
		t.Errorf("DecodeResponse() returned partial bundle %+v", got)
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("DecodeResponse() error = %v, want *FieldError", err)
	}
	if fieldErr.Name != HeaderReswap {
		t.Errorf("FieldError.Name = %q, want %q", fieldErr.Name, HeaderReswap)
	}
	var tokErr *codec.UnknownTokenError
	if !errors.As(err, &tokErr) {
		t.Fatalf("FieldError.Err = %v, want *UnknownTokenError", fieldErr.Err)
	}
	if string(tokErr.Token) != "outer-html-x" {
		t.Errorf("UnknownTokenError.Token = %q, want %q", tokErr.Token, "outer-html-x")
	}
	if !errors.Is(err, types.ErrUnknownToken) {
		t.Errorf("errors.Is(err, ErrUnknownToken) = false")
	}
}

// Scenario C: no optional headers decode to an empty bundle and re-encode
// to an empty collection.
func TestEmptyBundles(t *testing.T) {
	h := fields("Accept", "text/html", "Cookie", "a=b")

	req, err := DecodeRequest(h)
	if err != nil {
		t.Fatalf("DecodeRequest() error = %v", err)
	}
	if diff := cmp.Diff(&RequestBundle{}, req); diff != "" {
		t.Errorf("DecodeRequest() mismatch (-want +got):\n%s", diff)
	}
	if out := EncodeRequest(req); len(out) != 0 {
		t.Errorf("EncodeRequest(empty) = %v, want empty", out)
	}

	resp, err := DecodeResponse(h)
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if diff := cmp.Diff(&ResponseBundle{}, resp); diff != "" {
		t.Errorf("DecodeResponse() mismatch (-want +got):\n%s", diff)
	}
	if out := EncodeResponse(resp); len(out) != 0 {
		t.Errorf("EncodeResponse(empty) = %v, want empty", out)
	}

	if out := EncodeResponse(nil); out == nil || len(out) != 0 {
		t.Errorf("EncodeResponse(nil) = %#v, want empty non-nil", out)
	}
}

func TestDecode_DirectionDiscipline(t *testing.T) {
	// Response-only headers are ignored on requests and vice versa.
	req, err := DecodeRequest(fields("hx-reswap", "outer-html-x", "hx-refresh", "true"))
	if err != nil {
		t.Fatalf("DecodeRequest() error = %v", err)
	}
	if diff := cmp.Diff(&RequestBundle{}, req); diff != "" {
		t.Errorf("DecodeRequest() read response headers (-want +got):\n%s", diff)
	}

	resp, err := DecodeResponse(fields("hx-prompt", "%zz", "hx-request", "true"))
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if diff := cmp.Diff(&ResponseBundle{}, resp); diff != "" {
		t.Errorf("DecodeResponse() read request headers (-want +got):\n%s", diff)
	}
}

func TestDecode_SharedTriggerName(t *testing.T) {
	h := fields("hx-trigger", "save-button")

	req, err := DecodeRequest(h)
	if err != nil {
		t.Fatalf("DecodeRequest() error = %v", err)
	}
	if v, _ := req.Trigger.Get(); v != "save-button" {
		t.Errorf("request Trigger = %q, want element id", v)
	}

	resp, err := DecodeResponse(h)
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	tr, ok := resp.Trigger.Get()
	if !ok {
		t.Fatal("response Trigger unset")
	}
	if diff := cmp.Diff([]string{"save-button"}, tr.Events); diff != "" {
		t.Errorf("response Trigger.Events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		request  bool
		h        Fields
		wantName string
		wantErr  error
	}{
		{
			name:     "duplicate request header",
			request:  true,
			h:        fields("HX-Target", "a", "hx-target", "b"),
			wantName: HeaderTarget,
			wantErr:  types.ErrMultipleValues,
		},
		{
			name:     "bad escape in prompt",
			request:  true,
			h:        fields("hx-request", "true", "hx-prompt", "50%"),
			wantName: HeaderPrompt,
			wantErr:  types.ErrInvalidEscape,
		},
		{
			name:     "invalid utf-8 in current url",
			request:  true,
			h:        fields("hx-current-url", "/%FF"),
			wantName: HeaderCurrentURL,
			wantErr:  types.ErrInvalidUTF8,
		},
		{
			name:     "malformed trigger json",
			h:        fields("hx-trigger", `{"a":`),
			wantName: HeaderTrigger,
			wantErr:  types.ErrMalformedJSON,
		},
		{
			name:     "location without path",
			h:        fields("hx-location", `{"target":"#main"}`),
			wantName: HeaderLocation,
			wantErr:  types.ErrMissingPath,
		},
		{
			name:     "duplicate response flag",
			h:        fields("hx-refresh", "true", "HX-Refresh", "true"),
			wantName: HeaderRefresh,
			wantErr:  types.ErrMultipleValues,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.request {
				var b *RequestBundle
				b, err = DecodeRequest(tt.h)
				if b != nil {
					t.Errorf("DecodeRequest() returned partial bundle")
				}
			} else {
				var b *ResponseBundle
				b, err = DecodeResponse(tt.h)
				if b != nil {
					t.Errorf("DecodeResponse() returned partial bundle")
				}
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("error type = %T, want *FieldError", err)
			}
			if fieldErr.Name != tt.wantName {
				t.Errorf("FieldError.Name = %q, want %q", fieldErr.Name, tt.wantName)
			}
		})
	}
}

func TestResponse_RoundTrip(t *testing.T) {
	details, err := TriggerDetails(map[string]any{
		"showMessage": map[string]any{"level": "info", "text": "Saved ✓"},
	})
	if err != nil {
		t.Fatalf("TriggerDetails() error = %v", err)
	}

	in := &ResponseBundle{
		Location: types.Some(Location{
			Path: "/orders/42",
			Context: &AjaxContext{
				Target: "#main",
				Swap:   "outerHTML",
				Values: map[string]string{"tab": "détails"},
			},
		}),
		PushURL:            types.Some(HistoryUpdate{URL: "/orders/42?tab=d%C3%A9tails"}),
		ReplaceURL:         types.Some(HistoryUpdate{Prevent: true}),
		Redirect:           types.Some("/login"),
		Refresh:            true,
		Reswap:             types.Some(types.SwapOuterHTML),
		Retarget:           types.Some("#errors"),
		Reselect:           types.Some(".content > p"),
		Trigger:            types.Some(details),
		TriggerAfterSettle: types.Some(mustEvents(t, "settled", "done")),
		TriggerAfterSwap:   types.Some(mustEvents(t, "swapped")),
	}

	encoded := EncodeResponse(in)
	for _, f := range encoded {
		for _, c := range f.Value {
			if c < 0x20 || c > 0x7e {
				t.Fatalf("header %s carries byte %#x", f.Name, c)
			}
		}
	}

	out, err := DecodeResponse(encoded)
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeResponse_Order(t *testing.T) {
	b := &ResponseBundle{
		TriggerAfterSwap: types.Some(mustEvents(t, "a")),
		Reswap:           types.Some(types.SwapNone),
		Location:         types.Some(Location{Path: "/x"}),
	}

	var names []string
	for _, f := range EncodeResponse(b) {
		names = append(names, f.Name)
	}
	want := []string{HeaderLocation, HeaderReswap, HeaderTriggerAfterSwap}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("header order mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeResponse_UndeclaredSwapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("EncodeResponse with Swap(99) did not panic")
		}
	}()
	EncodeResponse(&ResponseBundle{Reswap: types.Some(types.Swap(99))})
}

func TestRegistryTables(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range RequestFields() {
		if !d.Direction.Includes(types.DirectionRequest) {
			t.Errorf("request table holds %s with direction %v", d.Name, d.Direction)
		}
		if seen[d.Name] {
			t.Errorf("request table holds %s twice", d.Name)
		}
		seen[d.Name] = true
	}

	seen = map[string]bool{}
	for _, d := range ResponseFields() {
		if !d.Direction.Includes(types.DirectionResponse) {
			t.Errorf("response table holds %s with direction %v", d.Name, d.Direction)
		}
		if seen[d.Name] {
			t.Errorf("response table holds %s twice", d.Name)
		}
		seen[d.Name] = true
	}

	reqTrigger, ok := LookupRequestField("HX-Trigger")
	if !ok || reqTrigger.Shape != types.ShapeOpaqueText || reqTrigger.Direction != types.DirectionBoth {
		t.Errorf("LookupRequestField(HX-Trigger) = %+v, %v", reqTrigger, ok)
	}
	respTrigger, ok := LookupResponseField("hx-trigger")
	if !ok || respTrigger.Shape != types.ShapeJSONObject || respTrigger.Direction != types.DirectionBoth {
		t.Errorf("LookupResponseField(hx-trigger) = %+v, %v", respTrigger, ok)
	}
	if _, ok := LookupRequestField(HeaderReswap); ok {
		t.Error("LookupRequestField(hx-reswap) found a response-only header")
	}
}

func TestParseSwap(t *testing.T) {
	got, err := ParseSwap("beforeend")
	if err != nil || got != types.SwapBeforeEnd {
		t.Errorf("ParseSwap(beforeend) = %v, %v", got, err)
	}
	if _, err := ParseSwap("beforeEnd"); !errors.Is(err, types.ErrUnknownToken) {
		t.Errorf("ParseSwap(beforeEnd) error = %v, want ErrUnknownToken", err)
	}

	for _, spelling := range []string{"innerHTML", "outerHTML"} {
		if _, err := ParseSwap(spelling); err != nil {
			t.Errorf("ParseSwap(%s) error = %v", spelling, err)
		}
	}
	if _, err := ParseSwap("innerhtml"); !errors.Is(err, types.ErrUnknownToken) {
		t.Errorf("ParseSwap(innerhtml) error = %v, want ErrUnknownToken", err)
	}
}

// Property-based test: request bundles with arbitrary text survive the
// registry round trip.
func TestRequest_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	optional := func(s string, set bool) types.Optional[string] {
		if !set {
			return types.Optional[string]{}
		}
		return types.Some(s)
	}

	properties.Property("decode(encode(b)) == b", prop.ForAll(
		func(prompt, target string, boosted, setPrompt, setTarget bool) bool {
			in := &RequestBundle{
				Request: true,
				Boosted: boosted,
				Prompt:  optional(prompt, setPrompt),
				Target:  optional(target, setTarget),
			}
			out, err := DecodeRequest(EncodeRequest(in))
			return err == nil && cmp.Equal(in, out)
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
