package cmd

import (
	"fmt"

	"github.com/solatis/hxwire/internal/headers"
	"github.com/solatis/hxwire/internal/types"
)

/*
 * Document views of the header bundles.
 *
 * Bundles use types.Optional for presence; documents use pointers and
 * omitempty so an absent header is an absent key. Both JSON and YAML read
 * the same tags.
 */

type requestDoc struct {
	Request               bool    `json:"request,omitempty" yaml:"request,omitempty"`
	Boosted               bool    `json:"boosted,omitempty" yaml:"boosted,omitempty"`
	HistoryRestoreRequest bool    `json:"history_restore_request,omitempty" yaml:"history_restore_request,omitempty"`
	CurrentURL            *string `json:"current_url,omitempty" yaml:"current_url,omitempty"`
	Prompt                *string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Target                *string `json:"target,omitempty" yaml:"target,omitempty"`
	TriggerName           *string `json:"trigger_name,omitempty" yaml:"trigger_name,omitempty"`
	Trigger               *string `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

type locationDoc struct {
	Path    string               `json:"path" yaml:"path"`
	Context *headers.AjaxContext `json:"context,omitempty" yaml:"context,omitempty"`
}

type historyDoc struct {
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Prevent bool   `json:"prevent,omitempty" yaml:"prevent,omitempty"`
}

type triggerDoc struct {
	Events  []string       `json:"events,omitempty" yaml:"events,omitempty"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

type responseDoc struct {
	Location           *locationDoc `json:"location,omitempty" yaml:"location,omitempty"`
	PushURL            *historyDoc  `json:"push_url,omitempty" yaml:"push_url,omitempty"`
	Redirect           *string      `json:"redirect,omitempty" yaml:"redirect,omitempty"`
	Refresh            bool         `json:"refresh,omitempty" yaml:"refresh,omitempty"`
	ReplaceURL         *historyDoc  `json:"replace_url,omitempty" yaml:"replace_url,omitempty"`
	Reswap             *string      `json:"reswap,omitempty" yaml:"reswap,omitempty"`
	Retarget           *string      `json:"retarget,omitempty" yaml:"retarget,omitempty"`
	Reselect           *string      `json:"reselect,omitempty" yaml:"reselect,omitempty"`
	Trigger            *triggerDoc  `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	TriggerAfterSettle *triggerDoc  `json:"trigger_after_settle,omitempty" yaml:"trigger_after_settle,omitempty"`
	TriggerAfterSwap   *triggerDoc  `json:"trigger_after_swap,omitempty" yaml:"trigger_after_swap,omitempty"`
}

func optPtr[T any](o types.Optional[T]) *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

func ptrOpt[T any](p *T) types.Optional[T] {
	if p == nil {
		return types.Optional[T]{}
	}
	return types.Some(*p)
}

// mapOpt converts a present Optional with fn; absent stays absent.
func mapOpt[T, U any](o types.Optional[T], fn func(T) (U, error)) (*U, error) {
	v, ok := o.Get()
	if !ok {
		return nil, nil
	}
	u, err := fn(v)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// mapPtr converts a non-nil pointer with fn; nil stays absent.
func mapPtr[T, U any](p *T, fn func(T) (U, error)) (types.Optional[U], error) {
	if p == nil {
		return types.Optional[U]{}, nil
	}
	u, err := fn(*p)
	if err != nil {
		return types.Optional[U]{}, err
	}
	return types.Some(u), nil
}

func requestView(b *headers.RequestBundle) requestDoc {
	return requestDoc{
		Request:               b.Request,
		Boosted:               b.Boosted,
		HistoryRestoreRequest: b.HistoryRestoreRequest,
		CurrentURL:            optPtr(b.CurrentURL),
		Prompt:                optPtr(b.Prompt),
		Target:                optPtr(b.Target),
		TriggerName:           optPtr(b.TriggerName),
		Trigger:               optPtr(b.Trigger),
	}
}

func (d requestDoc) bundle() *headers.RequestBundle {
	return &headers.RequestBundle{
		Request:               d.Request,
		Boosted:               d.Boosted,
		HistoryRestoreRequest: d.HistoryRestoreRequest,
		CurrentURL:            ptrOpt(d.CurrentURL),
		Prompt:                ptrOpt(d.Prompt),
		Target:                ptrOpt(d.Target),
		TriggerName:           ptrOpt(d.TriggerName),
		Trigger:               ptrOpt(d.Trigger),
	}
}

func locationView(l headers.Location) (locationDoc, error) {
	return locationDoc{Path: l.Path, Context: l.Context}, nil
}

func (d locationDoc) location() (headers.Location, error) {
	return headers.Location{Path: d.Path, Context: d.Context}, nil
}

func historyView(h headers.HistoryUpdate) (historyDoc, error) {
	return historyDoc{URL: h.URL, Prevent: h.Prevent}, nil
}

func (d historyDoc) history() (headers.HistoryUpdate, error) {
	if d.Prevent && d.URL != "" {
		return headers.HistoryUpdate{}, fmt.Errorf("history update cannot set both url and prevent")
	}
	return headers.HistoryUpdate{URL: d.URL, Prevent: d.Prevent}, nil
}

func triggerView(t headers.Trigger) (triggerDoc, error) {
	if t.Details == nil {
		return triggerDoc{Events: t.Events}, nil
	}
	var details map[string]any
	if err := t.DecodeDetails(&details); err != nil {
		return triggerDoc{}, err
	}
	return triggerDoc{Details: details}, nil
}

func (d triggerDoc) trigger() (headers.Trigger, error) {
	if d.Details != nil {
		return headers.TriggerDetails(d.Details)
	}
	return headers.TriggerEvents(d.Events...)
}

func swapView(s types.Swap) (string, error) {
	return s.String(), nil
}

func responseView(b *headers.ResponseBundle) (responseDoc, error) {
	var (
		d   = responseDoc{Refresh: b.Refresh, Redirect: optPtr(b.Redirect), Retarget: optPtr(b.Retarget), Reselect: optPtr(b.Reselect)}
		err error
	)
	if d.Location, err = mapOpt(b.Location, locationView); err != nil {
		return d, err
	}
	if d.PushURL, err = mapOpt(b.PushURL, historyView); err != nil {
		return d, err
	}
	if d.ReplaceURL, err = mapOpt(b.ReplaceURL, historyView); err != nil {
		return d, err
	}
	if d.Reswap, err = mapOpt(b.Reswap, swapView); err != nil {
		return d, err
	}
	if d.Trigger, err = mapOpt(b.Trigger, triggerView); err != nil {
		return d, fmt.Errorf("trigger: %w", err)
	}
	if d.TriggerAfterSettle, err = mapOpt(b.TriggerAfterSettle, triggerView); err != nil {
		return d, fmt.Errorf("trigger_after_settle: %w", err)
	}
	if d.TriggerAfterSwap, err = mapOpt(b.TriggerAfterSwap, triggerView); err != nil {
		return d, fmt.Errorf("trigger_after_swap: %w", err)
	}
	return d, nil
}

func (d responseDoc) bundle() (*headers.ResponseBundle, error) {
	var (
		b = &headers.ResponseBundle{
			Redirect: ptrOpt(d.Redirect),
			Refresh:  d.Refresh,
			Retarget: ptrOpt(d.Retarget),
			Reselect: ptrOpt(d.Reselect),
		}
		err error
	)
	if b.Location, err = mapPtr(d.Location, locationDoc.location); err != nil {
		return nil, err
	}
	if b.PushURL, err = mapPtr(d.PushURL, historyDoc.history); err != nil {
		return nil, fmt.Errorf("push_url: %w", err)
	}
	if b.ReplaceURL, err = mapPtr(d.ReplaceURL, historyDoc.history); err != nil {
		return nil, fmt.Errorf("replace_url: %w", err)
	}
	if b.Reswap, err = mapPtr(d.Reswap, headers.ParseSwap); err != nil {
		return nil, fmt.Errorf("reswap: %w", err)
	}
	if b.Trigger, err = mapPtr(d.Trigger, triggerDoc.trigger); err != nil {
		return nil, fmt.Errorf("trigger: %w", err)
	}
	if b.TriggerAfterSettle, err = mapPtr(d.TriggerAfterSettle, triggerDoc.trigger); err != nil {
		return nil, fmt.Errorf("trigger_after_settle: %w", err)
	}
	if b.TriggerAfterSwap, err = mapPtr(d.TriggerAfterSwap, triggerDoc.trigger); err != nil {
		return nil, fmt.Errorf("trigger_after_swap: %w", err)
	}
	return b, nil
}
