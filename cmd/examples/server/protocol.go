package server

import "errors"

// ErrUnknownEvent is returned when an app receives an event it has no
// transition for.
var ErrUnknownEvent = errors.New("unknown event")

// Event is a user action reported by the page runtime.
type Event struct {
	Type  string   `json:"type"`            // action name, taken from the element's data-event
	Value string   `json:"value,omitempty"` // current field value for input/change/enter bindings
	Index int      `json:"index,omitempty"` // list position for delegated actions
	Files []string `json:"files,omitempty"` // selected file names
}

// Patch describes one DOM change. Nil fields are left untouched, so a patch
// never overwrites what it does not mention.
type Patch struct {
	Selector string  `json:"selector"`
	Text     *string `json:"text,omitempty"`
	Value    *string `json:"value,omitempty"`
	Disabled *bool   `json:"disabled,omitempty"`
	Style    *string `json:"style,omitempty"` // empty string removes the attribute
	HTML     *string `json:"html,omitempty"`
}

// Frame types sent from server to page.
const (
	FrameReady  = "ready"
	FrameUpdate = "update"
	FrameError  = "error"
)

// Frame is a server to page message.
type Frame struct {
	Type    string  `json:"type"`
	Session string  `json:"session,omitempty"`
	Seq     int     `json:"seq,omitempty"` // number of events handled so far
	Patches []Patch `json:"patches,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func setText(selector, text string) Patch {
	return Patch{Selector: selector, Text: ptr(text)}
}

func setValue(selector, value string) Patch {
	return Patch{Selector: selector, Value: ptr(value)}
}

func setHTML(selector, html string) Patch {
	return Patch{Selector: selector, HTML: ptr(html)}
}
