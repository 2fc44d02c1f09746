// Package displaytest provides a recording mock of display.Surface for
// exercising the window-management state machine without a real X
// server, per spec.md's framing of the testable properties as
// "verifiable via a mock Display Surface that records calls."
package displaytest

import (
	"fmt"

	"github.com/nireo/stupidwm/internal/display"
)

// Call records one invocation against the mock Surface.
type Call struct {
	Name   string
	Window display.WindowID
	Rect   display.Rect
	Value  int // border width, or color, depending on Name
}

// Mock is a Surface that records every call it receives and replays a
// queued Event stream from NextEvent.
type Mock struct {
	Calls []Call

	Root     display.WindowID
	Events   []display.Event
	eventPos int

	OutputsFn func() ([]display.Output, error)
	ChildrenFn func(root display.WindowID) ([]display.WindowID, error)

	childSet map[display.WindowID]bool
}

// NewMock returns a Mock with the given root window.
func NewMock(root display.WindowID) *Mock {
	return &Mock{Root: root, childSet: map[display.WindowID]bool{}}
}

func (m *Mock) record(c Call) { m.Calls = append(m.Calls, c) }

func (m *Mock) NextEvent() (display.Event, error) {
	if m.eventPos >= len(m.Events) {
		return nil, fmt.Errorf("displaytest: event stream exhausted")
	}
	ev := m.Events[m.eventPos]
	m.eventPos++
	return ev, nil
}

func (m *Mock) RootWindow() display.WindowID { return m.Root }

func (m *Mock) Children(root display.WindowID) ([]display.WindowID, error) {
	if m.ChildrenFn != nil {
		return m.ChildrenFn(root)
	}
	out := make([]display.WindowID, 0, len(m.childSet))
	for w, alive := range m.childSet {
		if alive {
			out = append(out, w)
		}
	}
	return out, nil
}

// TrackChild registers w as a root child for the purposes of the
// default Children implementation, used by quit-drain scenarios.
func (m *Mock) TrackChild(w display.WindowID) { m.childSet[w] = true }

// UntrackChild removes w, simulating the window's destruction.
func (m *Mock) UntrackChild(w display.WindowID) { delete(m.childSet, w) }

func (m *Mock) Map(w display.WindowID)   { m.record(Call{Name: "Map", Window: w}) }
func (m *Mock) Unmap(w display.WindowID) { m.record(Call{Name: "Unmap", Window: w}) }
func (m *Mock) MoveResize(w display.WindowID, r display.Rect) {
	m.record(Call{Name: "MoveResize", Window: w, Rect: r})
}
func (m *Mock) ConfigureWindow(w display.WindowID, r display.Rect) {
	m.record(Call{Name: "ConfigureWindow", Window: w, Rect: r})
}
func (m *Mock) Raise(w display.WindowID) { m.record(Call{Name: "Raise", Window: w}) }
func (m *Mock) SetBorderWidth(w display.WindowID, px int) {
	m.record(Call{Name: "SetBorderWidth", Window: w, Value: px})
}
func (m *Mock) SetBorderColor(w display.WindowID, color uint32) {
	m.record(Call{Name: "SetBorderColor", Window: w, Value: int(color)})
}
func (m *Mock) SetInputFocus(w display.WindowID) {
	m.record(Call{Name: "SetInputFocus", Window: w})
}
func (m *Mock) SubscribeEnter(w display.WindowID) error {
	m.record(Call{Name: "SubscribeEnter", Window: w})
	return nil
}
func (m *Mock) GrabKey(keysym uint32, modifiers uint16) error {
	m.record(Call{Name: "GrabKey", Value: int(keysym)})
	return nil
}
func (m *Mock) SendDeleteWindow(w display.WindowID) error {
	m.record(Call{Name: "SendDeleteWindow", Window: w})
	return nil
}
func (m *Mock) QueryOutputs() ([]display.Output, error) {
	if m.OutputsFn != nil {
		return m.OutputsFn()
	}
	return nil, nil
}
func (m *Mock) CreateBar(r display.Rect) (display.WindowID, error) {
	m.record(Call{Name: "CreateBar", Rect: r})
	return display.WindowID(1000 + len(m.Calls)), nil
}
func (m *Mock) FillRect(bar display.WindowID, r display.Rect, color uint32) {
	m.record(Call{Name: "FillRect", Window: bar, Rect: r, Value: int(color)})
}
func (m *Mock) DrawText(bar display.WindowID, x, y int, text string, color uint32) {
	m.record(Call{Name: "DrawText", Window: bar, Rect: display.Rect{X: x, Y: y, Width: len(text)}, Value: int(color)})
}
func (m *Mock) TextWidth(text string) int { return len(text) * 6 }
func (m *Mock) FontAscent() int           { return 12 }
func (m *Mock) Close()                    { m.record(Call{Name: "Close"}) }

// CallNames returns the Name of every recorded call, in order, for
// terse assertions.
func (m *Mock) CallNames() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Name
	}
	return out
}

// CountByName returns how many times a call of the given name was made.
func (m *Mock) CountByName(name string) int {
	n := 0
	for _, c := range m.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}
