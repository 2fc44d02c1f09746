// Package dispatch implements the Event Dispatcher: the main loop that
// pulls events from the Display Surface and routes each one to the
// handler that owns its side effects.
package dispatch

import (
	"fmt"

	"github.com/nireo/stupidwm/internal/command"
	"github.com/nireo/stupidwm/internal/display"
	"github.com/nireo/stupidwm/internal/layout"
	"github.com/nireo/stupidwm/internal/wmstate"
	"github.com/nireo/stupidwm/internal/workspace"
)

// Loop owns the keybinding table and the shared state, and drives the
// single blocking event-wait call.
type Loop struct {
	state    *wmstate.State
	bindings []command.Binding
}

// New returns a Loop bound to state, dispatching key events against
// bindings in order (first match wins).
func New(state *wmstate.State, bindings []command.Binding) *Loop {
	return &Loop{state: state, bindings: bindings}
}

// Run blocks, handling events until the Surface returns an error (the
// connection closed) or the quit latch reaches Stopped. A panic inside
// a single handler is recovered and logged so one misbehaving handler
// cannot take the whole window manager down; the loop then continues
// to the next event.
func (l *Loop) Run() error {
	for {
		if l.state.Quit.Phase() == wmstate.Stopped {
			return nil
		}

		ev, err := l.state.Surf.NextEvent()
		if err != nil {
			return fmt.Errorf("dispatch: next event: %w", err)
		}

		l.dispatch(ev)

		if l.state.Quit.Phase() == wmstate.Draining && l.drained() {
			l.state.Quit.MarkStopped()
			return nil
		}
	}
}

// drained reports whether every root child has gone away, the signal
// the quit drain waits for before actually stopping.
func (l *Loop) drained() bool {
	children, err := l.state.Surf.Children(l.state.Surf.RootWindow())
	if err != nil {
		l.state.Logger.Warn("dispatch: failed to list root children during drain", "error", err)
		return false
	}
	return len(children) == 0
}

func (l *Loop) dispatch(ev display.Event) {
	defer func() {
		if r := recover(); r != nil {
			l.state.Logger.Error("dispatch: handler panicked, continuing", "recovered", r)
		}
	}()

	switch e := ev.(type) {
	case display.KeyPressEvent:
		l.handleKeyPress(e)
	case display.MapRequestEvent:
		l.handleMapRequest(e)
	case display.DestroyNotifyEvent:
		l.handleDestroyNotify(e)
	case display.EnterNotifyEvent:
		l.handleEnterNotify(e)
	case display.ConfigureRequestEvent:
		l.handleConfigureRequest(e)
	case display.ConfigureNotifyEvent:
		// Hot-plugging monitors is a documented non-goal; ignored.
	case display.ExposeEvent:
		l.handleExpose(e)
	default:
		l.state.Logger.Warn("dispatch: unrecognized event variant")
	}
}

func (l *Loop) handleKeyPress(e display.KeyPressEvent) {
	for _, b := range l.bindings {
		if b.Keysym == e.Keysym && b.Modifiers == e.Modifiers {
			if err := b.Action(l.state, b.Arg); err != nil {
				l.state.Logger.Error("dispatch: command failed", "error", err)
			}
			return
		}
	}
}

// handleMapRequest adopts a newly mapped window onto the selected
// monitor's active workspace: it is appended to the current Client
// List, subscribed for EnterNotify, mapped, tiled, and focused. A
// window already present in some workspace (unmap/remap with no
// intervening DestroyNotify) is just re-mapped, never re-appended, so
// it never ends up with two Nodes on the same window.
func (l *Loop) handleMapRequest(e display.MapRequestEvent) {
	m := l.state.Monitors.Selected
	cur := l.state.Workspaces.Current()

	for i := 0; i < workspace.Count; i++ {
		if l.state.Workspaces.List(i).Find(e.Window) != nil {
			l.state.Surf.Map(e.Window)
			return
		}
	}

	cur.Append(e.Window)
	if err := l.state.Surf.SubscribeEnter(e.Window); err != nil {
		l.state.Logger.Warn("dispatch: failed to subscribe for enter events", "window", e.Window, "error", err)
	}
	l.state.Surf.Map(e.Window)

	layout.Apply(l.state.Surf, m, cur)
	l.state.Focus.Update(cur)
}

// handleDestroyNotify removes e.Window from whichever workspace holds
// it, if any, and retiles and refocuses that workspace when it is the
// current one; a hidden workspace is left untiled. Destroy
// notifications for windows this window manager never adopted (bar
// windows, override-redirect windows, or any window absent from every
// workspace list) are a total no-op: Find across all ten lists fails
// and nothing is mutated or repainted.
func (l *Loop) handleDestroyNotify(e display.DestroyNotifyEvent) {
	for i := 0; i < workspace.Count; i++ {
		ws := l.state.Workspaces.List(i)
		if ws.Find(e.Window) == nil {
			continue
		}
		ws.Remove(e.Window)
		if ws == l.state.Workspaces.Current() {
			layout.Apply(l.state.Surf, l.state.Monitors.Selected, ws)
			l.state.Focus.Update(ws)
		}
		return
	}
}

func (l *Loop) handleEnterNotify(e display.EnterNotifyEvent) {
	if e.Root {
		return
	}
	cur := l.state.Workspaces.Current()
	n := cur.Find(e.Window)
	if n == nil {
		return
	}
	cur.Focused = n
	l.state.Focus.Update(cur)
}

// handleConfigureRequest applies the requested position and size
// verbatim; the next relayout reasserts tiling over it. Border width
// and stacking changes carried by the request are not applied.
func (l *Loop) handleConfigureRequest(e display.ConfigureRequestEvent) {
	l.state.Surf.ConfigureWindow(e.Window, e.Rect)
}

func (l *Loop) handleExpose(e display.ExposeEvent) {
	if e.Count != 0 {
		return
	}
	for m := l.state.Monitors.Head; m != nil; m = m.Next {
		if m.Bar == e.Window {
			l.state.Bar.Paint(m)
			return
		}
	}
}
