// Package command implements the Command Layer: the operations bound
// to keybindings. Every command takes the shared wmstate.State and an
// Arg describing its keybinding argument.
package command

import (
	"fmt"

	"github.com/nireo/stupidwm/internal/layout"
	"github.com/nireo/stupidwm/internal/wmstate"
)

// ArgKind distinguishes the two shapes a keybinding argument can take,
// modeling the source's tagged union as an explicit sum type per
// spec.md's design notes rather than leaking a raw union into the core.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgCommand
	ArgWorkspace
)

// Arg is a keybinding's argument: either a command vector to spawn or
// a workspace index, never both.
type Arg struct {
	Kind      ArgKind
	Argv      []string
	Workspace int
}

// Action is the function a keybinding invokes.
type Action func(state *wmstate.State, arg Arg) error

// Binding pairs a key combination with the action it triggers.
type Binding struct {
	Modifiers uint16
	Keysym    uint32
	Action    Action
	Arg       Arg
}

// Spawn launches argv as a detached child via the Spawner and returns
// immediately.
func Spawn(state *wmstate.State, arg Arg) error {
	return state.Spawner.Spawn(arg.Argv)
}

// KillCurrent asks the focused client to close itself via
// WM_DELETE_WINDOW. It is not forcibly destroyed; a client that
// ignores the request is not currently recoverable (documented
// limitation, spec.md §7 ClientUnresponsive).
func KillCurrent(state *wmstate.State, arg Arg) error {
	l := state.Workspaces.Current()
	if l.Focused == nil {
		return nil
	}
	return state.Surf.SendDeleteWindow(l.Focused.Window)
}

// ChangeWorkspace switches the selected monitor to workspace
// arg.Workspace: unmaps every client of the current workspace, saves
// and loads the table, maps the new workspace's clients, relayouts,
// refocuses, and repaints the bar.
func ChangeWorkspace(state *wmstate.State, arg Arg) error {
	m := state.Monitors.Selected
	idx := arg.Workspace
	if idx == m.ActiveWorkspace {
		return nil
	}

	cur := state.Workspaces.Current()
	for n := cur.Head; n != nil; n = n.Next() {
		state.Surf.Unmap(n.Window)
	}

	state.Workspaces.Save(m.ActiveWorkspace)
	state.Workspaces.Load(idx)
	m.ActiveWorkspace = idx

	next := state.Workspaces.Current()
	for n := next.Head; n != nil; n = n.Next() {
		state.Surf.Map(n.Window)
	}

	layout.Apply(state.Surf, m, next)
	state.Focus.Update(next)
	state.Bar.Paint(m)
	return nil
}

// ClientToWorkspace moves the focused client to workspace
// arg.Workspace without following it there: it is appended to the
// destination workspace's list directly (bypassing "current", per the
// load->append->save pattern in spec.md §4.H), then removed and
// unmapped from the present workspace.
func ClientToWorkspace(state *wmstate.State, arg Arg) error {
	m := state.Monitors.Selected
	idx := arg.Workspace
	cur := state.Workspaces.Current()

	if idx == m.ActiveWorkspace || cur.Focused == nil {
		return nil
	}

	win := cur.Focused.Window
	state.Workspaces.List(idx).Append(win)
	cur.Remove(win)
	state.Surf.Unmap(win)

	layout.Apply(state.Surf, m, cur)
	state.Focus.Update(cur)
	state.Bar.Paint(m)
	return nil
}

// FocusNextMonitor advances the selected monitor to its successor in
// the monitor list, if any, rebinding the workspace table's current
// view and repainting focus/bar for the newly selected monitor.
func FocusNextMonitor(state *wmstate.State, arg Arg) error {
	m := state.Monitors.Selected
	if m == nil || m.Next == nil {
		return nil
	}
	next := m.Next
	if !state.Monitors.Select(next) {
		return nil
	}

	state.Workspaces.Load(next.ActiveWorkspace)
	state.Focus.Update(state.Workspaces.Current())
	state.Bar.Paint(next)
	return nil
}

// Quit latches the shutdown flag and broadcasts WM_DELETE_WINDOW to
// every child of root. It is idempotent: once latched, a repeated quit
// does not re-broadcast. The dispatcher is responsible for noticing
// when the child set empties and transitioning DRAINING -> STOPPED.
func Quit(state *wmstate.State, arg Arg) error {
	if !state.Quit.Latch() {
		return nil
	}

	children, err := state.Surf.Children(state.Surf.RootWindow())
	if err != nil {
		return fmt.Errorf("quit: list root children: %w", err)
	}
	for _, w := range children {
		if err := state.Surf.SendDeleteWindow(w); err != nil {
			state.Logger.Warn("quit: failed to request close", "window", w, "error", err)
		}
	}
	return nil
}
