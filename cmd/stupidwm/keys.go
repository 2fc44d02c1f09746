package main

import (
	"github.com/nireo/stupidwm/internal/client"
	"github.com/nireo/stupidwm/internal/command"
	"github.com/nireo/stupidwm/internal/focus"
	"github.com/nireo/stupidwm/internal/layout"
	"github.com/nireo/stupidwm/internal/wmstate"
)

// X11 modifier and keysym values a keybinding table needs. Pulled in
// as literals rather than an xproto/keysymdef import: this table is
// build-time data (spec.md classifies the keybinding schema as in
// scope but its contents as out of scope), not a place that should
// reach back into the display package's wire-level concerns.
const (
	modShift = 1 << 0
	mod4     = 1 << 6 // "Super"

	xkReturn = 0xff0d
	xkQ      = 0x71
	xkC      = 0x63
	xkJ      = 0x6a
	xkK      = 0x6b
	xkH      = 0x68
	xkL      = 0x6c
	xkP      = 0x70
	xkComma  = 0x2c

	xk1 = 0x31
	xk2 = 0x32
	xk3 = 0x33
	xk4 = 0x34
	xk5 = 0x35
	xk6 = 0x36
	xk7 = 0x37
	xk8 = 0x38
	xk9 = 0x39
	xk0 = 0x30
)

var workspaceKeys = [10]uint32{xk1, xk2, xk3, xk4, xk5, xk6, xk7, xk8, xk9, xk0}

// defaultBindings is the built-in keybinding table. Per spec.md §6 the
// table's schema (Binding{Modifiers, Keysym, Action, Arg}) is in
// scope; its contents are build-time configuration the way dwm's
// config.h is, so there is no YAML equivalent.
func defaultBindings() []command.Binding {
	var bindings []command.Binding

	bindings = append(bindings,
		command.Binding{Modifiers: mod4, Keysym: xkReturn, Action: command.Spawn, Arg: command.Arg{Kind: command.ArgCommand, Argv: []string{"xterm"}}},
		command.Binding{Modifiers: mod4, Keysym: xkP, Action: command.Spawn, Arg: command.Arg{Kind: command.ArgCommand, Argv: []string{"dmenu_run"}}},
		command.Binding{Modifiers: mod4 | modShift, Keysym: xkC, Action: command.KillCurrent},
		command.Binding{Modifiers: mod4 | modShift, Keysym: xkQ, Action: command.Quit},
		command.Binding{Modifiers: mod4, Keysym: xkComma, Action: command.FocusNextMonitor},
		command.Binding{Modifiers: mod4, Keysym: xkJ, Action: moveFocus((*focus.Controller).Next)},
		command.Binding{Modifiers: mod4, Keysym: xkK, Action: moveFocus((*focus.Controller).Prev)},
		command.Binding{Modifiers: mod4, Keysym: xkH, Action: moveFocus((*focus.Controller).First)},
		command.Binding{Modifiers: mod4, Keysym: xkL, Action: moveFocus((*focus.Controller).ToStack)},
		command.Binding{Modifiers: mod4 | modShift, Keysym: xkReturn, Action: moveFocus((*focus.Controller).SwapWithMaster)},
	)

	for i, keysym := range workspaceKeys {
		bindings = append(bindings,
			command.Binding{Modifiers: mod4, Keysym: keysym, Action: command.ChangeWorkspace, Arg: command.Arg{Kind: command.ArgWorkspace, Workspace: i}},
			command.Binding{Modifiers: mod4 | modShift, Keysym: keysym, Action: command.ClientToWorkspace, Arg: command.Arg{Kind: command.ArgWorkspace, Workspace: i}},
		)
	}

	return bindings
}

// moveFocus adapts a focus.Controller method, which operates directly
// on the active Client List, into a command.Action so the keybinding
// table can bind it like any other command.
func moveFocus(fn func(c *focus.Controller, l *client.List)) command.Action {
	return func(state *wmstate.State, arg command.Arg) error {
		cur := state.Workspaces.Current()
		fn(state.Focus, cur)
		layout.Apply(state.Surf, state.Monitors.Selected, cur)
		state.Focus.Update(cur)
		return nil
	}
}
