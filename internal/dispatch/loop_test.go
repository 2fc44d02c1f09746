package dispatch

import (
	"log/slog"
	"testing"

	"github.com/nireo/stupidwm/internal/bar"
	"github.com/nireo/stupidwm/internal/command"
	"github.com/nireo/stupidwm/internal/display"
	"github.com/nireo/stupidwm/internal/displaytest"
	"github.com/nireo/stupidwm/internal/focus"
	"github.com/nireo/stupidwm/internal/monitor"
	"github.com/nireo/stupidwm/internal/wmstate"
	"github.com/nireo/stupidwm/internal/workspace"
)

func newTestLoop(mock *displaytest.Mock, bindings []command.Binding) *Loop {
	m := &monitor.Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	set := &monitor.Set{Head: m, Selected: m}
	state := &wmstate.State{
		Surf:       mock,
		Monitors:   set,
		Workspaces: workspace.New(),
		Focus:      focus.New(mock, 0xF0F0F0, 0x282828),
		Bar:        bar.New(mock, 0xF0F0F0, 0x282828),
		Spawner:    nil,
		Quit:       &wmstate.QuitFlag{},
		Logger:     slog.Default(),
	}
	return New(state, bindings)
}

// S2 (single), at the dispatcher: a newly mapped window becomes focused
// and is the sole list member.
func TestMapRequestAdoptsAndFocusesWindow(t *testing.T) {
	mock := displaytest.NewMock(1)
	mock.Events = []display.Event{display.MapRequestEvent{Window: 7}}
	l := newTestLoop(mock, nil)

	ev, err := l.state.Surf.NextEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.dispatch(ev)

	cur := l.state.Workspaces.Current()
	if cur.Len() != 1 || cur.Head.Window != 7 {
		t.Fatalf("expected window 7 to be the sole member")
	}
	if cur.Focused != cur.Head {
		t.Fatalf("expected the new window to be focused")
	}
	if mock.CountByName("Map") != 1 {
		t.Fatalf("expected the window to be mapped")
	}
	if mock.CountByName("MoveResize") != 1 {
		t.Fatalf("expected a single-window relayout")
	}
}

func TestDestroyNotifyForUnmanagedWindowIsNoop(t *testing.T) {
	// S5: destroying a window stupidwm never adopted must be a total no-op.
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)
	l.state.Workspaces.Current().Append(1)

	l.dispatch(display.DestroyNotifyEvent{Window: 999})

	if l.state.Workspaces.Current().Len() != 1 {
		t.Fatalf("expected the unrelated client list to be untouched")
	}
	if len(mock.Calls) != 0 {
		t.Fatalf("expected no surface calls for an unmanaged destroy, got %v", mock.CallNames())
	}
}

func TestDestroyNotifyRemovesFromCurrentWorkspaceAndRetiles(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)
	cur := l.state.Workspaces.Current()
	cur.Append(1)
	cur.Append(2)

	l.dispatch(display.DestroyNotifyEvent{Window: 1})

	if cur.Len() != 1 || cur.Head.Window != 2 {
		t.Fatalf("expected window 1 to be removed, window 2 to remain")
	}
	if mock.CountByName("MoveResize") == 0 {
		t.Fatalf("expected a relayout after removal")
	}
}

func TestDestroyNotifyOnInactiveWorkspaceSkipsRetile(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)
	l.state.Workspaces.List(5).Append(3)

	l.dispatch(display.DestroyNotifyEvent{Window: 3})

	if l.state.Workspaces.List(5).Len() != 0 {
		t.Fatalf("expected window 3 to be removed from workspace 5")
	}
	if len(mock.Calls) != 0 {
		t.Fatalf("expected no repaint since workspace 5 is not the active view")
	}
}

func TestEnterNotifyRefocusesTrackedWindow(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)
	cur := l.state.Workspaces.Current()
	cur.Append(1)
	cur.Append(2)
	cur.Focused = cur.Head

	l.dispatch(display.EnterNotifyEvent{Window: 2})

	if cur.Focused.Window != 2 {
		t.Fatalf("expected focus to follow the pointer to window 2")
	}
}

func TestEnterNotifyIgnoresRootAndUnknownWindows(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)
	cur := l.state.Workspaces.Current()
	cur.Append(1)
	cur.Focused = cur.Head

	l.dispatch(display.EnterNotifyEvent{Window: 1, Root: true})
	l.dispatch(display.EnterNotifyEvent{Window: 999})

	if cur.Focused.Window != 1 {
		t.Fatalf("expected focus to remain on window 1")
	}
}

func TestConfigureRequestPassesThroughVerbatim(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)

	l.dispatch(display.ConfigureRequestEvent{Window: 4, Rect: display.Rect{X: 1, Y: 2, Width: 3, Height: 4}})

	if mock.CountByName("ConfigureWindow") != 1 {
		t.Fatalf("expected the request to be honored verbatim")
	}
}

func TestConfigureNotifyIsIgnored(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)

	l.dispatch(display.ConfigureNotifyEvent{Window: 4})

	if len(mock.Calls) != 0 {
		t.Fatalf("expected ConfigureNotify to be a total no-op")
	}
}

func TestExposeRepaintsOnlyOnFinalCount(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)
	l.state.Monitors.Head.Bar = 55

	l.dispatch(display.ExposeEvent{Window: 55, Count: 2})
	if len(mock.Calls) != 0 {
		t.Fatalf("expected no repaint while more Expose events are pending")
	}

	l.dispatch(display.ExposeEvent{Window: 55, Count: 0})
	if mock.CountByName("FillRect") == 0 {
		t.Fatalf("expected a repaint once the damage region drains")
	}
}

func TestKeyPressDispatchesMatchingBindingOnly(t *testing.T) {
	mock := displaytest.NewMock(1)
	called := 0
	bindings := []command.Binding{
		{Modifiers: 1, Keysym: 'a', Action: func(*wmstate.State, command.Arg) error { called++; return nil }},
		{Modifiers: 1, Keysym: 'b', Action: func(*wmstate.State, command.Arg) error { t.Fatalf("wrong binding fired"); return nil }},
	}
	l := newTestLoop(mock, bindings)

	l.dispatch(display.KeyPressEvent{Keysym: 'a', Modifiers: 1})

	if called != 1 {
		t.Fatalf("expected exactly one matching binding to fire")
	}
}

func TestKeyPressWithNoMatchingBindingIsNoop(t *testing.T) {
	mock := displaytest.NewMock(1)
	l := newTestLoop(mock, nil)
	l.dispatch(display.KeyPressEvent{Keysym: 'z', Modifiers: 0})
	if len(mock.Calls) != 0 {
		t.Fatalf("expected an unbound key press to be a total no-op")
	}
}

// S6: the loop stops once quit has latched and the client set drains.
func TestRunStopsAfterQuitDrainCompletes(t *testing.T) {
	mock := displaytest.NewMock(1)
	mock.Events = []display.Event{
		display.KeyPressEvent{Keysym: 'q', Modifiers: 0},
	}
	bindings := []command.Binding{
		{Keysym: 'q', Action: command.Quit},
	}
	l := newTestLoop(mock, bindings)

	if err := l.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.state.Quit.Phase() != wmstate.Stopped {
		t.Fatalf("expected the quit flag to reach Stopped")
	}
}

func TestDispatchRecoversFromHandlerPanic(t *testing.T) {
	mock := displaytest.NewMock(1)
	bindings := []command.Binding{
		{Keysym: 'p', Action: func(*wmstate.State, command.Arg) error { panic("boom") }},
	}
	l := newTestLoop(mock, bindings)

	// Must not propagate the panic to the caller.
	l.dispatch(display.KeyPressEvent{Keysym: 'p'})
}
