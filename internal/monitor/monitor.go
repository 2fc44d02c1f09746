// Package monitor implements the Monitor Set: the linked list of
// physical outputs discovered at startup, and the notion of exactly
// one selected monitor.
package monitor

import (
	"fmt"

	"github.com/nireo/stupidwm/internal/display"
)

// Monitor is one physical output region.
type Monitor struct {
	X, Y          int
	Width, Height int
	Primary       bool
	Bar           display.WindowID
	ActiveWorkspace int
	Next          *Monitor
}

// Set is the linked list of discovered monitors plus the selected one.
type Set struct {
	Head     *Monitor
	Selected *Monitor
}

// Discover enumerates connected outputs from the Surface. The first
// discovered output becomes primary and selected. If the query yields
// no outputs, a single synthetic monitor covering the root window's
// geometry is created instead (monitors are never re-discovered after
// this call; hot-plugging is a documented non-goal).
func (s *Set) Discover(surf display.Surface, rootRect display.Rect) error {
	outputs, err := surf.QueryOutputs()
	if err != nil {
		return fmt.Errorf("discover monitors: %w", err)
	}

	s.Head = nil
	s.Selected = nil

	if len(outputs) == 0 {
		m := &Monitor{
			X: rootRect.X, Y: rootRect.Y,
			Width: rootRect.Width, Height: rootRect.Height,
			Primary: true,
		}
		s.Head = m
		s.Selected = m
		return nil
	}

	var tail *Monitor
	for i, o := range outputs {
		m := &Monitor{
			X: o.Rect.X, Y: o.Rect.Y,
			Width: o.Rect.Width, Height: o.Rect.Height,
			Primary: i == 0,
		}
		if tail == nil {
			s.Head = m
		} else {
			tail.Next = m
		}
		tail = m
		if i == 0 {
			s.Selected = m
		}
	}
	return nil
}

// Select makes m the selected monitor. Returns false if m was already
// selected. Selecting a monitor does not by itself rebind the
// workspace table's current view or repaint anything; the command
// layer that has access to both the workspace table and the focus/bar
// components performs those follow-on steps (keeping this package free
// of a dependency on workspace/focus/bar).
func (s *Set) Select(m *Monitor) bool {
	if m == nil || m == s.Selected {
		return false
	}
	s.Selected = m
	return true
}

// MonitorFor returns the monitor that should be associated with
// window. Root windows and the no-match case both return the selected
// monitor.
//
// The source this is grounded on determines monitor-for-window using
// local x, y coordinates that are read before ever being assigned,
// which makes the lookup undefined for any non-root window. This
// rewrite resolves the open question in favor of correctness: it
// derives the window's origin from the Surface instead of trusting
// uninitialized locals.
func (s *Set) MonitorFor(root, window display.WindowID, origin func(display.WindowID) (int, int, bool)) *Monitor {
	if window == root || s.Selected == nil {
		return s.Selected
	}
	x, y, ok := origin(window)
	if !ok {
		return s.Selected
	}
	for m := s.Head; m != nil; m = m.Next {
		if x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height {
			return m
		}
	}
	return s.Selected
}
