// Package wmstate carries the single context threaded through every
// event handler and command, replacing the source's global display,
// monitor set, workspace table, selected-monitor, and quit-flag
// singletons (see spec.md's design notes) with one struct the event
// loop owns and lends a mutable borrow of for the duration of one
// dispatch.
package wmstate

import (
	"log/slog"

	"github.com/nireo/stupidwm/internal/bar"
	"github.com/nireo/stupidwm/internal/display"
	"github.com/nireo/stupidwm/internal/focus"
	"github.com/nireo/stupidwm/internal/monitor"
	"github.com/nireo/stupidwm/internal/spawner"
	"github.com/nireo/stupidwm/internal/workspace"
)

// Phase is one of the three quit-drain states.
type Phase int

const (
	Running Phase = iota
	Draining
	Stopped
)

// QuitFlag is the two-phase shutdown latch described in spec.md
// §4.H.quit: RUNNING -> DRAINING on the first quit command, DRAINING ->
// STOPPED once the root child set is empty.
type QuitFlag struct {
	phase Phase
}

// Phase reports the current state.
func (q *QuitFlag) Phase() Phase { return q.phase }

// Latch transitions RUNNING -> DRAINING. A no-op once already past
// RUNNING, so a repeated quit command does not re-broadcast deletes.
func (q *QuitFlag) Latch() bool {
	if q.phase != Running {
		return false
	}
	q.phase = Draining
	return true
}

// MarkStopped transitions DRAINING -> STOPPED.
func (q *QuitFlag) MarkStopped() { q.phase = Stopped }

// State is the context passed to every handler and command.
type State struct {
	Surf       display.Surface
	Monitors   *monitor.Set
	Workspaces *workspace.Table
	Focus      *focus.Controller
	Bar        *bar.Renderer
	Spawner    spawner.Spawner
	Quit       *QuitFlag
	Logger     *slog.Logger
}
