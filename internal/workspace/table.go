// Package workspace implements the Workspace Table: ten fixed client
// lists shared across all monitors, plus a "current" cursor that tracks
// whichever workspace the selected monitor has active.
//
// Workspaces are global, not per-monitor: spec.md's data model states
// a single table is shared across monitors and that selecting a
// monitor rebinds the current view to that monitor's active workspace
// index. This rewrite implements exactly that model rather than the
// competing Monitor.workspaces[] variant the source also shows in one
// revision; see DESIGN.md for the rejected alternative.
package workspace

import "github.com/nireo/stupidwm/internal/client"

// Count is the fixed number of virtual workspaces.
const Count = 10

// Table owns all Client nodes for every workspace. Exactly one slot is
// "current" at a time: the one bound to the selected monitor's active
// workspace index.
type Table struct {
	slots   [Count]*client.List
	current *client.List
}

// New creates a Table with ten empty workspaces, workspace 0 current.
func New() *Table {
	t := &Table{}
	for i := range t.slots {
		t.slots[i] = &client.List{}
	}
	t.current = t.slots[0]
	return t
}

// Current returns the live list: the one handlers mutate directly for
// MapRequest/DestroyNotify/EnterNotify and the one Layout/Focus/Bar act
// on for the selected monitor.
func (t *Table) Current() *client.List { return t.current }

// List returns the list for workspace idx directly, without making it
// current. Used by client_to_workspace to append into a workspace the
// selected monitor is not currently showing.
func (t *Table) List(idx int) *client.List { return t.slots[idx] }

// Save records the current live list under slot idx. Invoked before
// switching away from workspace idx so its state survives the switch.
func (t *Table) Save(idx int) { t.slots[idx] = t.current }

// Load makes slot idx the live list. The caller is responsible for
// updating the selected monitor's active-workspace index to match;
// Table has no notion of monitors to avoid a dependency cycle.
func (t *Table) Load(idx int) { t.current = t.slots[idx] }
