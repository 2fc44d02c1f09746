// Package layout implements the Layout Engine: given a monitor and its
// active client list, it computes master/stack tile geometry and
// applies it through the Display Surface.
package layout

import (
	"github.com/nireo/stupidwm/internal/client"
	"github.com/nireo/stupidwm/internal/display"
	"github.com/nireo/stupidwm/internal/monitor"
)

// Gap is the pixel spacing left between tiles and screen edges. It
// defaults to the built-in config value and is overwritten once at
// startup by Configure; tests that want the exact default geometry of
// spec.md §8's S2/S3 scenarios can rely on this default without calling
// Configure first.
var Gap = 10

// BarHeight is the pixel height reserved at the top of each monitor
// for its workspace bar. Same Configure-at-startup treatment as Gap.
var BarHeight = 20

// MasterFraction is the share of monitor width given to the master
// tile when two or more clients are present.
const MasterFraction = 0.55

// Configure overwrites Gap and BarHeight from a loaded configuration.
// main calls this once, before the first Apply, with the values from
// config.Config.
func Configure(gap, barHeight int) {
	Gap = gap
	BarHeight = barHeight
}

// Apply computes and issues the move/resize sequence for every client
// in l against monitor m. It is a pure function of (m, l) through the
// Surface: calling it twice with identical inputs issues an identical
// sequence of calls.
func Apply(surf display.Surface, m *monitor.Monitor, l *client.List) {
	n := l.Len()
	if n == 0 {
		return
	}

	top := m.Y + BarHeight + Gap
	left := m.X + Gap

	if n == 1 {
		surf.MoveResize(l.Head.Window, display.Rect{
			X: left, Y: top,
			Width:  m.Width - 3*Gap,
			Height: m.Height - 3*Gap - BarHeight,
		})
		return
	}

	master := int(MasterFraction * float64(m.Width))
	surf.MoveResize(l.Head.Window, display.Rect{
		X: left, Y: top,
		Width:  master,
		Height: m.Height - 2*Gap - BarHeight,
	})

	stackCount := n - 1
	stackHeight := m.Height / stackCount
	stackWidth := m.Width - master - 5*Gap
	stackX := m.X + master + 3*Gap

	y := top
	for node := l.Head.Next(); node != nil; node = node.Next() {
		surf.MoveResize(node.Window, display.Rect{
			X: stackX, Y: y,
			Width:  stackWidth,
			Height: stackHeight - 2*Gap,
		})
		y += stackHeight
	}
}
