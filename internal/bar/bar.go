// Package bar implements the Bar Renderer: the per-monitor workspace
// indicator strip.
package bar

import (
	"github.com/nireo/stupidwm/internal/display"
	"github.com/nireo/stupidwm/internal/layout"
	"github.com/nireo/stupidwm/internal/monitor"
)

// tagLabels are the ten workspace tags in display order, matching the
// keybinding digits: 1..9 then 0.
var tagLabels = [10]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}

// Renderer paints workspace tags onto a monitor's bar surface.
type Renderer struct {
	surf                     display.Surface
	FocusColor, UnfocusColor uint32
}

// New returns a Renderer bound to surf with the given tag colors.
func New(surf display.Surface, focusColor, unfocusColor uint32) *Renderer {
	return &Renderer{surf: surf, FocusColor: focusColor, UnfocusColor: unfocusColor}
}

// Paint repaints m's bar: background fill, then one cell per tag,
// highlighted if the tag is m's active workspace. It is a no-op if m
// has no bar surface allocated.
//
// Bars are per-monitor, resolving the open question flagged in
// spec.md's design notes ("draw_bar paints only the selected monitor's
// bar even though each monitor has its own bar window") in favor of
// the contract the note itself calls preferred. Triggered on Expose
// for a bar window, any workspace switch, and any monitor selection
// change.
func (r *Renderer) Paint(m *monitor.Monitor) {
	if m.Bar == 0 {
		return
	}

	r.surf.FillRect(m.Bar, display.Rect{X: 0, Y: 0, Width: m.Width, Height: layout.BarHeight}, r.UnfocusColor)

	x := 0
	ascent := r.surf.FontAscent()
	baseline := layout.BarHeight - (layout.BarHeight-ascent)/2

	for i, label := range tagLabels {
		tw := r.surf.TextWidth(label)
		cellWidth := tw + 10

		bg, fg := r.UnfocusColor, r.FocusColor
		if i == m.ActiveWorkspace {
			bg, fg = r.FocusColor, r.UnfocusColor
		}

		r.surf.FillRect(m.Bar, display.Rect{X: x, Y: 0, Width: cellWidth, Height: layout.BarHeight}, bg)
		r.surf.DrawText(m.Bar, x+5, baseline, label, fg)

		x += cellWidth
	}
}
