// Package focus implements the Focus Controller: border/keyboard focus
// maintenance and cursor movement within a workspace's client list.
package focus

import (
	"github.com/nireo/stupidwm/internal/client"
	"github.com/nireo/stupidwm/internal/display"
)

// BorderWidth is the pixel width applied to the focused client's border.
const BorderWidth = 5

// Controller paints borders and directs keyboard focus through a
// Surface. It carries no per-workspace state of its own; every
// operation takes the list it should act on.
type Controller struct {
	surf              display.Surface
	FocusColor        uint32
	UnfocusColor      uint32
}

// New returns a Controller bound to surf with the given border colors.
func New(surf display.Surface, focusColor, unfocusColor uint32) *Controller {
	return &Controller{surf: surf, FocusColor: focusColor, UnfocusColor: unfocusColor}
}

// Update repaints every client's border in l and directs keyboard
// input to the focused one, raising it above its siblings.
func (c *Controller) Update(l *client.List) {
	for n := l.Head; n != nil; n = n.Next() {
		if n == l.Focused {
			c.surf.SetBorderWidth(n.Window, BorderWidth)
			c.surf.SetBorderColor(n.Window, c.FocusColor)
			c.surf.Raise(n.Window)
			c.surf.SetInputFocus(n.Window)
		} else {
			c.surf.SetBorderColor(n.Window, c.UnfocusColor)
		}
	}
}

// First moves focus to the master (move_left).
func (c *Controller) First(l *client.List) {
	if l.Focused == nil {
		return
	}
	l.Focused = l.Head
}

// ToStack moves focus from the master to the first stack client, if
// any (move_right).
func (c *Controller) ToStack(l *client.List) {
	if l.Focused == nil {
		return
	}
	if l.Focused == l.Head && l.Head.Next() != nil {
		l.Focused = l.Head.Next()
	}
}

// Prev moves focus to the preceding stack client (move_up).
func (c *Controller) Prev(l *client.List) {
	if l.Focused == nil {
		return
	}
	if l.Focused != l.Head && l.Focused.Prev() != nil {
		l.Focused = l.Focused.Prev()
	}
}

// Next moves focus to the following client (move_down).
func (c *Controller) Next(l *client.List) {
	if l.Focused == nil {
		return
	}
	if l.Focused.Next() != nil {
		l.Focused = l.Focused.Next()
	}
}

// SwapWithMaster exchanges the window handles (not the nodes) of the
// master and the focused client, then focuses the master slot. It is a
// no-op if focus is unset or already on the master.
func (c *Controller) SwapWithMaster(l *client.List) {
	if l.Focused == nil || l.Focused == l.Head {
		return
	}
	l.Head.Window, l.Focused.Window = l.Focused.Window, l.Head.Window
	l.Focused = l.Head
}
