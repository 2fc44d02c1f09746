// Package x11display is the concrete Display Surface: it wraps an
// xgbutil connection and translates raw X11 events into the
// display.Event variants the core state machine consumes. Nothing
// outside this package ever touches an xgb/xproto type.
package x11display

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/nireo/stupidwm/internal/display"
)

// Surface is the xgbutil-backed implementation of display.Surface.
type Surface struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  *slog.Logger

	gc      xproto.Gcontext
	font    xproto.Font
	ascent  int
	charW   map[rune]int
	barWins map[display.WindowID]bool
}

// Open connects to the X server named by the DISPLAY environment
// variable, initializes RandR and xfixes, and grabs substructure
// redirection on the root window the way every reparenting-free tiler
// in the pack does it (grounded on internal/x11/connection.go's
// xgbutil.NewConn + keybind.Initialize sequence).
func Open(fontName string) (*Surface, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11display: connect: %w", err)
	}
	keybind.Initialize(xu)

	if err := randr.Init(xu.Conn()); err != nil {
		return nil, fmt.Errorf("x11display: randr init: %w", err)
	}
	if err := xfixes.Init(xu.Conn()); err != nil {
		return nil, fmt.Errorf("x11display: xfixes init: %w", err)
	}
	if _, err := xfixes.QueryVersion(xu.Conn(), 5, 0).Reply(); err != nil {
		return nil, fmt.Errorf("x11display: xfixes query version: %w", err)
	}

	root := xu.RootWin()
	err = xproto.ChangeWindowAttributesChecked(xu.Conn(), root, xproto.CwEventMask, []uint32{
		uint32(xproto.EventMaskSubstructureRedirect |
			xproto.EventMaskSubstructureNotify |
			xproto.EventMaskStructureNotify),
	}).Check()
	if err != nil {
		return nil, fmt.Errorf("x11display: another window manager is already running: %w", err)
	}

	s := &Surface{
		xu:      xu,
		root:    root,
		charW:   map[rune]int{},
		barWins: map[display.WindowID]bool{},
	}

	if err := s.loadFont(fontName); err != nil {
		return nil, fmt.Errorf("x11display: load font %q: %w", fontName, err)
	}
	gc, err := xproto.NewGcontextId(xu.Conn())
	if err != nil {
		return nil, fmt.Errorf("x11display: allocate gcontext: %w", err)
	}
	if err := xproto.CreateGCChecked(xu.Conn(), gc, xproto.Drawable(root), xproto.GcFont, []uint32{uint32(s.font)}).Check(); err != nil {
		return nil, fmt.Errorf("x11display: create gcontext: %w", err)
	}
	s.gc = gc

	return s, nil
}

// SetLogger attaches a logger used for non-fatal per-call warnings.
func (s *Surface) SetLogger(l *slog.Logger) { s.log = l }

func (s *Surface) loadFont(name string) error {
	font, err := xproto.NewFontId(s.xu.Conn())
	if err != nil {
		return err
	}
	if err := xproto.OpenFontChecked(s.xu.Conn(), font, uint16(len(name)), name).Check(); err != nil {
		// Fall back to the server's built-in "fixed" font rather than
		// failing startup over a missing config font.
		name = "fixed"
		if err := xproto.OpenFontChecked(s.xu.Conn(), font, uint16(len(name)), name).Check(); err != nil {
			return err
		}
	}
	s.font = font

	info, err := xproto.QueryFont(s.xu.Conn(), xproto.Fontable(font)).Reply()
	if err != nil {
		return err
	}
	s.ascent = int(info.FontAscent)
	return nil
}

func (s *Surface) NextEvent() (display.Event, error) {
	for {
		ev, xerr := s.xu.Conn().WaitForEvent()
		if xerr != nil {
			return nil, fmt.Errorf("x11display: wait for event: %w", xerr)
		}
		if ev == nil {
			return nil, fmt.Errorf("x11display: connection closed")
		}

		translated, ok := s.translate(ev)
		if ok {
			return translated, nil
		}
		// Events this WM does not model (PropertyNotify, etc.) are
		// swallowed here rather than surfaced as an unrecognized variant.
	}
}

func (s *Surface) translate(ev xgbutil.XEvent) (display.Event, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		mods, keysym := s.resolveKeyPress(e)
		return display.KeyPressEvent{Keysym: keysym, Modifiers: mods}, true
	case xproto.MapRequestEvent:
		return display.MapRequestEvent{Window: display.WindowID(e.Window)}, true
	case xproto.DestroyNotifyEvent:
		return display.DestroyNotifyEvent{Window: display.WindowID(e.Window)}, true
	case xproto.EnterNotifyEvent:
		return display.EnterNotifyEvent{
			Window: display.WindowID(e.Event),
			Root:   e.Event == s.root,
		}, true
	case xproto.ConfigureRequestEvent:
		return display.ConfigureRequestEvent{
			Window:      display.WindowID(e.Window),
			Rect:        display.Rect{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)},
			BorderWidth: int(e.BorderWidth),
		}, true
	case xproto.ConfigureNotifyEvent:
		return display.ConfigureNotifyEvent{Window: display.WindowID(e.Window)}, true
	case xproto.ExposeEvent:
		return display.ExposeEvent{Window: display.WindowID(e.Window), Count: int(e.Count)}, true
	default:
		return nil, false
	}
}

// resolveKeyPress translates a raw keycode into a keysym using
// xgbutil/keybind, and normalizes the modifier mask by stripping the
// lock modifiers keybind.Initialize already taught xevent to ignore
// (grounded on internal/hotkeys/handler.go's configureIgnoreMods).
func (s *Surface) resolveKeyPress(e xproto.KeyPressEvent) (uint16, uint32) {
	keysym := keybind.KeysymGet(s.xu, e.Detail, 0)
	mods := e.State
	for _, ignored := range xevent.IgnoreMods {
		mods &^= ignored
	}
	return mods, keysym
}

func (s *Surface) RootWindow() display.WindowID { return display.WindowID(s.root) }

func (s *Surface) Children(root display.WindowID) ([]display.WindowID, error) {
	tree, err := xproto.QueryTree(s.xu.Conn(), xproto.Window(root)).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11display: query tree: %w", err)
	}
	out := make([]display.WindowID, len(tree.Children))
	for i, c := range tree.Children {
		out[i] = display.WindowID(c)
	}
	return out, nil
}

func (s *Surface) Map(w display.WindowID) {
	if err := xproto.MapWindowChecked(s.xu.Conn(), xproto.Window(w)).Check(); err != nil {
		s.warn("map", w, err)
		return
	}
	// Insert into the X server's save-set so the window survives if
	// this process dies mid-session, even without reparenting.
	xfixes.ChangeSaveSet(s.xu.Conn(), xfixes.SaveSetModeInsert, xfixes.SaveSetTargetNearest, xfixes.SaveSetMapNearest, xproto.Window(w))
}

func (s *Surface) Unmap(w display.WindowID) {
	if err := xproto.UnmapWindowChecked(s.xu.Conn(), xproto.Window(w)).Check(); err != nil {
		s.warn("unmap", w, err)
	}
}

func (s *Surface) MoveResize(w display.WindowID, r display.Rect) {
	win := xwindow.New(s.xu, xproto.Window(w))
	if err := win.MoveResize(r.X, r.Y, r.Width, r.Height); err != nil {
		s.warn("moveresize", w, err)
	}
}

func (s *Surface) ConfigureWindow(w display.WindowID, r display.Rect) {
	err := xproto.ConfigureWindowChecked(s.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(r.X), uint32(r.Y), uint32(r.Width), uint32(r.Height)}).Check()
	if err != nil {
		s.warn("configure", w, err)
	}
}

func (s *Surface) Raise(w display.WindowID) {
	err := xproto.ConfigureWindowChecked(s.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowStackMode, []uint32{uint32(xproto.StackModeAbove)}).Check()
	if err != nil {
		s.warn("raise", w, err)
	}
}

func (s *Surface) SetBorderWidth(w display.WindowID, pixels int) {
	err := xproto.ConfigureWindowChecked(s.xu.Conn(), xproto.Window(w),
		xproto.ConfigWindowBorderWidth, []uint32{uint32(pixels)}).Check()
	if err != nil {
		s.warn("border width", w, err)
	}
}

func (s *Surface) SetBorderColor(w display.WindowID, color uint32) {
	err := xproto.ChangeWindowAttributesChecked(s.xu.Conn(), xproto.Window(w),
		xproto.CwBorderPixel, []uint32{color}).Check()
	if err != nil {
		s.warn("border color", w, err)
	}
}

func (s *Surface) SetInputFocus(w display.WindowID) {
	err := xproto.SetInputFocusChecked(s.xu.Conn(), xproto.InputFocusPointerRoot, xproto.Window(w), xproto.TimeCurrentTime).Check()
	if err != nil {
		s.warn("set input focus", w, err)
		return
	}
	ewmh.ActiveWindowSet(s.xu, xproto.Window(w))
}

func (s *Surface) SubscribeEnter(w display.WindowID) error {
	err := xproto.ChangeWindowAttributesChecked(s.xu.Conn(), xproto.Window(w),
		xproto.CwEventMask, []uint32{uint32(xproto.EventMaskEnterWindow)}).Check()
	if err != nil {
		return fmt.Errorf("x11display: subscribe enter for %d: %w", w, err)
	}
	return nil
}

func (s *Surface) GrabKey(keysym uint32, modifiers uint16) error {
	for _, code := range keybind.KeysymToKeycodes(s.xu, keysym) {
		for _, ignored := range xevent.IgnoreMods {
			err := xproto.GrabKeyChecked(s.xu.Conn(), true, s.root, modifiers|ignored, code,
				xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
			if err != nil {
				return fmt.Errorf("x11display: grab key 0x%x: %w", keysym, err)
			}
		}
	}
	return nil
}

// SendDeleteWindow asks a client to close itself via two WM_DELETE_WINDOW
// ClientMessages sent through WM_PROTOCOLS. There is no forced
// XKillClient fallback: a client that never advertises WM_DELETE_WINDOW,
// or advertises it and ignores both messages, is left running as the
// documented ClientUnresponsive/hang case rather than killed outright.
func (s *Surface) SendDeleteWindow(w display.WindowID) error {
	protocols, err := icccm.WmProtocolsGet(s.xu, xproto.Window(w))
	if err != nil {
		return fmt.Errorf("x11display: query WM_PROTOCOLS for %d: %w", w, err)
	}
	supportsDelete := false
	for _, p := range protocols {
		if p == "WM_DELETE_WINDOW" {
			supportsDelete = true
			break
		}
	}
	if !supportsDelete {
		return fmt.Errorf("x11display: window %d does not advertise WM_DELETE_WINDOW", w)
	}
	if err := icccm.WmDeleteWindowReq(s.xu, xproto.Window(w)); err != nil {
		return fmt.Errorf("x11display: send WM_DELETE_WINDOW to %d: %w", w, err)
	}
	return icccm.WmDeleteWindowReq(s.xu, xproto.Window(w))
}

func (s *Surface) QueryOutputs() ([]display.Output, error) {
	resources, err := randr.GetScreenResources(s.xu.Conn(), s.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11display: get screen resources: %w", err)
	}

	var outputs []display.Output
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(s.xu.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		name := fmt.Sprintf("output-%d", i)
		if outInfo, err := randr.GetOutputInfo(s.xu.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outInfo.Name)
		}
		outputs = append(outputs, display.Output{
			Name:    name,
			Rect:    display.Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)},
			Primary: i == 0,
		})
	}
	return outputs, nil
}

// CreateBar allocates an always-on-top InputOutput window covering r
// and maps it immediately, following xwindow.Create's pattern
// (grounded on internal/x11/windows.go's xwindow.New usage for bar
// geometry).
func (s *Surface) CreateBar(r display.Rect) (display.WindowID, error) {
	win, err := xwindow.Generate(s.xu)
	if err != nil {
		return 0, fmt.Errorf("x11display: generate bar window id: %w", err)
	}
	err = win.CreateChecked(s.root, r.X, r.Y, r.Width, r.Height, xproto.CwOverrideRedirect|xproto.CwEventMask,
		1, uint32(xproto.EventMaskExposure))
	if err != nil {
		return 0, fmt.Errorf("x11display: create bar window: %w", err)
	}
	win.Map()
	id := display.WindowID(win.Id)
	s.barWins[id] = true
	return id, nil
}

func (s *Surface) FillRect(bar display.WindowID, r display.Rect, color uint32) {
	if err := xproto.ChangeGCChecked(s.xu.Conn(), s.gc, xproto.GcForeground, []uint32{color}).Check(); err != nil {
		s.warn("set fg", bar, err)
		return
	}
	rect := xproto.Rectangle{X: int16(r.X), Y: int16(r.Y), Width: uint16(r.Width), Height: uint16(r.Height)}
	if err := xproto.PolyFillRectangleChecked(s.xu.Conn(), xproto.Drawable(bar), s.gc, []xproto.Rectangle{rect}).Check(); err != nil {
		s.warn("fill rect", bar, err)
	}
}

func (s *Surface) DrawText(bar display.WindowID, x, y int, text string, color uint32) {
	if err := xproto.ChangeGCChecked(s.xu.Conn(), s.gc, xproto.GcForeground|xproto.GcFont, []uint32{color, uint32(s.font)}).Check(); err != nil {
		s.warn("set text gc", bar, err)
		return
	}
	if err := xproto.ImageText8Checked(s.xu.Conn(), byte(len(text)), xproto.Drawable(bar), s.gc, int16(x), int16(y), text).Check(); err != nil {
		s.warn("draw text", bar, err)
	}
}

func (s *Surface) TextWidth(text string) int {
	chars := make([]xproto.Char2b, len(text))
	for i, r := range text {
		chars[i] = xproto.Char2b{Byte1: 0, Byte2: byte(r)}
	}
	reply, err := xproto.QueryTextExtents(s.xu.Conn(), xproto.Fontable(s.font), chars).Reply()
	if err != nil {
		return len(text) * 6
	}
	return int(reply.OverallWidth)
}

func (s *Surface) FontAscent() int { return s.ascent }

func (s *Surface) Close() {
	xproto.CloseFont(s.xu.Conn(), s.font)
	s.xu.Conn().Close()
}

func (s *Surface) warn(op string, w display.WindowID, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn("x11display: operation failed", "op", op, "window", w, "error", err)
}
