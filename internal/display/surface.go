// Package display defines the abstract Display Surface: the boundary
// between the window-management state machine and the X server. Nothing
// in this package or its consumers knows about xgb wire types; the
// concrete X11 implementation lives in internal/x11display and is
// responsible for translating raw X events into the Event variants
// declared here.
package display

// WindowID is an opaque handle to a top-level window, supplied by the
// Surface. The core never interprets its bits.
type WindowID uint32

// Rect is a window or region geometry in screen coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Output describes one physical display region as reported by RandR.
type Output struct {
	Name    string
	Rect    Rect
	Primary bool
}

// Event is implemented by every event variant the Surface can deliver.
// The marker method keeps external packages from constructing bogus
// variants and keeps the set closed to this package.
type Event interface {
	isEvent()
}

// KeyPressEvent reports a key-down with its resolved keysym (not the
// raw keycode) and the modifier mask active at the time.
type KeyPressEvent struct {
	Keysym    uint32
	Modifiers uint16
}

// MapRequestEvent reports a client asking to become visible.
type MapRequestEvent struct {
	Window WindowID
}

// DestroyNotifyEvent reports a window's destruction.
type DestroyNotifyEvent struct {
	Window WindowID
}

// EnterNotifyEvent reports the pointer entering a window.
type EnterNotifyEvent struct {
	Window WindowID
	Root   bool
}

// ConfigureRequestEvent reports an unmanaged geometry request from a
// client. The core applies its position and size verbatim (BorderWidth
// is carried but not applied, and stacking is not carried); tiling
// reasserts itself on the next relayout.
type ConfigureRequestEvent struct {
	Window      WindowID
	Rect        Rect
	BorderWidth int
}

// ConfigureNotifyEvent reports a completed configure. The core ignores
// these; hot-plugging monitors is a non-goal.
type ConfigureNotifyEvent struct {
	Window WindowID
}

// ExposeEvent reports a window needing repaint. Count is the number of
// remaining Expose events in the current damage region; a repaint
// should wait for Count == 0 to avoid redundant work.
type ExposeEvent struct {
	Window WindowID
	Count  int
}

func (KeyPressEvent) isEvent()         {}
func (MapRequestEvent) isEvent()       {}
func (DestroyNotifyEvent) isEvent()    {}
func (EnterNotifyEvent) isEvent()      {}
func (ConfigureRequestEvent) isEvent() {}
func (ConfigureNotifyEvent) isEvent()  {}
func (ExposeEvent) isEvent()           {}

// Surface is the full set of operations the state machine needs from
// the display system. A concrete implementation wraps an X11
// connection (internal/x11display); tests substitute a recording mock
// (internal/displaytest).
type Surface interface {
	// NextEvent blocks until an event is available and returns it. It
	// is the single suspension point in the whole window manager.
	NextEvent() (Event, error)

	// RootWindow returns the handle of the root window.
	RootWindow() WindowID

	// Children returns the current top-level children of root, used by
	// the quit drain to know when every managed client has died.
	Children(root WindowID) ([]WindowID, error)

	Map(w WindowID)
	Unmap(w WindowID)
	MoveResize(w WindowID, r Rect)
	ConfigureWindow(w WindowID, r Rect)
	Raise(w WindowID)
	SetBorderWidth(w WindowID, pixels int)
	SetBorderColor(w WindowID, color uint32)
	SetInputFocus(w WindowID)
	// SubscribeEnter arranges for EnterNotify events to be delivered
	// for w. Called once, at MapRequest time.
	SubscribeEnter(w WindowID) error

	GrabKey(keysym uint32, modifiers uint16) error
	SendDeleteWindow(w WindowID) error

	QueryOutputs() ([]Output, error)

	// CreateBar allocates a bar surface for the given output rectangle
	// and returns its handle. Returns 0 if bars are unsupported.
	CreateBar(r Rect) (WindowID, error)
	FillRect(bar WindowID, r Rect, color uint32)
	DrawText(bar WindowID, x, y int, text string, color uint32)
	TextWidth(text string) int
	FontAscent() int

	Close()
}
