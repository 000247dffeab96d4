package core

// Key identifies a keyboard key. Values match GLFW key codes so window
// backends can convert with a plain integer cast.
type Key int

const (
	KeyUnknown  Key = -1
	KeySpace    Key = 32
	KeyA        Key = 65
	KeyD        Key = 68
	KeyF        Key = 70
	KeyG        Key = 71
	KeyS        Key = 83
	KeyV        Key = 86
	KeyW        Key = 87
	KeyY        Key = 89
	KeyZ        Key = 90
	KeyEscape   Key = 256
	KeyRight    Key = 262
	KeyLeft     Key = 263
	KeyDown     Key = 264
	KeyUp       Key = 265
	KeyPageUp   Key = 266
	KeyPageDown Key = 267
)

// MouseButton identifies a pointer button, matching GLFW numbering.
type MouseButton int

const (
	MouseLeft   MouseButton = 0
	MouseRight  MouseButton = 1
	MouseMiddle MouseButton = 2
)

// Modifier is a bit set of held modifier keys, matching GLFW bits.
type Modifier int

const (
	ModShift   Modifier = 0x1
	ModControl Modifier = 0x2
	ModAlt     Modifier = 0x4
)

func (m Modifier) Has(flag Modifier) bool {
	return m&flag != 0
}

// Display is the window collaborator the editor drives: pointer capture,
// pointer warping and fullscreen state. Rendering is not part of it.
type Display interface {
	SetCursorHidden(hidden bool)
	WarpCursor(x, y float64)
	ToggleFullscreen()
}

// NopDisplay ignores every request. Used when running headless.
type NopDisplay struct{}

func (NopDisplay) SetCursorHidden(bool)        {}
func (NopDisplay) WarpCursor(float64, float64) {}
func (NopDisplay) ToggleFullscreen()           {}
