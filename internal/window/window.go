// Package window owns the glfw window and GL context and feeds its events
// into an editor.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"scene-editor/core"
	"scene-editor/editor"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	// windowed placement restored when leaving fullscreen
	savedX, savedY int
	savedW, savedH int

	// Display requests arrive while the editor holds its lock and may fire
	// glfw callbacks back into it, so they run from PollEvents instead.
	pending []func()
}

type Config struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	Fullscreen bool
}

func DefaultConfig() Config {
	return Config{
		Width:     960,
		Height:    640,
		Title:     "Scene Editor",
		Resizable: true,
	}
}

// New creates the window with a current OpenGL 4.1 core context, depth
// testing and alpha blending enabled.
func New(config Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	monitor := (*glfw.Monitor)(nil)
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	// frame pacing is done by the editor's frame gate
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		handle.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	w := &Window{
		Handle: handle,
		Title:  config.Title,
		savedW: config.Width,
		savedH: config.Height,
	}
	w.Width, w.Height = handle.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w.Width), int32(w.Height))
	return w, nil
}

// Attach forwards the window's input and resize events to ed and reports
// the current framebuffer size to it.
func (w *Window) Attach(ed *editor.Editor) {
	w.Handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width, w.Height = width, height
		gl.Viewport(0, 0, int32(width), int32(height))
		ed.Resize(width, height)
	})
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			_ = ed.KeyDown(core.Key(key), core.Modifier(mods))
		case glfw.Release:
			ed.KeyUp(core.Key(key), core.Modifier(mods))
		}
	})
	w.Handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		ed.MouseButton(core.MouseButton(button), action == glfw.Press, core.Modifier(mods))
	})
	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		_ = ed.MouseMove(x, y)
	})
	w.Handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		ed.Scroll(yoff)
	})
	ed.Resize(w.Width, w.Height)
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

// PollEvents runs queued display requests, then dispatches glfw events.
func (w *Window) PollEvents() {
	queued := w.pending
	w.pending = nil
	for _, req := range queued {
		req()
	}
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// BeginFrame clears colour and depth.
func (w *Window) BeginFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Now returns the time since glfw.Init in milliseconds.
func (w *Window) Now() float64 {
	return glfw.GetTime() * 1000
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) SetTitle(title string) {
	if title == w.Title {
		return
	}
	w.Handle.SetTitle(title)
	w.Title = title
}

// SetCursorHidden hides and captures the cursor, or releases it.
func (w *Window) SetCursorHidden(hidden bool) {
	mode := glfw.CursorNormal
	if hidden {
		mode = glfw.CursorHidden
	}
	w.pending = append(w.pending, func() {
		w.Handle.SetInputMode(glfw.CursorMode, mode)
	})
}

func (w *Window) WarpCursor(x, y float64) {
	w.pending = append(w.pending, func() {
		w.Handle.SetCursorPos(x, y)
	})
}

// ToggleFullscreen switches to the primary monitor's video mode, or back
// to the windowed placement saved on the way in.
func (w *Window) ToggleFullscreen() {
	w.pending = append(w.pending, w.toggleFullscreen)
}

func (w *Window) toggleFullscreen() {
	if w.Handle.GetMonitor() != nil {
		w.Handle.SetMonitor(nil, w.savedX, w.savedY, w.savedW, w.savedH, glfw.DontCare)
		return
	}
	w.savedX, w.savedY = w.Handle.GetPos()
	w.savedW, w.savedH = w.Handle.GetSize()
	monitor := glfw.GetPrimaryMonitor()
	mode := monitor.GetVideoMode()
	w.Handle.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
}

var _ core.Display = (*Window)(nil)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
