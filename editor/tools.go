package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-editor/core"
)

// Effect consumes the transformed drag delta of one axis.
type Effect interface {
	Apply(delta mgl32.Vec2) error
}

// EffectFunc adapts a closure to Effect.
type EffectFunc func(delta mgl32.Vec2) error

func (f EffectFunc) Apply(delta mgl32.Vec2) error { return f(delta) }

// Axis pairs an effect with the 2x2 matrix mapping normalised pointer motion
// into the effect's parameter space.
type Axis struct {
	Effect    Effect
	Transform mgl32.Mat2
}

// Binding is the pair of axes driven by a drag. Primary follows a plain
// left drag, Secondary a middle drag or a shift+left drag. Target is the
// object index the effects were built for, or -1 when they edit the camera.
type Binding struct {
	Name      string
	Target    int
	Primary   Axis
	Secondary Axis
}

type axisID int

const (
	axisNone axisID = iota
	axisPrimary
	axisSecondary
)

// Tools routes pointer drags to the active binding. It holds no object
// state of its own; everything it mutates is reached through the effects.
type Tools struct {
	binding Binding
	bound   bool
	active  axisID
	width   int
	height  int
}

func NewTools(width, height int) *Tools {
	t := &Tools{}
	t.SetViewport(width, height)
	return t
}

// SetViewport sets the window size used to normalise pixel deltas.
func (t *Tools) SetViewport(width, height int) {
	t.width, t.height = max(width, 1), max(height, 1)
}

// Bind installs both axes at once, replacing any previous binding. It does
// not end a drag in progress; callers Deactivate first so the old gesture
// cannot carry over into the new binding.
func (t *Tools) Bind(b Binding) {
	t.binding = b
	t.bound = true
}

// Binding returns the installed binding.
func (t *Tools) Binding() (Binding, bool) {
	return t.binding, t.bound
}

// Activate picks the axis subsequent drags are routed to. Shift turns a
// left drag into a secondary drag; buttons other than left and middle
// select nothing.
func (t *Tools) Activate(button core.MouseButton, mods core.Modifier) {
	switch {
	case button == core.MouseLeft && !mods.Has(core.ModShift):
		t.active = axisPrimary
	case button == core.MouseLeft, button == core.MouseMiddle:
		t.active = axisSecondary
	default:
		t.active = axisNone
	}
}

// Deactivate stops routing drags until the next Activate.
func (t *Tools) Deactivate() {
	t.active = axisNone
}

func (t *Tools) Active() bool {
	return t.active != axisNone && t.bound
}

// Delta converts a pixel motion into window-relative units with y pointing up.
func (t *Tools) Delta(dxPx, dyPx float32) mgl32.Vec2 {
	return mgl32.Vec2{dxPx / float32(t.width), -dyPx / float32(t.height)}
}

// Drag applies one pointer-move step to the active axis. It is a no-op when
// nothing is active.
func (t *Tools) Drag(dxPx, dyPx float32) error {
	if !t.Active() {
		return nil
	}
	axis := t.binding.Primary
	if t.active == axisSecondary {
		axis = t.binding.Secondary
	}
	if axis.Effect == nil {
		return nil
	}
	return axis.Effect.Apply(axis.Transform.Mul2x1(t.Delta(dxPx, dyPx)))
}
