package editor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-editor/internal/editorconfig"
	"scene-editor/math"
)

// Intent is a held navigation key. Intents are set on key-down and cleared
// on key-up so movement speed does not depend on the platform's key repeat.
type Intent uint16

const (
	IntentForward Intent = 1 << iota
	IntentBack
	IntentStrafeLeft
	IntentStrafeRight
	IntentYawLeft
	IntentYawRight
	IntentPitchUp
	IntentPitchDown
)

// Navigation is the first-person state used in game mode. Yaw and Pitch are
// degrees; DX, DY and DZ are the walker's offsets, with DY the eye height.
type Navigation struct {
	Yaw     float32
	Pitch   float32
	DX      float32
	DY      float32
	DZ      float32
	Inertia float32
	Jumping bool
	FOV     float32

	cfg     editorconfig.Game
	intents Intent
	lastX   float64
	lastY   float64
}

func NewNavigation(cfg editorconfig.Game) *Navigation {
	n := &Navigation{cfg: cfg}
	n.Reset()
	return n
}

// Reset puts the walker back at the origin on the ground with the default
// field of view. Held intents survive.
func (n *Navigation) Reset() {
	n.Yaw, n.Pitch = 0, 0
	n.DX, n.DY, n.DZ = 0, n.cfg.GroundLevel, 0
	n.Inertia = n.cfg.Impulse
	n.Jumping = false
	n.FOV = n.cfg.FOV
}

func (n *Navigation) SetIntent(i Intent, held bool) {
	if held {
		n.intents |= i
	} else {
		n.intents &^= i
	}
}

func (n *Navigation) Holding(i Intent) bool { return n.intents&i != 0 }

// ClearIntents releases every held key.
func (n *Navigation) ClearIntents() { n.intents = 0 }

// Jump starts a jump. A jump already in the air is not restarted.
func (n *Navigation) Jump() { n.Jumping = true }

func (n *Navigation) held(i Intent) float32 {
	if n.Holding(i) {
		return 1
	}
	return 0
}

// Integrate advances the walker by dt milliseconds: translation from the
// movement intents, then one symplectic Euler step of the jump, then
// keyboard yaw and pitch.
func (n *Navigation) Integrate(dt float32) {
	step := n.cfg.MoveScale * dt
	sin, cos := math32.Sincos(mgl32.DegToRad(n.Yaw))
	if n.Holding(IntentForward) {
		n.DX -= sin * step
		n.DZ += cos * step
	}
	if n.Holding(IntentBack) {
		n.DX += sin * step
		n.DZ -= cos * step
	}
	if n.Holding(IntentStrafeRight) {
		n.DZ -= sin * step
		n.DX -= cos * step
	}
	if n.Holding(IntentStrafeLeft) {
		n.DZ += sin * step
		n.DX += cos * step
	}

	if n.Jumping {
		n.DY += n.Inertia * dt
		n.Inertia -= n.cfg.Gravity * dt
		if n.DY < n.cfg.GroundLevel {
			n.DY = n.cfg.GroundLevel
			n.Inertia = n.cfg.Impulse
			n.Jumping = false
		}
	}

	turn := n.cfg.TurnScale * dt
	n.Yaw += (n.held(IntentYawRight) - n.held(IntentYawLeft)) * turn
	n.Pitch += (n.held(IntentPitchDown) - n.held(IntentPitchUp)) * turn
	n.clampPitch()
}

func (n *Navigation) clampPitch() {
	n.Pitch = mgl32.Clamp(n.Pitch, -90, 90)
}

// Look turns the view by the pointer motion since the previous sample,
// scaled so a narrower field of view turns more slowly. When the pointer
// comes within the edge margin of the w x h window Look reports that it
// should be recentred and treats the centre as the next starting point.
func (n *Navigation) Look(x, y float64, w, h int) (recenter bool) {
	margin := n.cfg.EdgeMargin
	if x < margin || x > float64(w)-margin || y < margin || y > float64(h)-margin {
		n.lastX, n.lastY = float64(w)/2, float64(h)/2
		return true
	}
	scale := n.FOV / 300 * n.cfg.MouseTurnScale
	n.Yaw += float32(x-n.lastX) * scale
	n.Pitch += float32(y-n.lastY) * scale
	n.clampPitch()
	n.lastX, n.lastY = x, y
	return false
}

// Anchor records a pointer sample without turning.
func (n *Navigation) Anchor(x, y float64) {
	n.lastX, n.lastY = x, y
}

// ZoomFOV changes the field of view by delta degrees within the configured bounds.
func (n *Navigation) ZoomFOV(delta float32) {
	n.FOV = mgl32.Clamp(n.FOV+delta, n.cfg.FOVMin, n.cfg.FOVMax)
}

// View returns translate(0,0,eye)·rotX(pitch)·rotY(yaw)·translate(dx,-dy,dz).
func (n *Navigation) View() math.Mat4 {
	return math.Mat4Translation(math.NewVec3(n.DX, -n.DY, n.DZ)).
		Then(math.Mat4RotationY(n.Yaw)).
		Then(math.Mat4RotationX(n.Pitch)).
		Then(math.Mat4Translation(math.NewVec3(0, 0, n.cfg.EyeOffset)))
}
