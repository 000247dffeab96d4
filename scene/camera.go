package scene

import (
	"scene-editor/math"
)

// Projection holds the parameters of a perspective projection. FOV is the
// vertical field of view in degrees.
type Projection struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32
}

func (p Projection) Matrix() math.Mat4 {
	return math.Mat4Perspective(p.FOV, p.Aspect, p.Near, p.Far)
}

// NewProjection builds a projection for a width x height viewport. Sizes
// below one pixel are treated as one.
func NewProjection(fov float32, width, height int, near, far float32) Projection {
	width, height = max(width, 1), max(height, 1)
	return Projection{
		FOV:    fov,
		Aspect: float32(width) / float32(height),
		Near:   near,
		Far:    far,
	}
}

// AspectCorrectedFOV widens base when the viewport is taller than wide, so
// the same horizontal extent of the scene stays visible.
func AspectCorrectedFOV(base float32, width, height int) float32 {
	width, height = max(width, 1), max(height, 1)
	if width < height {
		return base * float32(height) / float32(width)
	}
	return base
}

// OrbitView is the design-mode camera: it looks at the scene centre from
// Distance along the view axis after orbiting Sideways about the vertical
// axis and UpAndOver about the horizontal axis. Angles are degrees.
type OrbitView struct {
	Distance  float32
	Sideways  float32
	UpAndOver float32
}

// Zoom steps are multiplicative while the distance is positive and purely
// additive once it has crossed zero.
const (
	zoomInFactor  = 0.8
	zoomOutFactor = 1.25
	zoomOffset    = 0.05
)

func (o *OrbitView) ZoomIn() {
	if o.Distance >= 0 {
		o.Distance *= zoomInFactor
	}
	o.Distance -= zoomOffset
}

func (o *OrbitView) ZoomOut() {
	if o.Distance >= 0 {
		o.Distance *= zoomOutFactor
	}
	o.Distance += zoomOffset
}

func (o *OrbitView) Orbit(sideways, upAndOver float32) {
	o.Sideways += sideways
	o.UpAndOver += upAndOver
}

// Matrix returns translate(0,0,1-Distance)·rotX(UpAndOver)·rotY(Sideways).
func (o OrbitView) Matrix() math.Mat4 {
	return math.Mat4RotationY(o.Sideways).
		Then(math.Mat4RotationX(o.UpAndOver)).
		Then(math.Mat4Translation(math.NewVec3(0, 0, 1-o.Distance)))
}
