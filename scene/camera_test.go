package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scene-editor/core"
	"scene-editor/math"
)

func TestAspectCorrectedFOV(t *testing.T) {
	assert.Equal(t, float32(20), AspectCorrectedFOV(20, 960, 640))
	assert.Equal(t, float32(20), AspectCorrectedFOV(20, 500, 500))
	assert.Equal(t, float32(40), AspectCorrectedFOV(20, 400, 800))
	// degenerate sizes do not divide by zero
	assert.Equal(t, float32(20), AspectCorrectedFOV(20, 0, 0))
}

func TestNewProjection(t *testing.T) {
	p := NewProjection(20, 800, 400, 0.1, 10)
	assert.Equal(t, Projection{FOV: 20, Aspect: 2, Near: 0.1, Far: 10}, p)
	assert.Equal(t, float32(-1), p.Matrix()[2][3])
}

func TestOrbitZoom(t *testing.T) {
	o := OrbitView{Distance: 1}
	o.ZoomIn()
	assert.InDelta(t, 0.75, o.Distance, 1e-6)
	o.ZoomOut()
	assert.InDelta(t, 0.9875, o.Distance, 1e-6)

	// non-positive distances step additively
	o = OrbitView{Distance: -0.5}
	o.ZoomIn()
	assert.InDelta(t, -0.55, o.Distance, 1e-6)
	o.ZoomOut()
	assert.InDelta(t, -0.5, o.Distance, 1e-6)
}

func TestOrbitMatrix(t *testing.T) {
	o := OrbitView{Distance: 3}
	got := math.Point(0, 0, 0).MulMat(o.Matrix())
	assert.InDelta(t, -2, got.Z, 1e-6)

	o = OrbitView{Distance: 1, Sideways: 90}
	got = math.Point(0, 0, 1).MulMat(o.Matrix())
	assert.InDelta(t, 1, got.X, 1e-5)
	assert.InDelta(t, 0, got.Z, 1e-5)
}

func TestModelMatrix(t *testing.T) {
	obj := NewSceneObject(GroundMesh, 0)
	obj.Position = math.Point(1, 2, 3)
	obj.Scale = 2
	obj.Angles = math.Vec3{}

	got := math.Point(1, 0, 0).MulMat(obj.Model())
	assert.InDelta(t, 3, got.X, 1e-5)
	assert.InDelta(t, 2, got.Y, 1e-5)
	assert.InDelta(t, 3, got.Z, 1e-5)
}

func TestLightProducts(t *testing.T) {
	obj := NewSceneObject(3, 0)
	obj.Color = core.Color{R: 1, G: 0.5, B: 0}
	obj.Brightness = 2
	light := NewSceneObject(SphereMesh, 0)
	light.Color = core.ColorWhite
	light.Brightness = 0.5

	p := LightProducts(obj, light)
	assert.InDelta(t, 0.7, p.Ambient.R, 1e-6)
	assert.InDelta(t, 0.5, p.Diffuse.G, 1e-6)
	assert.InDelta(t, 0.5, p.Specular.R, 1e-6)
	assert.Equal(t, float32(0), p.Diffuse.B)
}
