package editor

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/core"
	"scene-editor/scene"
)

type recorder struct {
	calls []mgl32.Vec2
}

func (r *recorder) Apply(d mgl32.Vec2) error {
	r.calls = append(r.calls, d)
	return nil
}

func recordingBinding() (Binding, *recorder, *recorder) {
	p, s := &recorder{}, &recorder{}
	return Binding{
		Name:      "test",
		Target:    -1,
		Primary:   Axis{Effect: p, Transform: rows(2, 0, 0, 3)},
		Secondary: Axis{Effect: s, Transform: rows(0, 1, 1, 0)},
	}, p, s
}

func TestToolsRouting(t *testing.T) {
	tools := NewTools(100, 200)
	b, primary, secondary := recordingBinding()
	tools.Bind(b)

	tools.Activate(core.MouseLeft, 0)
	require.NoError(t, tools.Drag(10, -20))
	require.Len(t, primary.calls, 1)
	assert.InDelta(t, 0.2, primary.calls[0].X(), 1e-6)
	assert.InDelta(t, 0.3, primary.calls[0].Y(), 1e-6)

	tools.Activate(core.MouseLeft, core.ModShift)
	require.NoError(t, tools.Drag(10, 20))
	tools.Activate(core.MouseMiddle, 0)
	require.NoError(t, tools.Drag(10, 20))
	require.Len(t, secondary.calls, 2)
	assert.InDelta(t, -0.1, secondary.calls[0].X(), 1e-6)
	assert.InDelta(t, 0.1, secondary.calls[0].Y(), 1e-6)
	assert.Len(t, primary.calls, 1)

	tools.Activate(core.MouseRight, 0)
	assert.False(t, tools.Active())
	require.NoError(t, tools.Drag(10, 20))
	assert.Len(t, primary.calls, 1)
	assert.Len(t, secondary.calls, 2)
}

func TestToolsDeactivateStopsMutation(t *testing.T) {
	store := scene.NewStore(8, 4, rand.New(rand.NewPCG(1, 2)))
	i, err := store.Add(7)
	require.NoError(t, err)
	before, err := store.Get(i)
	require.NoError(t, err)

	tools := NewTools(640, 480)
	tools.Bind(placementBinding(store, i, 30))
	tools.Activate(core.MouseLeft, 0)
	tools.Deactivate()
	for _, d := range [][2]float32{{5, 5}, {-300, 12}, {1e6, -1e6}, {0, 0}} {
		require.NoError(t, tools.Drag(d[0], d[1]))
	}
	tools.Bind(colorBinding(store, i))
	require.NoError(t, tools.Drag(40, 40))

	after, err := store.Get(i)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestToolsUnbound(t *testing.T) {
	tools := NewTools(0, 0)
	tools.Activate(core.MouseLeft, 0)
	assert.False(t, tools.Active())
	assert.NoError(t, tools.Drag(3, 4))
}

func TestToolsBindReplacesBothAxes(t *testing.T) {
	tools := NewTools(100, 100)
	first, p1, s1 := recordingBinding()
	tools.Bind(first)
	tools.Activate(core.MouseMiddle, 0)

	second, p2, s2 := recordingBinding()
	tools.Bind(second)
	require.NoError(t, tools.Drag(10, 10))

	assert.Empty(t, p1.calls)
	assert.Empty(t, s1.calls)
	assert.Empty(t, p2.calls)
	assert.Len(t, s2.calls, 1)
}

func TestPlacementBinding(t *testing.T) {
	store := scene.NewStore(8, 4, rand.New(rand.NewPCG(1, 2)))
	i, err := store.Add(7)
	require.NoError(t, err)

	tools := NewTools(100, 100)
	tools.Bind(placementBinding(store, i, 0))
	tools.Activate(core.MouseLeft, 0)
	// right 10px, up 20px
	require.NoError(t, tools.Drag(10, -20))

	obj, err := store.Get(i)
	require.NoError(t, err)
	assert.InDelta(t, 1, obj.Position.X, 1e-5)
	assert.InDelta(t, -2, obj.Position.Z, 1e-5)

	tools.Activate(core.MouseMiddle, 0)
	require.NoError(t, tools.Drag(100, -10))
	obj, err = store.Get(i)
	require.NoError(t, err)
	assert.InDelta(t, 0.005+0.05, obj.Scale, 1e-5)
	assert.InDelta(t, 1, obj.Position.Y, 1e-5)
}

func TestGroundMatrixFollowsCamera(t *testing.T) {
	// A camera turned 90 degrees maps screen-right onto the ground's z axis.
	d := groundMatrix(90).Mul2x1(mgl32.Vec2{0.1, 0})
	assert.InDelta(t, 0, d.X(), 1e-5)
	assert.InDelta(t, -1, d.Y(), 1e-5)
}

func TestLightingAndRotationBindings(t *testing.T) {
	store := scene.NewStore(8, 4, rand.New(rand.NewPCG(1, 2)))
	i, err := store.Add(7)
	require.NoError(t, err)
	base, err := store.Get(i)
	require.NoError(t, err)

	tools := NewTools(100, 100)
	tools.Bind(lightingBinding(store, i))
	tools.Activate(core.MouseMiddle, 0)
	require.NoError(t, tools.Drag(10, -10))

	tools.Bind(rotationBinding(store, i))
	tools.Activate(core.MouseLeft, 0)
	require.NoError(t, tools.Drag(1, 0))

	tools.Bind(alphaBinding(store, i))
	tools.Activate(core.MouseLeft, 0)
	require.NoError(t, tools.Drag(-10, 50))

	obj, err := store.Get(i)
	require.NoError(t, err)
	assert.InDelta(t, base.Material.Specular+0.1, obj.Material.Specular, 1e-5)
	assert.InDelta(t, base.Material.Shininess+1, obj.Material.Shininess, 1e-5)
	assert.InDelta(t, base.Angles.Y+4, obj.Angles.Y, 1e-4)
	assert.InDelta(t, base.Alpha-0.1, obj.Alpha, 1e-5)
}
