package editor

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"

	"scene-editor/core"
	"scene-editor/internal/editorconfig"
	"scene-editor/math"
	"scene-editor/scene"
)

var (
	// ErrNoSelection is returned by actions that need a current object or a
	// tool target when there is none.
	ErrNoSelection = errors.New("editor: no object selected")
	// ErrUnknownAction is returned by Dispatch for action ids it does not know.
	ErrUnknownAction = errors.New("editor: unknown action")
)

const historyDepth = 100

// DrawItem is everything the renderer needs for one visible object.
// Lights holds the colour products for light 1 and light 2.
type DrawItem struct {
	Index        int
	Model        math.Mat4
	ModelView    math.Mat4
	Lights       [2]scene.Products
	Alpha        float32
	Shininess    float32
	Mesh         scene.MeshID
	Texture      scene.TextureID
	TextureScale float32
	PoseTime     float32
}

// gesture is the state of an object before the current drag started.
type gesture struct {
	index  int
	name   string
	before scene.SceneObject
}

// Editor owns the scene, the active tool, both camera modes and the
// selection. Every exported method takes the editor lock, so event sources
// and the render loop may live on different goroutines.
type Editor struct {
	mu deadlock.Mutex

	cfg     editorconfig.Config
	log     zerolog.Logger
	display core.Display
	rng     *rand.Rand

	store     *scene.Store
	tools     *Tools
	camera    *Camera
	selection Selection
	history   *History
	gate      *FrameGate

	// retarget rebuilds the installed object tool for another index; nil
	// while the camera tool is bound.
	retarget func(index int) Binding

	pointerX float64
	pointerY float64
	gesture  *gesture
	quit     bool
}

type Option func(*Editor)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithDisplay sets the window collaborator used for cursor capture and
// fullscreen. The default ignores every request.
func WithDisplay(d core.Display) Option {
	return func(e *Editor) { e.display = d }
}

// WithRand sets the source for random texture and mesh picks.
func WithRand(r *rand.Rand) Option {
	return func(e *Editor) { e.rng = r }
}

// New creates an editor with an empty scene in design mode, with the
// camera tool bound and the pointer at the window centre.
func New(cfg editorconfig.Config, opts ...Option) *Editor {
	cfg.Normalize()
	e := &Editor{
		cfg:       cfg,
		log:       zerolog.Nop(),
		display:   core.NopDisplay{},
		selection: NewSelection(),
		history:   NewHistory(historyDepth),
		gate:      NewFrameGate(cfg.Window.Vsync, cfg.Window.RefreshHz),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := cfg.Scene.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	e.store = scene.NewStore(cfg.Scene.Capacity, cfg.Scene.TextureCount, e.rng)
	e.camera = NewCamera(cfg)
	w, h := e.camera.Size()
	e.tools = NewTools(w, h)
	e.pointerX, e.pointerY = float64(w)/2, float64(h)/2
	e.bindCamera()
	return e
}

// Populate builds the starting scene: the ground, two lights and one
// randomly chosen mesh, then returns to the camera tool.
func (e *Editor) Populate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store.Len() != 0 {
		return fmt.Errorf("populate: store already holds %d objects", e.store.Len())
	}
	ground := scene.NewSceneObject(scene.GroundMesh, 0)
	ground.Scale = 10
	ground.Angles.X = 270
	ground.TextureScale = 5
	if err := e.appendObject(ground, true); err != nil {
		return err
	}
	for _, l := range []struct {
		pos   math.Vec4
		scale float32
	}{
		{math.Point(2, 1, 1), 0.1},
		{math.Point(1, 2, 1), 0.3},
	} {
		light := scene.NewSceneObject(scene.SphereMesh, 0)
		light.Position = l.pos
		light.Scale = l.scale
		light.Brightness = 0.8
		if err := e.appendObject(light, false); err != nil {
			return err
		}
	}
	if _, err := e.addObject(scene.MeshID(e.rng.IntN(e.cfg.Scene.MeshCount))); err != nil {
		return err
	}
	e.bindCamera()
	e.log.Info().Int("objects", e.store.Len()).Msg("scene populated")
	return nil
}

// appendObject adds a prepared object, keeping the store's random texture
// unless keepTexture is false.
func (e *Editor) appendObject(obj scene.SceneObject, keepTexture bool) error {
	i, err := e.store.Add(obj.Mesh)
	if err != nil {
		return err
	}
	if keepTexture {
		cur, err := e.store.Get(i)
		if err != nil {
			return err
		}
		obj.Texture = cur.Texture
	}
	return e.store.Replace(i, obj)
}

// AddObject places a new object with the given mesh under the pointer and
// binds the position/scale tool to it.
func (e *Editor) AddObject(mesh scene.MeshID) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deactivate()
	return e.addObject(mesh)
}

func (e *Editor) addObject(mesh scene.MeshID) (int, error) {
	x, z := e.pointerGround()
	i, err := e.store.AddAt(mesh, x, z)
	if err != nil {
		e.log.Warn().Err(err).Int("mesh", int(mesh)).Msg("add object refused")
		return -1, err
	}
	e.selection.Set(i)
	e.bindTool(i, e.placementTool)
	e.log.Debug().Int("index", i).Int("mesh", int(mesh)).Msg("object added")
	return i, nil
}

// pointerGround maps the pointer to ground coordinates around the scene
// centre as seen from the orbit camera.
func (e *Editor) pointerGround() (x, z float32) {
	w, h := e.camera.Size()
	p := mgl32.Vec2{
		float32(e.pointerX)/float32(w) - 0.5,
		float32(float64(h)-e.pointerY)/float32(h) - 0.5,
	}
	xz := groundMatrix(e.camera.Orbit.Sideways).Mul2x1(p)
	return xz.X(), xz.Y()
}

// Duplicate copies the current object into a new slot and makes the copy
// current. An installed object tool moves over to the copy.
func (e *Editor) Duplicate() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deactivate()
	return e.duplicate()
}

func (e *Editor) duplicate() (int, error) {
	if !e.selection.HasCurrent() {
		return -1, ErrNoSelection
	}
	i, err := e.store.Duplicate(e.selection.Current)
	if err != nil {
		e.log.Warn().Err(err).Int("source", e.selection.Current).Msg("duplicate refused")
		return -1, err
	}
	e.selection.Set(i)
	e.retargetTool(i)
	e.log.Debug().Int("index", i).Msg("object duplicated")
	return i, nil
}

// SetTexture changes the current object's texture.
func (e *Editor) SetTexture(tex scene.TextureID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deactivate()
	if !e.selection.HasCurrent() {
		return ErrNoSelection
	}
	return e.retexture(e.selection.Current, tex)
}

// SetGroundTexture changes the ground's texture.
func (e *Editor) SetGroundTexture(tex scene.TextureID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deactivate()
	return e.retexture(scene.GroundIndex, tex)
}

func (e *Editor) retexture(i int, tex scene.TextureID) error {
	before, err := e.store.Get(i)
	if err != nil {
		return err
	}
	after := before
	after.Texture = tex
	return e.history.Do(NewEditCommand(e.store, i, before, after, "texture"))
}

// ToggleMode switches between design and game mode and returns the new mode.
func (e *Editor) ToggleMode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggleMode()
}

func (e *Editor) toggleMode() Mode {
	e.deactivate()
	mode := e.camera.Toggle()
	e.display.SetCursorHidden(mode == ModeGame)
	if mode == ModeGame {
		w, h := e.camera.Size()
		cx, cy := float64(w)/2, float64(h)/2
		e.display.WarpCursor(cx, cy)
		e.camera.Nav.Anchor(cx, cy)
	} else {
		e.bindCamera()
	}
	e.log.Info().Stringer("mode", mode).Msg("mode changed")
	return mode
}

func (e *Editor) bindCamera() {
	e.retarget = nil
	e.tools.Bind(cameraBinding(&e.camera.Orbit))
}

// bindTool installs the tool built by build for object index and makes
// that object the tool target.
func (e *Editor) bindTool(index int, build func(int) Binding) {
	b := build(index)
	e.selection.Target = index
	e.retarget = build
	e.tools.Bind(b)
	e.log.Debug().Str("tool", b.Name).Int("target", index).Msg("tool bound")
}

// retargetTool points the installed object tool at index. The camera tool
// is left alone.
func (e *Editor) retargetTool(index int) {
	if e.retarget == nil {
		return
	}
	e.bindTool(index, e.retarget)
}

func (e *Editor) placementTool(i int) Binding {
	return placementBinding(e.store, i, e.camera.Orbit.Sideways)
}

func (e *Editor) lightMoveTool(i int) Binding {
	return lightMoveBinding(e.store, i, e.camera.Orbit.Sideways)
}

func (e *Editor) colorTool(i int) Binding    { return colorBinding(e.store, i) }
func (e *Editor) lightingTool(i int) Binding { return lightingBinding(e.store, i) }
func (e *Editor) alphaTool(i int) Binding    { return alphaBinding(e.store, i) }
func (e *Editor) rotationTool(i int) Binding { return rotationBinding(e.store, i) }

// deactivate ends the current drag, recording it for undo if it changed
// an object.
func (e *Editor) deactivate() {
	e.tools.Deactivate()
	g := e.gesture
	e.gesture = nil
	if g == nil {
		return
	}
	after, err := e.store.Get(g.index)
	if err != nil || after == g.before {
		return
	}
	e.history.Record(NewEditCommand(e.store, g.index, g.before, after, g.name))
}

// Frame runs one update at time now in milliseconds. It returns false when
// the frame gate skipped the update and nothing should be drawn.
func (e *Editor) Frame(now float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	dt, ok := e.gate.Tick(now)
	if !ok {
		return false
	}
	if e.camera.Mode() == ModeGame {
		e.camera.Nav.Integrate(float32(dt))
	}
	return true
}

// Draws returns the visible objects in draw order with their transforms
// and light products for the current view.
func (e *Editor) Draws() iter.Seq[DrawItem] {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := e.camera.View()
	var lights [2]scene.SceneObject
	for n, i := range []int{scene.Light1Index, scene.Light2Index} {
		if l, err := e.store.Get(i); err == nil {
			lights[n] = l
		}
	}
	poseTime := float32(e.gate.Frames())
	items := make([]DrawItem, 0, e.store.Len())
	for entry := range e.store.All() {
		if !entry.Visible {
			continue
		}
		obj := entry.Object
		model := obj.Model()
		items = append(items, DrawItem{
			Index:     entry.Index,
			Model:     model,
			ModelView: model.Then(view),
			Lights: [2]scene.Products{
				scene.LightProducts(obj, lights[0]),
				scene.LightProducts(obj, lights[1]),
			},
			Alpha:        obj.Alpha,
			Shininess:    obj.Material.Shininess,
			Mesh:         obj.Mesh,
			Texture:      obj.Texture,
			TextureScale: obj.TextureScale,
			PoseTime:     poseTime,
		})
	}
	return slices.Values(items)
}

// Lights returns the eye-space positions of light 1 and light 2.
func (e *Editor) Lights() [2]math.Vec4 {
	e.mu.Lock()
	defer e.mu.Unlock()
	view := e.camera.View()
	var out [2]math.Vec4
	for n, i := range []int{scene.Light1Index, scene.Light2Index} {
		if l, err := e.store.Get(i); err == nil {
			out[n] = scene.EyePosition(l, view)
		}
	}
	return out
}

func (e *Editor) Projection() scene.Projection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.camera.Projection()
}

func (e *Editor) View() math.Mat4 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.camera.View()
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.camera.Mode()
}

// Navigation returns a copy of the first-person state.
func (e *Editor) Navigation() Navigation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.camera.Nav
}

// Orbit returns the design camera parameters.
func (e *Editor) Orbit() scene.OrbitView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.camera.Orbit
}

func (e *Editor) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// Tool returns the name of the installed tool and the object it edits, -1
// for the camera.
func (e *Editor) Tool() (string, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, _ := e.tools.Binding()
	return b.Name, b.Target
}

func (e *Editor) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

func (e *Editor) Object(i int) (scene.SceneObject, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Get(i)
}

// Set writes one attribute of object i directly.
func (e *Editor) Set(i int, attr scene.Attribute, value float32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Set(i, attr, value)
}

func (e *Editor) Hidden(i int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Hidden(i)
}

// Objects yields every slot in draw order. The store is read lazily, so
// the caller must not call back into the editor while ranging.
func (e *Editor) Objects() iter.Seq[scene.Entry] {
	return func(yield func(scene.Entry) bool) {
		e.mu.Lock()
		defer e.mu.Unlock()
		for entry := range e.store.All() {
			if !yield(entry) {
				return
			}
		}
	}
}

// Quit reports whether the user asked to leave.
func (e *Editor) Quit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quit
}

// Title is the window title: mode, frame rate, vsync state and size.
func (e *Editor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, h := e.camera.Size()
	return fmt.Sprintf("Scene Editor [%s] %s @ %d x %d", e.camera.Mode(), e.gate, w, h)
}
