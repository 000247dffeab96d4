package editor

import (
	"scene-editor/internal/editorconfig"
	"scene-editor/math"
	"scene-editor/scene"
)

// Mode selects how the view is controlled.
type Mode int

const (
	// ModeDesign orbits the scene centre and routes drags to tools.
	ModeDesign Mode = iota
	// ModeGame walks through the scene with the cursor hidden.
	ModeGame
)

func (m Mode) String() string {
	switch m {
	case ModeDesign:
		return "design"
	case ModeGame:
		return "game"
	}
	return "unknown"
}

// Camera owns the mode flag and both view parametrisations. The projection
// is rebuilt whenever the mode, the window size or the game field of view
// changes.
type Camera struct {
	Orbit scene.OrbitView
	Nav   *Navigation

	mode       Mode
	width      int
	height     int
	design     editorconfig.Design
	game       editorconfig.Game
	projection scene.Projection
}

func NewCamera(cfg editorconfig.Config) *Camera {
	c := &Camera{
		Orbit: scene.OrbitView{
			Distance:  cfg.Design.ViewDistance,
			Sideways:  cfg.Design.Sideways,
			UpAndOver: cfg.Design.UpAndOver,
		},
		Nav:    NewNavigation(cfg.Game),
		design: cfg.Design,
		game:   cfg.Game,
	}
	c.Reshape(cfg.Window.Width, cfg.Window.Height)
	return c
}

func (c *Camera) Mode() Mode { return c.mode }

// Toggle flips between design and game and recomputes the projection. It
// returns the new mode.
func (c *Camera) Toggle() Mode {
	if c.mode == ModeDesign {
		c.mode = ModeGame
		if c.game.ResetOnEnter {
			c.Nav.Reset()
		}
	} else {
		c.mode = ModeDesign
		c.Nav.ClearIntents()
	}
	c.Reshape(c.width, c.height)
	return c.mode
}

// Reshape records the window size and rebuilds the projection for the
// current mode. Zero sizes are treated as one pixel.
func (c *Camera) Reshape(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
	if c.mode == ModeGame {
		c.projection = scene.NewProjection(c.Nav.FOV, c.width, c.height, c.game.Near, c.game.Far)
		return
	}
	fov := scene.AspectCorrectedFOV(c.design.BaseFOV, c.width, c.height)
	c.projection = scene.NewProjection(fov, c.width, c.height, c.design.Near, c.design.Far)
}

// ZoomFOV changes the game field of view and refreshes the projection.
func (c *Camera) ZoomFOV(delta float32) {
	c.Nav.ZoomFOV(delta)
	c.Reshape(c.width, c.height)
}

func (c *Camera) Projection() scene.Projection { return c.projection }

func (c *Camera) Size() (int, int) { return c.width, c.height }

// View returns the view matrix of the current mode.
func (c *Camera) View() math.Mat4 {
	if c.mode == ModeGame {
		return c.Nav.View()
	}
	return c.Orbit.Matrix()
}
