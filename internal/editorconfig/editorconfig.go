package editorconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Window holds the initial window setup and frame pacing.
type Window struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	Vsync      bool `yaml:"vsync"`
	RefreshHz  int  `yaml:"refreshHz"`
}

// Scene sizes the object store and the mesh/texture catalogues.
type Scene struct {
	Capacity     int    `yaml:"capacity"`
	MeshCount    int    `yaml:"meshCount"`
	TextureCount int    `yaml:"textureCount"`
	DataDir      string `yaml:"dataDir"`
	// Seed for texture and mesh picks. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// Design configures the orbit camera.
type Design struct {
	BaseFOV      float32 `yaml:"baseFov"`
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	ViewDistance float32 `yaml:"viewDistance"`
	Sideways     float32 `yaml:"sideways"`
	UpAndOver    float32 `yaml:"upAndOver"`
}

// Game configures first-person navigation. Rates are per millisecond.
type Game struct {
	FOV            float32 `yaml:"fov"`
	FOVMin         float32 `yaml:"fovMin"`
	FOVMax         float32 `yaml:"fovMax"`
	ScrollFOVStep  float32 `yaml:"scrollFovStep"`
	KeyFOVStep     float32 `yaml:"keyFovStep"`
	Near           float32 `yaml:"near"`
	Far            float32 `yaml:"far"`
	EdgeMargin     float64 `yaml:"edgeMargin"`
	MoveScale      float32 `yaml:"moveScale"`
	TurnScale      float32 `yaml:"turnScale"`
	MouseTurnScale float32 `yaml:"mouseTurnScale"`
	Gravity        float32 `yaml:"gravity"`
	Impulse        float32 `yaml:"impulse"`
	GroundLevel    float32 `yaml:"groundLevel"`
	EyeOffset      float32 `yaml:"eyeOffset"`
	// ResetOnEnter clears position, orientation, jump and zoom every time
	// game mode is entered. Off keeps them across a design round trip.
	ResetOnEnter bool `yaml:"resetOnEnter"`
}

type Config struct {
	Window Window `yaml:"window"`
	Scene  Scene  `yaml:"scene"`
	Design Design `yaml:"design"`
	Game   Game   `yaml:"game"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:     960,
			Height:    640,
			Vsync:     true,
			RefreshHz: 60,
		},
		Scene: Scene{
			Capacity:     1024,
			MeshCount:    56,
			TextureCount: 31,
			DataDir:      "models-textures",
		},
		Design: Design{
			BaseFOV:      20,
			Near:         0.1,
			Far:          10,
			ViewDistance: 1.5,
			UpAndOver:    10,
		},
		Game: Game{
			FOV:            65,
			FOVMin:         10,
			FOVMax:         90,
			ScrollFOVStep:  5,
			KeyFOVStep:     20,
			Near:           0.1,
			Far:            5,
			EdgeMargin:     50,
			MoveScale:      0.003,
			TurnScale:      0.1,
			MouseTurnScale: 0.2,
			Gravity:        0.00004,
			Impulse:        0.01,
			GroundLevel:    1,
			EyeOffset:      1,
		},
	}
}

// Load overlays the YAML file at path on Default. An empty path or a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize repairs values that would break the editor's invariants: the
// store must hold the ground, both lights and the starting object, FOV bounds must be ordered
// and the refresh rate must be positive.
func (c *Config) Normalize() {
	c.Scene.Capacity = max(c.Scene.Capacity, 4)
	c.Scene.MeshCount = max(c.Scene.MeshCount, 1)
	c.Scene.TextureCount = max(c.Scene.TextureCount, 1)
	if c.Window.RefreshHz <= 0 {
		c.Window.RefreshHz = 60
	}
	c.Window.Width = max(c.Window.Width, 1)
	c.Window.Height = max(c.Window.Height, 1)
	if c.Game.FOVMin > c.Game.FOVMax {
		c.Game.FOVMin, c.Game.FOVMax = c.Game.FOVMax, c.Game.FOVMin
	}
	c.Game.FOV = min(max(c.Game.FOV, c.Game.FOVMin), c.Game.FOVMax)
}

// Marshal renders c as YAML that Load accepts.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
