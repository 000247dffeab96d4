package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scene-editor/editor"
	"scene-editor/internal/editorconfig"
	"scene-editor/internal/render"
	"scene-editor/internal/window"
	"scene-editor/scene"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Run struct {
		Config string `arg:"" optional:"" name:"config" help:"YAML configuration file." type:"path"`
		Data   string `help:"Directory holding models/ and textures/; overrides the configuration."`
		Seed   uint64 `help:"Seed for random texture and mesh picks; 0 picks one."`
	} `cmd:"" default:"withargs" help:"Open the scene editor."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("sceneedit"),
		kong.Description("an interactive scene editor with a first-person game mode"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "config":
		data, err := editorconfig.Default().Marshal()
		if err != nil {
			log.Fatal().Err(err).Msg("could not render configuration")
		}
		os.Stdout.Write(data)
	default:
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("scene editor failed")
		}
	}
}

func run() error {
	cfg, err := editorconfig.Load(CLI.Run.Config)
	if err != nil {
		return err
	}
	if CLI.Run.Data != "" {
		cfg.Scene.DataDir = CLI.Run.Data
	}
	if CLI.Run.Seed != 0 {
		cfg.Scene.Seed = CLI.Run.Seed
	}
	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Info().Uint64("seed", seed).Str("data", cfg.Scene.DataDir).Msg("starting")

	winCfg := window.DefaultConfig()
	winCfg.Width = cfg.Window.Width
	winCfg.Height = cfg.Window.Height
	winCfg.Fullscreen = cfg.Window.Fullscreen
	win, err := window.New(winCfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	// missing model and texture files fall back to generated stand-ins
	meshes := scene.FallbackMeshes{
		Primary:  scene.NewGLTFMeshes(filepath.Join(cfg.Scene.DataDir, "models"), cfg.Scene.MeshCount),
		Fallback: scene.Primitives{},
	}
	textures := scene.FallbackTextures{
		Primary:  scene.NewTextureFiles(filepath.Join(cfg.Scene.DataDir, "textures"), cfg.Scene.TextureCount),
		Fallback: scene.Procedural{},
	}
	renderer, err := render.New(meshes, textures, scene.BindPose{Meshes: meshes}, log.Logger)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	ed := editor.New(cfg,
		editor.WithLogger(log.Logger),
		editor.WithDisplay(win),
		editor.WithRand(rand.New(rand.NewPCG(seed, seed>>1|1))),
	)
	if err := ed.Populate(); err != nil {
		return fmt.Errorf("populate scene: %w", err)
	}
	win.Attach(ed)

	for !win.ShouldClose() && !ed.Quit() {
		win.PollEvents()
		if !ed.Frame(win.Now()) {
			continue
		}
		win.BeginFrame()
		renderer.Draw(ed)
		win.SwapBuffers()
		win.SetTitle(ed.Title())
	}
	return nil
}
