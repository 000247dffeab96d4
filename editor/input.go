package editor

import (
	"scene-editor/core"
)

var keyIntents = map[core.Key]Intent{
	core.KeyW:     IntentForward,
	core.KeyS:     IntentBack,
	core.KeyA:     IntentStrafeLeft,
	core.KeyD:     IntentStrafeRight,
	core.KeyLeft:  IntentYawLeft,
	core.KeyRight: IntentYawRight,
	core.KeyUp:    IntentPitchUp,
	core.KeyDown:  IntentPitchDown,
}

// KeyDown handles a key press. Movement keys are held intents; page up and
// page down zoom. Ctrl+Z undoes and Ctrl+Shift+Z or Ctrl+Y redoes.
func (e *Editor) KeyDown(key core.Key, mods core.Modifier) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mods.Has(core.ModControl) {
		switch {
		case key == core.KeyZ && !mods.Has(core.ModShift):
			e.deactivate()
			return e.dispatch(ActionUndo)
		case key == core.KeyZ, key == core.KeyY:
			e.deactivate()
			return e.dispatch(ActionRedo)
		}
		return nil
	}
	if intent, ok := keyIntents[key]; ok {
		e.camera.Nav.SetIntent(intent, true)
		return nil
	}
	switch key {
	case core.KeyPageUp:
		e.zoomIn(e.cfg.Game.KeyFOVStep)
	case core.KeyPageDown:
		e.zoomOut(e.cfg.Game.KeyFOVStep)
	}
	return nil
}

// KeyUp handles a key release. Toggles fire on release so holding a key
// does not repeat them.
func (e *Editor) KeyUp(key core.Key, mods core.Modifier) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if intent, ok := keyIntents[key]; ok {
		e.camera.Nav.SetIntent(intent, false)
		return
	}
	if mods.Has(core.ModControl) {
		return
	}
	switch key {
	case core.KeyV:
		vsync := e.gate.ToggleVsync()
		e.log.Debug().Bool("vsync", vsync).Msg("vsync toggled")
	case core.KeyG:
		e.toggleMode()
	case core.KeyF:
		e.display.ToggleFullscreen()
	case core.KeySpace:
		e.camera.Nav.Jump()
	case core.KeyEscape:
		e.quit = true
	}
}

// MouseButton starts or ends a drag. Only design mode routes drags to tools.
func (e *Editor) MouseButton(button core.MouseButton, pressed bool, mods core.Modifier) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.deactivate()
	if !pressed || e.camera.Mode() != ModeDesign {
		return
	}
	e.tools.Activate(button, mods)
	if !e.tools.Active() {
		return
	}
	b, _ := e.tools.Binding()
	if b.Target < 0 {
		return
	}
	if before, err := e.store.Get(b.Target); err == nil {
		e.gesture = &gesture{index: b.Target, name: b.Name, before: before}
	}
}

// MouseMove handles a pointer sample in window pixels. In design mode it
// drives the active tool; in game mode it turns the view and recentres the
// cursor near the window edges.
func (e *Editor) MouseMove(x, y float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	dx, dy := x-e.pointerX, y-e.pointerY
	e.pointerX, e.pointerY = x, y

	if e.camera.Mode() == ModeGame {
		w, h := e.camera.Size()
		if e.camera.Nav.Look(x, y, w, h) {
			e.display.WarpCursor(float64(w)/2, float64(h)/2)
		}
		return nil
	}
	if err := e.tools.Drag(float32(dx), float32(dy)); err != nil {
		e.log.Error().Err(err).Msg("drag")
		return err
	}
	return nil
}

// Scroll zooms: the field of view in game mode, the orbit distance in
// design mode. Positive offsets zoom in.
func (e *Editor) Scroll(yoff float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case yoff > 0:
		e.zoomIn(e.cfg.Game.ScrollFOVStep)
	case yoff < 0:
		e.zoomOut(e.cfg.Game.ScrollFOVStep)
	}
}

func (e *Editor) zoomIn(fovStep float32) {
	if e.camera.Mode() == ModeGame {
		e.camera.ZoomFOV(-fovStep)
		return
	}
	e.camera.Orbit.ZoomIn()
}

func (e *Editor) zoomOut(fovStep float32) {
	if e.camera.Mode() == ModeGame {
		e.camera.ZoomFOV(fovStep)
		return
	}
	e.camera.Orbit.ZoomOut()
}

// Resize must be called on every framebuffer size change.
func (e *Editor) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.camera.Reshape(width, height)
	e.tools.SetViewport(e.camera.Size())
}
