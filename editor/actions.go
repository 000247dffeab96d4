package editor

import (
	"fmt"

	"scene-editor/scene"
)

// Action is a menu entry. Object and texture choices go through AddObject,
// SetTexture and SetGroundTexture since they carry an id.
type Action int

const (
	ActionToggleMode Action = iota
	ActionCameraTool
	ActionSelectNext
	ActionSelectPrevious
	ActionDuplicate
	ActionHide
	ActionUnhide
	ActionPositionScaleTool
	ActionRotationTextureTool
	ActionColorTool
	ActionLightingTool
	ActionAlphaTool
	ActionMoveLight1
	ActionColorLight1
	ActionMoveLight2
	ActionColorLight2
	ActionUndo
	ActionRedo
	ActionQuit
)

var actionNames = map[Action]string{
	ActionToggleMode:          "Toggle Game Mode",
	ActionCameraTool:          "Rotate/Move Camera",
	ActionSelectNext:          "Next Object",
	ActionSelectPrevious:      "Previous Object",
	ActionDuplicate:           "Duplicate Object",
	ActionHide:                "Hide Object",
	ActionUnhide:              "Unhide Object",
	ActionPositionScaleTool:   "Position/Scale",
	ActionRotationTextureTool: "Rotation/Texture Scale",
	ActionColorTool:           "R/G/B/All",
	ActionLightingTool:        "Ambient/Diffuse/Specular/Shine",
	ActionAlphaTool:           "Alpha",
	ActionMoveLight1:          "Move Light 1",
	ActionColorLight1:         "R/G/B/All Light 1",
	ActionMoveLight2:          "Move Light 2",
	ActionColorLight2:         "R/G/B/All Light 2",
	ActionUndo:                "Undo",
	ActionRedo:                "Redo",
	ActionQuit:                "Exit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Dispatch runs a menu action. Any drag in progress ends first.
func (e *Editor) Dispatch(a Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deactivate()
	err := e.dispatch(a)
	if err != nil {
		e.log.Warn().Err(err).Stringer("action", a).Msg("action refused")
	}
	return err
}

func (e *Editor) dispatch(a Action) error {
	switch a {
	case ActionToggleMode:
		e.toggleMode()
	case ActionCameraTool:
		e.bindCamera()
	case ActionSelectNext, ActionSelectPrevious:
		if e.store.Len() == 0 {
			return ErrNoSelection
		}
		if a == ActionSelectNext {
			e.selection.Next(e.store.Len())
		} else {
			e.selection.Prev(e.store.Len())
		}
		e.retargetTool(e.selection.Target)
	case ActionDuplicate:
		_, err := e.duplicate()
		return err
	case ActionHide, ActionUnhide:
		if !e.selection.HasTarget() {
			return ErrNoSelection
		}
		cmd, err := NewHideCommand(e.store, e.selection.Target, a == ActionHide)
		if err != nil {
			return err
		}
		return e.history.Do(cmd)
	case ActionPositionScaleTool:
		return e.bindCurrent(e.placementTool)
	case ActionRotationTextureTool:
		return e.bindCurrent(e.rotationTool)
	case ActionColorTool:
		return e.bindCurrent(e.colorTool)
	case ActionLightingTool:
		return e.bindCurrent(e.lightingTool)
	case ActionAlphaTool:
		return e.bindCurrent(e.alphaTool)
	case ActionMoveLight1:
		return e.bindLight(scene.Light1Index, e.lightMoveTool)
	case ActionColorLight1:
		return e.bindLight(scene.Light1Index, e.colorTool)
	case ActionMoveLight2:
		return e.bindLight(scene.Light2Index, e.lightMoveTool)
	case ActionColorLight2:
		return e.bindLight(scene.Light2Index, e.colorTool)
	case ActionUndo:
		_, err := e.history.Undo()
		return err
	case ActionRedo:
		_, err := e.history.Redo()
		return err
	case ActionQuit:
		e.quit = true
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return nil
}

func (e *Editor) bindCurrent(build func(int) Binding) error {
	if !e.selection.HasCurrent() {
		return ErrNoSelection
	}
	e.bindTool(e.selection.Current, build)
	return nil
}

func (e *Editor) bindLight(light int, build func(int) Binding) error {
	if light >= e.store.Len() {
		return &scene.IndexError{Index: light, Count: e.store.Len()}
	}
	e.bindTool(light, build)
	return nil
}
