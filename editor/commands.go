package editor

import (
	"fmt"

	"scene-editor/scene"
)

// Command represents an undoable editor action
type Command interface {
	Execute() error
	Undo() error
	Description() string
}

// History manages undo/redo stacks
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory creates a new history with the given max undo depth
func NewHistory(maxDepth int) *History {
	maxDepth = max(maxDepth, 1)
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and pushes it to the undo stack
func (h *History) Do(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.Record(cmd)
	return nil
}

// Record pushes a command whose effect has already been applied, such as
// a finished drag gesture.
func (h *History) Record(cmd Command) {
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	// Clear redo stack on new action
	h.redoStack = h.redoStack[:0]
}

// Undo reverts the last action. It reports false when there was nothing to undo.
func (h *History) Undo() (bool, error) {
	if len(h.undoStack) == 0 {
		return false, nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		return false, fmt.Errorf("undo %s: %w", cmd.Description(), err)
	}
	h.redoStack = append(h.redoStack, cmd)
	return true, nil
}

// Redo reapplies the last undone action
func (h *History) Redo() (bool, error) {
	if len(h.redoStack) == 0 {
		return false, nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		return false, fmt.Errorf("redo %s: %w", cmd.Description(), err)
	}
	h.undoStack = append(h.undoStack, cmd)
	return true, nil
}

// --- Concrete Commands ---

// EditCommand swaps a whole object between two snapshots.
type EditCommand struct {
	Store  *scene.Store
	Index  int
	Before scene.SceneObject
	After  scene.SceneObject
	desc   string
}

func NewEditCommand(store *scene.Store, index int, before, after scene.SceneObject, desc string) *EditCommand {
	return &EditCommand{Store: store, Index: index, Before: before, After: after, desc: desc}
}

func (c *EditCommand) Execute() error      { return c.Store.Replace(c.Index, c.After) }
func (c *EditCommand) Undo() error         { return c.Store.Replace(c.Index, c.Before) }
func (c *EditCommand) Description() string { return fmt.Sprintf("%s #%d", c.desc, c.Index) }

// HideCommand records a change of an object's visible flag.
type HideCommand struct {
	Store  *scene.Store
	Index  int
	Hidden bool
	was    bool
}

func NewHideCommand(store *scene.Store, index int, hidden bool) (*HideCommand, error) {
	was, err := store.Hidden(index)
	if err != nil {
		return nil, err
	}
	return &HideCommand{Store: store, Index: index, Hidden: hidden, was: was}, nil
}

func (c *HideCommand) Execute() error { return c.Store.SetHidden(c.Index, c.Hidden) }
func (c *HideCommand) Undo() error    { return c.Store.SetHidden(c.Index, c.was) }
func (c *HideCommand) Description() string {
	if c.Hidden {
		return fmt.Sprintf("hide #%d", c.Index)
	}
	return fmt.Sprintf("unhide #%d", c.Index)
}
