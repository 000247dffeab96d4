package editor

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/scene"
)

func TestHistory(t *testing.T) {
	store := scene.NewStore(4, 2, rand.New(rand.NewPCG(3, 4)))
	i, err := store.Add(5)
	require.NoError(t, err)
	before, err := store.Get(i)
	require.NoError(t, err)
	after := before
	after.Scale = 2

	h := NewHistory(2)
	ok, err := h.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, h.Do(NewEditCommand(store, i, before, after, "scale")))
	got, _ := store.Get(i)
	assert.Equal(t, float32(2), got.Scale)

	ok, err = h.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ = store.Get(i)
	assert.Equal(t, before, got)

	ok, err = h.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ = store.Get(i)
	assert.Equal(t, after, got)

	// a new command drops the redo stack
	_, err = h.Undo()
	require.NoError(t, err)
	cmd, err := NewHideCommand(store, i, true)
	require.NoError(t, err)
	require.NoError(t, h.Do(cmd))
	ok, err = h.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "hide #0", cmd.Description())
}

func TestHistoryDepth(t *testing.T) {
	store := scene.NewStore(4, 2, rand.New(rand.NewPCG(3, 4)))
	i, err := store.Add(5)
	require.NoError(t, err)
	h := NewHistory(2)
	for range 3 {
		cmd, err := NewHideCommand(store, i, true)
		require.NoError(t, err)
		h.Record(cmd)
	}
	for range 2 {
		ok, err := h.Undo()
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := h.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEditCommandBadIndex(t *testing.T) {
	store := scene.NewStore(4, 2, nil)
	h := NewHistory(4)
	err := h.Do(NewEditCommand(store, 3, scene.SceneObject{}, scene.SceneObject{}, "edit"))
	assert.ErrorIs(t, err, scene.ErrInvalidIndex)
	ok, err := h.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
}
