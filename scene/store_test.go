package scene

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(capacity int) *Store {
	return NewStore(capacity, 31, rand.New(rand.NewPCG(1, 2)))
}

func TestAddDefaults(t *testing.T) {
	s := newTestStore(8)

	i, err := s.Add(MeshID(7))
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	obj, err := s.Get(i)
	require.NoError(t, err)
	assert.Equal(t, float32(0.005), obj.Scale)
	assert.Equal(t, float32(1), obj.Position.W)
	assert.Equal(t, float32(180), obj.Angles.Y)
	assert.Equal(t, float32(0.7), obj.Material.Ambient)
	assert.Equal(t, float32(1), obj.Material.Diffuse)
	assert.Equal(t, float32(0.5), obj.Material.Specular)
	assert.Equal(t, float32(10), obj.Material.Shininess)
	assert.Equal(t, float32(2), obj.TextureScale)
	assert.GreaterOrEqual(t, int(obj.Texture), 0)
	assert.Less(t, int(obj.Texture), 31)

	g, err := s.Add(GroundMesh)
	require.NoError(t, err)
	ground, _ := s.Get(g)
	assert.Equal(t, float32(1), ground.Scale)
}

func TestCapacityExceeded(t *testing.T) {
	s := newTestStore(2)
	_, err := s.Add(1)
	require.NoError(t, err)
	_, err = s.Add(2)
	require.NoError(t, err)

	i, err := s.Add(3)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, -1, i)
	assert.Equal(t, 2, s.Len())

	_, err = s.Duplicate(0)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, s.Len())
}

func TestInvalidIndex(t *testing.T) {
	s := newTestStore(4)
	_, err := s.Add(1)
	require.NoError(t, err)

	_, err = s.Get(1)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	var indexErr *IndexError
	require.True(t, errors.As(s.SetHidden(-1, true), &indexErr))
	assert.Equal(t, -1, indexErr.Index)
	assert.Equal(t, 1, indexErr.Count)

	assert.ErrorIs(t, s.Set(5, AttrScale, 1), ErrInvalidIndex)
	_, err = s.Duplicate(3)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestDuplicateIsIndependent(t *testing.T) {
	s := newTestStore(4)
	src, err := s.AddAt(9, 1.5, -2)
	require.NoError(t, err)
	require.NoError(t, s.Set(src, AttrRed, 0.2))
	require.NoError(t, s.SetHidden(src, true))

	before, _ := s.Get(src)
	dup, err := s.Duplicate(src)
	require.NoError(t, err)
	assert.Equal(t, 1, dup)

	copied, _ := s.Get(dup)
	assert.Equal(t, before, copied)
	hidden, _ := s.Hidden(dup)
	assert.False(t, hidden)

	obj, _ := s.At(dup)
	obj.Adjust(AttrPositionX, 3)
	obj.Adjust(AttrShininess, 5)

	original, _ := s.Get(src)
	assert.Equal(t, before, original)
	assert.Equal(t, float32(4.5), obj.Position.X)
}

func TestSetAndValue(t *testing.T) {
	s := newTestStore(4)
	i, _ := s.Add(3)
	for attr := AttrPositionX; attr <= AttrTextureScale; attr++ {
		require.NoError(t, s.Set(i, attr, float32(attr)+0.5))
	}
	obj, _ := s.At(i)
	for attr := AttrPositionX; attr <= AttrTextureScale; attr++ {
		assert.Equal(t, float32(attr)+0.5, obj.Value(attr), attr.String())
	}
	assert.Error(t, s.Set(i, Attribute(99), 1))
}

func TestAllIsOrderedAndRestartable(t *testing.T) {
	s := newTestStore(4)
	for _, m := range []MeshID{0, 55, 55} {
		_, err := s.Add(m)
		require.NoError(t, err)
	}
	require.NoError(t, s.SetHidden(1, true))

	collect := func() []Entry {
		var out []Entry
		for e := range s.All() {
			out = append(out, e)
		}
		return out
	}
	first := collect()
	require.Len(t, first, 3)
	for i, e := range first {
		assert.Equal(t, i, e.Index)
	}
	assert.True(t, first[0].Visible)
	assert.False(t, first[1].Visible)
	assert.Equal(t, first, collect())

	// early break stops the sequence
	n := 0
	for range s.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
