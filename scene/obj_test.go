package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestReadOBJ(t *testing.T) {
	m, err := readOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	assert.Equal(t, "quad", m.Name)
	assert.Len(t, m.Positions, 4)
	assert.Len(t, m.UVs, 4)
	assert.Len(t, m.Normals, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, [2]float32{1, 1}, m.UVs[2])
}

func TestReadOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	m, err := readOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0, 1, 0}, m.Positions[2])
	assert.Nil(t, m.Normals)
}

func TestReadOBJErrors(t *testing.T) {
	_, err := readOBJ(strings.NewReader("v 0 0 0\n"))
	assert.Error(t, err)

	_, err = readOBJ(strings.NewReader("v 0 0 0\nf 1 2 3\n"))
	assert.Error(t, err)
}

func TestGLTFMeshesReadsOBJ(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model2.obj"), []byte(quadOBJ), 0644))

	m, err := NewGLTFMeshes(dir, 5).Mesh(2)
	require.NoError(t, err)
	assert.Equal(t, "quad", m.Name)
	assert.Len(t, m.Indices, 6)
}
