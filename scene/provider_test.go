package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAA"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}}]}]
}`

func TestGLTFMeshes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model3.gltf"), []byte(triangleGLTF), 0644))

	meshes := NewGLTFMeshes(dir, 10)
	m, err := meshes.Mesh(3)
	require.NoError(t, err)
	assert.Equal(t, "tri", m.Name)
	require.Len(t, m.Positions, 3)
	assert.Equal(t, [3]float32{1, 0, 0}, m.Positions[1])
	assert.Equal(t, 0, m.Bones)

	again, err := meshes.Mesh(3)
	require.NoError(t, err)
	assert.Same(t, m, again)

	_, err = meshes.Mesh(4)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = meshes.Mesh(10)
	assert.ErrorIs(t, err, ErrUnknownMesh)

	pose, err := BindPose{Meshes: meshes}.EvaluatePose(3, 0, 12)
	require.NoError(t, err)
	require.Len(t, pose, 1)
}

const badNormalsGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAA"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC2"}
  ],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0, "NORMAL": 1}}]}]
}`

func TestGLTFMeshesRejectsBadNormals(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model1.gltf"), []byte(badNormalsGLTF), 0644))

	_, err := NewGLTFMeshes(dir, 10).Mesh(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normals")
}

func TestTextureFilesFlipsRows(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "texture2.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	textures := NewTextureFiles(dir, 5)
	tex, err := textures.Texture(2)
	require.NoError(t, err)
	assert.Equal(t, 1, tex.Width)
	assert.Equal(t, 2, tex.Height)
	// first row is now the bottom (blue) row
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, tex.Pixels)

	_, err = textures.Texture(1)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = textures.Texture(-1)
	assert.ErrorIs(t, err, ErrUnknownTexture)
}
