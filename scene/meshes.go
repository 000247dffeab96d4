package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"scene-editor/math"
)

// ErrUnknownMesh is returned for mesh ids outside the provider's catalogue.
var ErrUnknownMesh = errors.New("no such mesh")

// MeshData is the CPU-side geometry of one mesh, ready for upload by the
// renderer.
type MeshData struct {
	Name       string
	Positions  [][3]float32
	Normals    [][3]float32
	UVs        [][2]float32
	Indices    []uint32
	Bones      int
	Animations int
}

// MeshProvider resolves mesh references.
type MeshProvider interface {
	Mesh(id MeshID) (*MeshData, error)
}

// PoseEvaluator produces the bone transforms of a mesh for an animation at
// a point in time. The result always holds at least one matrix.
type PoseEvaluator interface {
	EvaluatePose(mesh MeshID, animation int, t float32) ([]math.Mat4, error)
}

// GLTFMeshes loads model<id>.glb, model<id>.gltf or model<id>.obj from a
// directory and keeps every loaded mesh for the life of the process.
type GLTFMeshes struct {
	dir   string
	count int
	cache map[MeshID]*MeshData
}

func NewGLTFMeshes(dir string, count int) *GLTFMeshes {
	return &GLTFMeshes{
		dir:   dir,
		count: count,
		cache: make(map[MeshID]*MeshData),
	}
}

// Count returns how many mesh ids the catalogue accepts.
func (g *GLTFMeshes) Count() int { return g.count }

func (g *GLTFMeshes) path(id MeshID) (string, error) {
	for _, ext := range []string{".glb", ".gltf", ".obj"} {
		p := filepath.Join(g.dir, fmt.Sprintf("model%d%s", id, ext))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("mesh %d in %q: %w", id, g.dir, os.ErrNotExist)
}

// Mesh loads the first primitive of the first mesh in the file.
func (g *GLTFMeshes) Mesh(id MeshID) (*MeshData, error) {
	if id < 0 || int(id) >= g.count {
		return nil, fmt.Errorf("mesh %d: %w", id, ErrUnknownMesh)
	}
	if m, ok := g.cache[id]; ok {
		return m, nil
	}
	path, err := g.path(id)
	if err != nil {
		return nil, err
	}
	m, err := loadMeshFile(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh %d: %w", id, err)
	}
	if m.Name == "" {
		m.Name = filepath.Base(path)
	}
	g.cache[id] = m
	return m, nil
}

func loadMeshFile(path string) (*MeshData, error) {
	if filepath.Ext(path) == ".obj" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readOBJ(f)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return readMeshData(doc)
}

func readMeshData(doc *gltf.Document) (*MeshData, error) {
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("no geometry")
	}
	gm := doc.Meshes[0]
	prim := gm.Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	m := &MeshData{
		Name:       gm.Name,
		Positions:  positions,
		Animations: len(doc.Animations),
	}
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		m.Normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		m.UVs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("texture coordinates: %w", err)
		}
	}
	if prim.Indices != nil {
		m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	if len(doc.Skins) > 0 {
		m.Bones = len(doc.Skins[0].Joints)
	}
	return m, nil
}

// BindPose is a PoseEvaluator for unanimated playback: every bone keeps its
// bind transform.
type BindPose struct {
	Meshes MeshProvider
}

func (b BindPose) EvaluatePose(mesh MeshID, animation int, t float32) ([]math.Mat4, error) {
	m, err := b.Meshes.Mesh(mesh)
	if err != nil {
		return nil, err
	}
	bones := make([]math.Mat4, max(m.Bones, 1))
	for i := range bones {
		bones[i] = math.Mat4Identity()
	}
	return bones, nil
}
