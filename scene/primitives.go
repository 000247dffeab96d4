package scene

import (
	"errors"

	"github.com/chewxy/math32"
)

// Sphere generates a UV sphere centred on the origin.
func Sphere(radius float32, segments, rings int) *MeshData {
	segments, rings = max(segments, 3), max(rings, 2)
	m := &MeshData{Name: "sphere"}

	for ring := 0; ring <= rings; ring++ {
		sinPhi, cosPhi := math32.Sincos(float32(ring) * math32.Pi / float32(rings))
		for seg := 0; seg <= segments; seg++ {
			sinTheta, cosTheta := math32.Sincos(float32(seg) * 2 * math32.Pi / float32(segments))
			n := [3]float32{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			m.Normals = append(m.Normals, n)
			m.Positions = append(m.Positions, [3]float32{n[0] * radius, n[1] * radius, n[2] * radius})
			m.UVs = append(m.UVs, [2]float32{float32(seg) / float32(segments), float32(ring) / float32(rings)})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			m.Indices = append(m.Indices, current, next, current+1)
			m.Indices = append(m.Indices, current+1, next, next+1)
		}
	}
	return m
}

// Square generates a size x size square in the XY plane facing +Z. Rotated
// 270 degrees about X it lies flat facing up.
func Square(size float32) *MeshData {
	s := size / 2
	return &MeshData{
		Name:      "square",
		Positions: [][3]float32{{-s, -s, 0}, {s, -s, 0}, {s, s, 0}, {-s, s, 0}},
		Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 1, 2, 2, 3, 0},
	}
}

// Cube generates an axis-aligned cube with one quad per face.
func Cube(size float32) *MeshData {
	s := size / 2
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{s, -s, -s}, {-s, -s, -s}, {-s, s, -s}, {s, s, -s}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-s, s, s}, {s, s, s}, {s, s, -s}, {-s, s, -s}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-s, -s, -s}, {s, -s, -s}, {s, -s, s}, {-s, -s, s}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{s, -s, s}, {s, -s, -s}, {s, s, -s}, {s, s, s}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-s, -s, -s}, {-s, -s, s}, {-s, s, s}, {-s, s, -s}}},
	}
	m := &MeshData{Name: "cube"}
	for i, f := range faces {
		base := uint32(i * 4)
		for c, p := range f.corners {
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, f.normal)
			m.UVs = append(m.UVs, [2]float32{float32(c&1 ^ c>>1), float32(c >> 1)})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}

// Primitives stands in for model files: the ground is a square, the light
// mesh a sphere and every other mesh a cube sized for the import scale.
type Primitives struct{}

var (
	groundSquare = Square(2)
	lightSphere  = Sphere(1, 24, 16)
	importCube   = Cube(200)
)

func (Primitives) Mesh(id MeshID) (*MeshData, error) {
	switch {
	case id < 0:
		return nil, ErrUnknownMesh
	case id == GroundMesh:
		return groundSquare, nil
	case id == SphereMesh:
		return lightSphere, nil
	}
	return importCube, nil
}

// FallbackMeshes asks Primary first and Fallback when Primary fails.
type FallbackMeshes struct {
	Primary  MeshProvider
	Fallback MeshProvider
}

func (f FallbackMeshes) Mesh(id MeshID) (*MeshData, error) {
	m, err := f.Primary.Mesh(id)
	if err == nil {
		return m, nil
	}
	m, ferr := f.Fallback.Mesh(id)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return m, nil
}
