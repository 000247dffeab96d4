package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type objCorner struct{ v, vt, vn int }

// readOBJ parses Wavefront geometry into a single mesh. Groups and
// materials are ignored; polygons are fan-triangulated.
func readOBJ(r io.Reader) (*MeshData, error) {
	var (
		positions [][3]float32
		normals   [][3]float32
		uvs       [][2]float32
		corners   []objCorner
		name      string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			positions = append(positions, parseFloats3(fields[1:4]))
		case "vn":
			if len(fields) < 4 {
				continue
			}
			normals = append(normals, parseFloats3(fields[1:4]))
		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, [2]float32{float32(u), float32(v)})
		case "o":
			if name == "" && len(fields) > 1 {
				name = fields[1]
			}
		case "f":
			if len(fields) < 4 {
				continue
			}
			face := make([]objCorner, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				face = append(face, parseCorner(tok, len(positions), len(uvs), len(normals)))
			}
			for i := 1; i+1 < len(face); i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(corners) == 0 {
		return nil, fmt.Errorf("no geometry")
	}

	m := &MeshData{Name: name}
	seen := make(map[objCorner]uint32, len(corners))
	for _, c := range corners {
		if c.v < 0 || c.v >= len(positions) {
			return nil, fmt.Errorf("face references vertex %d of %d", c.v+1, len(positions))
		}
		if idx, ok := seen[c]; ok {
			m.Indices = append(m.Indices, idx)
			continue
		}
		idx := uint32(len(m.Positions))
		seen[c] = idx
		m.Positions = append(m.Positions, positions[c.v])
		if len(normals) > 0 {
			var n [3]float32
			if c.vn >= 0 && c.vn < len(normals) {
				n = normals[c.vn]
			}
			m.Normals = append(m.Normals, n)
		}
		if len(uvs) > 0 {
			var uv [2]float32
			if c.vt >= 0 && c.vt < len(uvs) {
				uv = uvs[c.vt]
			}
			m.UVs = append(m.UVs, uv)
		}
		m.Indices = append(m.Indices, idx)
	}
	return m, nil
}

func parseFloats3(f []string) [3]float32 {
	var out [3]float32
	for i := range out {
		v, _ := strconv.ParseFloat(f[i], 32)
		out[i] = float32(v)
	}
	return out
}

// parseCorner reads "v", "v/vt", "v//vn" or "v/vt/vn". Indices are 1-based,
// negative ones count back from the end of the pool read so far.
func parseCorner(tok string, nv, nvt, nvn int) objCorner {
	idx := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return -1
		case i < 0:
			return n + i
		default:
			return i - 1
		}
	}
	c := objCorner{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	c.v = idx(parts[0], nv)
	if len(parts) > 1 {
		c.vt = idx(parts[1], nvt)
	}
	if len(parts) > 2 {
		c.vn = idx(parts[2], nvn)
	}
	return c
}
