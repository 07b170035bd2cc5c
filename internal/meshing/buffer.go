package meshing

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// ErrCorruptBuffer is returned by Validate when a buffer breaks its invariants.
var ErrCorruptBuffer = errors.New("meshing: corrupt mesh buffer")

// MeshBuffer is the output of a meshing pass. Positions, Normals and UVs are
// index-aligned; Indices groups them into triangles.
type MeshBuffer struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// NewMeshBuffer returns an empty buffer with room for the given number of quads.
func NewMeshBuffer(quads int) *MeshBuffer {
	return &MeshBuffer{
		Positions: make([]mgl32.Vec3, 0, quads*4),
		Normals:   make([]mgl32.Vec3, 0, quads*4),
		UVs:       make([]mgl32.Vec2, 0, quads*4),
		Indices:   make([]uint32, 0, quads*6),
	}
}

// AppendQuad adds four corners sharing one normal. Vertices go in first;
// indices are offset by the vertex count from before this call.
func (m *MeshBuffer) AppendQuad(corners [4]mgl32.Vec3, normal mgl32.Vec3, uvs [4]mgl32.Vec2) {
	base := uint32(len(m.Positions))
	for k := range corners {
		m.Positions = append(m.Positions, corners[k])
		m.Normals = append(m.Normals, normal)
		m.UVs = append(m.UVs, uvs[k])
	}
	for _, i := range QuadIndices {
		m.Indices = append(m.Indices, base+i)
	}
}

func (m *MeshBuffer) VertexCount() int   { return len(m.Positions) }
func (m *MeshBuffer) IndexCount() int    { return len(m.Indices) }
func (m *MeshBuffer) TriangleCount() int { return len(m.Indices) / 3 }

// QuadCount is the number of faces or merged quads appended.
func (m *MeshBuffer) QuadCount() int { return len(m.Indices) / len(QuadIndices) }

// Empty reports whether the buffer holds no geometry.
func (m *MeshBuffer) Empty() bool { return len(m.Positions) == 0 && len(m.Indices) == 0 }

// Reset truncates the buffer, keeping its capacity for the next pass.
func (m *MeshBuffer) Reset() {
	m.Positions = m.Positions[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
}

// Translate shifts every position by offset, e.g. a chunk's world origin.
func (m *MeshBuffer) Translate(offset mgl32.Vec3) {
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Add(offset)
	}
}

// Interleaved packs the vertex attributes for a single GPU array buffer.
func (m *MeshBuffer) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		n := m.Normals[i]
		uv := m.UVs[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// Validate checks that attribute slices are aligned, the index count is a
// multiple of three and every index refers to an existing vertex.
func (m *MeshBuffer) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.UVs) != n {
		return fmt.Errorf("%w: %d positions, %d normals, %d uvs", ErrCorruptBuffer, n, len(m.Normals), len(m.UVs))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrCorruptBuffer, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrCorruptBuffer, idx, i, n)
		}
	}
	return nil
}
