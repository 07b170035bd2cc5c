package meshing

import (
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// GreedyQuad is a maximal rectangle of exposed faces that share a face
// direction and a block value. U and V locate its origin cell in the layer
// plane (along FaceTable[Face].U and .V); Width runs along U, Height along V.
type GreedyQuad struct {
	Face   Face
	Layer  int
	U, V   int
	Width  int
	Height int
	Value  voxel.BlockType
}

// Area is the number of unit faces the quad covers.
func (q GreedyQuad) Area() int {
	return q.Width * q.Height
}

// Origin returns the local position of the quad's minimum voxel.
func (q GreedyQuad) Origin() mgl32.Vec3 {
	d := &FaceTable[q.Face]
	var p mgl32.Vec3
	p[d.Axis] = float32(q.Layer)
	p[d.U] = float32(q.U)
	p[d.V] = float32(q.V)
	return p
}

// GreedyMesher merges coplanar exposed faces of equal value into the
// fewest rectangles a row-major, width-first sweep finds.
type GreedyMesher struct{}

func (GreedyMesher) Strategy() Strategy { return StrategyGreedy }

func (gm GreedyMesher) Mesh(g *voxel.Grid) *MeshBuffer {
	defer profiling.Track("meshing.Greedy")()

	quads := gm.Quads(g)
	m := NewMeshBuffer(len(quads))
	for _, q := range quads {
		appendGreedyQuad(m, q)
	}
	return m
}

func appendGreedyQuad(m *MeshBuffer, q GreedyQuad) {
	d := &FaceTable[q.Face]
	w, h := float32(q.Width), float32(q.Height)
	var uvs [4]mgl32.Vec2
	for k, uv := range quadUV {
		uvs[k] = mgl32.Vec2{uv[0] * w, uv[1] * h}
	}
	m.AppendQuad(d.corners(q.Origin(), w, h), d.Normal, uvs)
}

// Quads runs the six directional sweeps and returns every merged rectangle,
// ordered by face, then layer, then scan position.
func (GreedyMesher) Quads(g *voxel.Grid) []GreedyQuad {
	size := g.Size()
	// mask holds the block value of each exposed cell in the current layer
	// (air = inactive); consumed marks cells already covered by a quad.
	mask := make([]voxel.BlockType, size*size)
	consumed := make([]bool, size*size)

	var quads []GreedyQuad
	for _, f := range Faces {
		for layer := 0; layer < size; layer++ {
			buildLayerMask(g, f, layer, mask)
			clear(consumed)
			quads = mergeLayer(f, layer, size, mask, consumed, quads)
		}
	}
	return quads
}

// buildLayerMask fills mask (row = V, column = U) for one layer of face f.
func buildLayerMask(g *voxel.Grid, f Face, layer int, mask []voxel.BlockType) {
	size := g.Size()
	d := &FaceTable[f]
	var p [3]int
	p[d.Axis] = layer
	for row := 0; row < size; row++ {
		p[d.V] = row
		for col := 0; col < size; col++ {
			p[d.U] = col
			b := g.Value(p[0], p[1], p[2])
			if b != voxel.BlockTypeAir && !exposed(g, f, p[0], p[1], p[2]) {
				b = voxel.BlockTypeAir
			}
			mask[row*size+col] = b
		}
	}
}

// mergeLayer greedily partitions the active cells of mask into rectangles.
func mergeLayer(f Face, layer, size int, mask []voxel.BlockType, consumed []bool, quads []GreedyQuad) []GreedyQuad {
	open := func(i int, v voxel.BlockType) bool {
		return mask[i] == v && !consumed[i]
	}

	for i := range mask {
		v := mask[i]
		if v == voxel.BlockTypeAir || consumed[i] {
			continue
		}
		row, col := i/size, i%size

		width := 1
		for col+width < size && open(row*size+col+width, v) {
			width++
		}

		height := 1
	grow:
		for row+height < size {
			next := (row + height) * size
			for c := col; c < col+width; c++ {
				if !open(next+c, v) {
					break grow
				}
			}
			height++
		}

		for r := row; r < row+height; r++ {
			for c := col; c < col+width; c++ {
				consumed[r*size+c] = true
			}
		}

		quads = append(quads, GreedyQuad{
			Face:   f,
			Layer:  layer,
			U:      col,
			V:      row,
			Width:  width,
			Height: height,
			Value:  v,
		})
	}
	return quads
}
