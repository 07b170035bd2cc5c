package meshing

import (
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// NaiveMesher emits all six faces of every occupied voxel without looking
// at neighbors. It is the correctness baseline: N voxels give 24N vertices
// and 36N indices.
type NaiveMesher struct{}

func (NaiveMesher) Strategy() Strategy { return StrategyNaive }

func (NaiveMesher) Mesh(g *voxel.Grid) *MeshBuffer {
	defer profiling.Track("meshing.Naive")()

	m := NewMeshBuffer(g.Count() * NumFaces)
	for i := 0; i < g.Len(); i++ {
		if g.At(i) == voxel.BlockTypeAir {
			continue
		}
		x, y, z := g.Delinearize(i)
		for _, f := range Faces {
			appendUnitFace(m, f, x, y, z)
		}
	}
	return m
}
